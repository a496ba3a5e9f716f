package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell-backend/internal/middleware"
	"github.com/inkwellhq/inkwell-backend/internal/models"
	"github.com/inkwellhq/inkwell-backend/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type postRequest struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Tags    interface{} `json:"tags"`
	Image   *string     `json:"image"`
}

type pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ListPosts handles GET /api/posts. Search is performed client-side;
// the server only paginates.
func ListPosts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	posts, total, err := postStore.List(r.Context(), page, limit)
	if err != nil {
		serverError(w, err, "Error while retrieving posts")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Posts retrieved successfully",
		"posts":   posts,
		"pagination": pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasNextPage: int64(page)*int64(limit) < total,
			HasPrevPage: page > 1,
		},
	})
}

// GetPost handles GET /api/posts/{id}.
func GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := postStore.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		serverError(w, err, "Error while retrieving the post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post retrieved successfully",
		"post":    post,
	})
}

// CreatePost handles POST /api/posts. Author fields come from the
// authenticated identity, never from the request body.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	if !models.HasMeaningfulContent(req.Content) {
		respondError(w, http.StatusBadRequest, "Content must contain at least 5 meaningful characters")
		return
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   user.ID,
		AuthorName: user.Name,
		Tags:       models.NormalizeTags(req.Tags),
	}
	if req.Image != nil {
		post.Image = *req.Image
	}
	post.Normalize()
	if err := post.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := postStore.Create(r.Context(), post); err != nil {
		serverError(w, err, "Error while creating post")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// UpdatePost handles PUT /api/posts/{id}. Only the owning user may
// edit; omitted tags and image keep their stored values.
func UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	existing, err := postStore.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		serverError(w, err, "Error while updating post")
		return
	}

	if existing.AuthorID != user.ID {
		respondError(w, http.StatusForbidden, "Forbidden: You can only edit your own posts")
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	existing.Title = req.Title
	existing.Content = req.Content
	if req.Tags != nil {
		existing.Tags = models.NormalizeTags(req.Tags)
	}
	if req.Image != nil {
		existing.Image = *req.Image
	}
	existing.Normalize()
	if err := existing.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := postStore.Update(r.Context(), existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		serverError(w, err, "Error while updating post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated successfully",
		"post":    existing,
	})
}

// DeletePost handles DELETE /api/posts/{id}.
func DeletePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	existing, err := postStore.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Post not found")
			return
		}
		serverError(w, err, "Error while deleting post")
		return
	}

	if existing.AuthorID != user.ID {
		respondError(w, http.StatusForbidden, "Forbidden: You can only delete your own posts")
		return
	}

	if err := postStore.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
		serverError(w, err, "Error while deleting post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post deleted successfully",
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
