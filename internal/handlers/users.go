package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell-backend/internal/middleware"
	"github.com/inkwellhq/inkwell-backend/internal/store"
)

type updateProfileRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
}

// GetProfile handles GET /api/users/profile: the caller's public
// profile plus their posts, newest-first.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	posts, err := postStore.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		serverError(w, err, "Error while retrieving profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Profile retrieved successfully",
		"profile":    user.PublicProfile(),
		"posts":      posts,
		"postsCount": len(posts),
	})
}

// GetUserByID handles GET /api/users/{id}: any user's public profile
// and posts.
func GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := userStore.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		serverError(w, err, "Error while retrieving user profile")
		return
	}

	posts, err := postStore.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		serverError(w, err, "Error while retrieving user profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "User profile retrieved successfully",
		"user":       user.PublicProfile(),
		"posts":      posts,
		"postsCount": len(posts),
	})
}

// GetMyPosts handles GET /api/users/posts/me.
func GetMyPosts(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	posts, err := postStore.ListByAuthor(r.Context(), user.ID)
	if err != nil {
		serverError(w, err, "Error while retrieving user posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "User posts retrieved successfully",
		"posts":      posts,
		"postsCount": len(posts),
	})
}

// UpdateProfile handles PUT /api/users/profile. Name and email are
// required; bio and profilePic are applied only when present in the body.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Name and email fields are required!")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	// Re-validate with the edited values before touching the store.
	candidate := *user
	candidate.Name = name
	candidate.Email = email
	if req.Bio != nil {
		candidate.Bio = *req.Bio
	}
	if err := candidate.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	taken, err := userStore.EmailTakenByOther(r.Context(), email, user.ID)
	if err != nil {
		serverError(w, err, "Error while updating profile")
		return
	}
	if taken {
		respondError(w, http.StatusBadRequest, "Email already in use by another user")
		return
	}

	updated, err := userStore.UpdateProfile(r.Context(), user.ID, store.ProfileUpdate{
		Name:       name,
		Email:      email,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, "Email already in use by another user")
			return
		}
		serverError(w, err, "Error while updating profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully!",
		"profile": updated.PublicProfile(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
