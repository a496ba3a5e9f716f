package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellhq/inkwell-backend/internal/config"
	"github.com/inkwellhq/inkwell-backend/internal/handlers"
	"github.com/inkwellhq/inkwell-backend/internal/middleware"
	"github.com/inkwellhq/inkwell-backend/internal/models"
	"github.com/inkwellhq/inkwell-backend/internal/routes"
	"github.com/inkwellhq/inkwell-backend/internal/store"
)

const testJWTSecret = "test-secret-key"

// memUserStore is an in-memory store.UserStore used in place of Mongo.
type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) EmailTakenByOther(ctx context.Context, email string, selfID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == email && id != selfID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUserStore) UpdateProfile(ctx context.Context, id primitive.ObjectID, update store.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Name = update.Name
	u.Email = update.Email
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.ProfilePic != nil {
		u.ProfilePic = *update.ProfilePic
	}
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// memPostStore is an in-memory store.PostStore. Insertion order breaks
// timestamp ties so newest-first stays deterministic in fast tests.
type memPostStore struct {
	mu    sync.Mutex
	posts []*models.Post
	seq   map[primitive.ObjectID]int
	next  int
}

func newMemPostStore() *memPostStore {
	return &memPostStore{seq: make(map[primitive.ObjectID]int)}
}

func (s *memPostStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	clone := *post
	s.posts = append(s.posts, &clone)
	s.seq[post.ID] = s.next
	s.next++
	return nil
}

func (s *memPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memPostStore) newestFirst(filter func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, p := range s.posts {
		if filter == nil || filter(p) {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	return out
}

func (s *memPostStore) List(ctx context.Context, page, limit int) ([]models.Post, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.newestFirst(nil)
	total := int64(len(all))

	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Post{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *memPostStore) ListByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.newestFirst(func(p *models.Post) bool { return p.AuthorID == authorID })
	if out == nil {
		out = []models.Post{}
	}
	return out, nil
}

func (s *memPostStore) Update(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == post.ID {
			post.UpdatedAt = time.Now().UTC()
			clone := *post
			clone.CreatedAt = p.CreatedAt
			s.posts[i] = &clone
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memPostStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// newTestApp wires the full router against in-memory stores.
func newTestApp(t *testing.T) (*chi.Mux, *memUserStore, *memPostStore) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     testJWTSecret,
		TokenLifetime: time.Hour,
		Environment:   "test",
	}

	users := newMemUserStore()
	posts := newMemPostStore()
	handlers.Init(cfg, users, posts)

	r := chi.NewRouter()
	routes.SetupRoutes(r, middleware.Authenticator(cfg, users))
	return r, users, posts
}

// doJSON runs a request through the router and decodes the JSON response.
func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]interface{}{}
	if len(rec.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	}
	return rec.Code, out
}

// registerUser registers a user through the API and returns the token
// and the returned public profile.
func registerUser(t *testing.T, r http.Handler, name, email, password string) (string, map[string]interface{}) {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, code, "register failed: %v", body)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	return token, user
}

// createPost creates a post through the API and returns its body.
func createPost(t *testing.T, r http.Handler, token, title, content string) map[string]interface{} {
	t.Helper()

	code, body := doJSON(t, r, http.MethodPost, "/api/posts", token, map[string]interface{}{
		"title":   title,
		"content": content,
	})
	require.Equal(t, http.StatusCreated, code, "create post failed: %v", body)
	post, _ := body["post"].(map[string]interface{})
	require.NotNil(t, post)
	return post
}
