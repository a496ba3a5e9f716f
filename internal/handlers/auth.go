package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/inkwellhq/inkwell-backend/internal/middleware"
	"github.com/inkwellhq/inkwell-backend/internal/models"
	"github.com/inkwellhq/inkwell-backend/internal/services"
	"github.com/inkwellhq/inkwell-backend/internal/store"
	"github.com/inkwellhq/inkwell-backend/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if err := models.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		IsActive: true,
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		serverError(w, err, "Something went wrong during registration")
		return
	}
	user.Password = hashedPassword

	if err := userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		serverError(w, err, "Something went wrong during registration")
		return
	}

	token, err := services.IssueToken(user, cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		serverError(w, err, "Something went wrong during registration")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.PublicProfile(),
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// return the same message so callers cannot tell which case failed.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Both fields are required")
		return
	}

	user, err := userStore.FindByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		serverError(w, err, "Something went wrong during login")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := services.IssueToken(user, cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		serverError(w, err, "Something went wrong during login")
		return
	}

	log.Printf("new login for user %s", user.Name)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.PublicProfile(),
	})
}

// Me handles GET /api/auth/me.
func Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r)
	if user == nil {
		respondError(w, http.StatusInternalServerError, "Authentication succeeded but user not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User profile retrieved successfully",
		"user":    user.PublicProfile(),
	})
}
