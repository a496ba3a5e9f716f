package handlers

import (
	"net/http"
	"time"
)

const apiVersion = "1.0.0"

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	environment := "development"
	if cfg != nil {
		environment = cfg.Environment
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"message":     "Inkwell Blog Platform API is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": environment,
		"version":     apiVersion,
	})
}

// Welcome handles GET /.
func Welcome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message":       "Welcome to Inkwell Blog Platform API",
		"status":        "online",
		"documentation": "/api/health",
	})
}

// NotFound is the router-level 404 handler.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, map[string]string{
		"status":  "error",
		"message": "Route " + r.URL.Path + " not found",
	})
}
