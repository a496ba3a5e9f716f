package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/inkwellhq/inkwell-backend/internal/config"
	"github.com/inkwellhq/inkwell-backend/internal/store"
)

// Package-level collaborators, wired once from main (and from tests
// with in-memory stores).
var (
	cfg       *config.Config
	userStore store.UserStore
	postStore store.PostStore
)

// Init wires the handler package to its configuration and stores.
func Init(c *config.Config, users store.UserStore, posts store.PostStore) {
	cfg = c
	userStore = users
	postStore = posts
}

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// serverError logs the underlying error and returns 500. The detail is
// echoed to the client only outside production.
func serverError(w http.ResponseWriter, err error, message string) {
	log.Printf("ERROR: %s: %v", message, err)
	if cfg != nil && !cfg.IsProduction() {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  message,
			"detail": err.Error(),
		})
		return
	}
	respondError(w, http.StatusInternalServerError, message)
}
