package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/inkwell-backend/internal/handlers"
)

// SetupRoutes mounts the API. authenticate is the bearer-token
// middleware applied to protected groups.
func SetupRoutes(r *chi.Mux, authenticate func(http.Handler) http.Handler) {
	r.Get("/", handlers.Welcome)
	r.Get("/api/health", handlers.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", handlers.Me)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", handlers.ListPosts)
		r.Get("/{id}", handlers.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", handlers.CreatePost)
			r.Put("/{id}", handlers.UpdatePost)
			r.Delete("/{id}", handlers.DeletePost)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.UpdateProfile)
			r.Get("/posts/me", handlers.GetMyPosts)
		})

		r.Get("/{id}", handlers.GetUserByID)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/api/upload", handlers.UploadImage)
	})

	r.NotFound(handlers.NotFound)
}
