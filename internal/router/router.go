// Package router sets up all HTTP routes and middleware chains for the
// blog API. It organizes routes into public and authenticated groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The authenticate middleware loads the actor
// from the bearer token without enforcing authentication; enforcement
// happens per route group.
func New(
	posts *handlers.Posts,
	categories *handlers.Categories,
	auth *handlers.Auth,
	authenticate func(http.Handler) http.Handler,
	limiter *middleware.RateLimiter,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(authenticate)

	// Unknown routes answer in the same JSON envelope as everything else.
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	// Health check — no auth, no rate limit.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints — rate limited to slow down credential stuffing.
		r.Route("/auth", func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Limit)
			}
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", auth.Me)
			})
		})

		// Posts — reads are public, writes need an authenticated actor.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{id}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Post("/{id}/comments", posts.AddComment)
			})
		})

		// Categories — reads are public, writes are admin-only.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/{id}", categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireAdmin)
				r.Post("/", categories.Create)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})
		})
	})

	return r
}

// notFoundHandler answers unmatched routes and methods.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"success":false,"error":"Route not found"}`))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
