package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lukabartula/blog-website-api/internal/middleware"
	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/utils"
	"github.com/rs/zerolog"
)

// NewRouter mounts every route. secret verifies bearer tokens.
func NewRouter(h *Handler, secret string, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	r.Post("/api/auth/register", h.Auth.Register)
	r.Post("/api/auth/login", h.Auth.Login)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(secret))

		r.Get("/api/auth/me", h.Auth.Me)

		r.Route("/api/users", func(r chi.Router) {
			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/all", h.Users.ListAll)
			r.Get("/", h.Users.ListPage)
			r.Post("/", h.Users.Create)

			r.With(middleware.RequireRole(models.RoleAdmin, models.RoleUser)).Get("/{id}", h.Users.GetByID)
			r.Put("/{id}", h.Users.Update)
			r.Delete("/{id}", h.Users.Delete)
		})
	})

	return r
}
