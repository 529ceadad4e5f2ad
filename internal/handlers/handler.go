package handlers

import (
	"github.com/lukabartula/blog-website-api/internal/services"
	"github.com/rs/zerolog"
)

type Handler struct {
	Auth  *AuthHandler
	Users *UserHandler
}

func NewHandler(auth *services.AuthService, users *services.UserService, log zerolog.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(auth, log),
		Users: NewUserHandler(users, log),
	}
}
