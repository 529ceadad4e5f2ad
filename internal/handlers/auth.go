package handlers

import (
	"errors"
	"net/http"

	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/services"
	"github.com/lukabartula/blog-website-api/internal/utils"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	svc *services.AuthService
	log zerolog.Logger
}

func NewAuthHandler(svc *services.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// -------------- REGISTER ---------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	_, err := h.svc.Register(r.Context(), services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, models.ErrUserExists), errors.Is(err, models.ErrInvalidInput):
		utils.JSONError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		internalError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		utils.JSONError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		internalError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{Token: token})
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid := utils.UserIDFromContext(r.Context())
	if uid == "" {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	u, err := h.svc.Me(r.Context(), uid)
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	case err != nil:
		internalError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, u)
}
