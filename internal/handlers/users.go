package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/services"
	"github.com/lukabartula/blog-website-api/internal/utils"
	"github.com/rs/zerolog"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type UserHandler struct {
	svc *services.UserService
	log zerolog.Logger
}

func NewUserHandler(svc *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// userRequest is the body of create and update. The password is stored as
// the hash as-is; id and createdAt are accepted but ignored.
type userRequest struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (req userRequest) toUser() *models.User {
	return &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: req.Password,
		Role:         models.Role(req.Role),
	}
}

// ---------------------- LIST ALL ----------------------

func (h *UserHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListAll(r.Context())
	if err != nil {
		internalError(w, r, h.log, err)
		return
	}

	utils.JSON(w, http.StatusOK, users)
}

// ---------------------- LIST PAGE ----------------------

func (h *UserHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", defaultPage)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	size, err := intQuery(r, "pageSize", defaultPageSize)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "pageSize must be an integer")
		return
	}

	out, err := h.svc.ListPage(r.Context(), page, size)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, out)
}

// ---------------------- GET ONE ----------------------

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, u)
}

// ---------------------- CREATE ----------------------

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	u, err := h.svc.Create(r.Context(), utils.UserIDFromContext(r.Context()), body.toUser())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/users/"+u.ID)
	utils.JSON(w, http.StatusCreated, u)
}

// ---------------------- UPDATE ----------------------

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body userRequest
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), body.toUser()); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- DELETE ----------------------

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, models.ErrInvalidInput):
		utils.JSONError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, r, h.log, err)
	}
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// internalError hides err from the client and logs it with the request id.
func internalError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	log.Error().Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("path", r.URL.Path).
		Msg("request failed")
	utils.JSONError(w, http.StatusInternalServerError, "internal error")
}
