package services

import (
	"context"
	"fmt"
	"math"

	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/store"
	"github.com/rs/zerolog"
)

type UserService struct {
	users store.UserStore
	log   zerolog.Logger
}

func NewUserService(users store.UserStore, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log.With().Str("component", "users").Logger(),
	}
}

func (s *UserService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// ListPage returns page (1-based) of pageSize users. Pages past the end come
// back empty with the totals still filled in.
func (s *UserService) ListPage(ctx context.Context, page, pageSize int) (*models.UserPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page and pageSize must be at least 1", models.ErrInvalidInput)
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	out := &models.UserPage{
		TotalItems: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
		Items:      []models.User{},
	}

	// (page-1)*pageSize would overflow; nothing lives that far out anyway
	if page-1 > math.MaxInt/pageSize {
		return out, nil
	}
	offset := (page - 1) * pageSize
	if int64(offset) >= total {
		return out, nil
	}

	items, err := s.users.ListPage(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}
	out.Items = items

	return out, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create stores u as given: the password hash and role are taken from the
// caller without hashing. Only the role value is checked.
func (s *UserService) Create(ctx context.Context, callerID string, u *models.User) (*models.User, error) {
	if err := normalizeRole(u); err != nil {
		return nil, err
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if u.Role == models.RoleAdmin {
		s.log.Warn().Str("caller_id", callerID).Str("user_id", u.ID).Msg("admin account created through user directory")
	}
	return u, nil
}

// Update replaces every mutable field of the user with id. The id and
// creation time of the stored record are kept.
func (s *UserService) Update(ctx context.Context, id string, u *models.User) error {
	if err := normalizeRole(u); err != nil {
		return err
	}

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	u.ID = existing.ID
	u.CreatedAt = existing.CreatedAt

	return s.users.Replace(ctx, id, u)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func totalPages(total int64, pageSize int) int {
	pages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		pages++
	}
	return int(pages)
}

func normalizeRole(u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", models.ErrInvalidInput, u.Role)
	}
	return nil
}
