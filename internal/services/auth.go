package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/store"
	"github.com/lukabartula/blog-website-api/internal/utils"
	"github.com/rs/zerolog"
)

const (
	minPasswordLen = 6
	// bcrypt input limit in bytes
	maxPasswordLen = 72

	// well-formed cost-10 hash used when the hasher cannot produce one
	fallbackDummyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type AuthService struct {
	users  store.UserStore
	hasher PasswordHasher
	secret string
	ttl    time.Duration
	log    zerolog.Logger

	// compared against when the email is unknown so that both failure
	// paths pay for one hash comparison
	dummyHash string
}

func NewAuthService(users store.UserStore, hasher PasswordHasher, secret string, log zerolog.Logger) *AuthService {
	log = log.With().Str("component", "auth").Logger()

	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		log.Warn().Err(err).Msg("dummy hash failed, using built-in hash")
		dummy = fallbackDummyHash
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		secret:    secret,
		ttl:       utils.TokenTTL,
		log:       log,
		dummyHash: dummy,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (in RegisterInput) validate() error {
	if in.Email == "" || in.Password == "" {
		return fmt.Errorf("%w: email and password required", models.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, minPasswordLen)
	}
	if len(in.Password) > maxPasswordLen {
		return fmt.Errorf("%w: password must be at most %d bytes", models.ErrInvalidInput, maxPasswordLen)
	}
	return nil
}

// Register creates a USER account. It does not log the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, models.ErrUserExists
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.log.Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login verifies the credentials and returns a signed session token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		_ = s.hasher.Compare(s.dummyHash, password)
		s.log.Debug().Msg("login failed")
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.log.Debug().Str("user_id", u.ID).Msg("login failed")
		return "", models.ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(u, s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// Me returns the record behind an authenticated token subject.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}
