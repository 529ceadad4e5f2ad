package utils

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lukabartula/blog-website-api/internal/models"
)

// context key
type ctxKey string

const (
	CtxUserIDKey ctxKey = "user_id"
	CtxClaimsKey ctxKey = "claims"
)

// TokenTTL is the lifetime of every issued session token.
const TokenTTL = 24 * time.Hour

var ErrSecretNotConfigured = errors.New("secret not configured")

// CustomClaims wraps jwt.RegisteredClaims with the email and role of the
// authenticated user. The user id travels in the subject.
type CustomClaims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for u that expires ttl from now.
func GenerateToken(u *models.User, secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrSecretNotConfigured
	}

	now := time.Now()
	expTime := now.Add(ttl)

	claims := CustomClaims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(expTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expTime, nil
}

func VerifyToken(tokenStr, secret string) (*CustomClaims, error) {
	if secret == "" {
		return nil, ErrSecretNotConfigured
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)

	var claims CustomClaims

	_, err := parser.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &claims, nil
}

// WithClaims stores verified claims (and the subject as user id) in ctx.
func WithClaims(ctx context.Context, claims *CustomClaims) context.Context {
	ctx = context.WithValue(ctx, CtxClaimsKey, claims)
	return context.WithValue(ctx, CtxUserIDKey, claims.Subject)
}

func ClaimsFromContext(ctx context.Context) (*CustomClaims, bool) {
	c, ok := ctx.Value(CtxClaimsKey).(*CustomClaims)
	return c, ok && c != nil
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxUserIDKey).(string)
	return id
}
