package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func testUser() *models.User {
	return &models.User{ID: "0b7c5d3e-1f2a-4b6c-8d9e-000000000001", Email: "ada@example.com", Role: models.RoleAdmin}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	u := testUser()

	tok, exp, err := GenerateToken(u, testSecret, TokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := VerifyToken(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	_, _, err := GenerateToken(testUser(), "", TokenTTL)
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	_, err = VerifyToken("a.b.c", "")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)
}

func TestVerifyToken_Expired(t *testing.T) {
	tok, _, err := GenerateToken(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(tok, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	tok, _, err := GenerateToken(testUser(), testSecret, TokenTTL)
	require.NoError(t, err)

	_, err = VerifyToken(tok, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := CustomClaims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyToken(tok, testSecret)
	assert.Error(t, err)
}

func TestVerifyToken_MissingExpiry(t *testing.T) {
	claims := CustomClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyToken(tok, testSecret)
	assert.Error(t, err)
}

func TestVerifyToken_Malformed(t *testing.T) {
	_, err := VerifyToken("not.a.jwt", testSecret)
	assert.Error(t, err)
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	_, ok := ClaimsFromContext(ctx)
	assert.False(t, ok)
	assert.Empty(t, UserIDFromContext(ctx))

	ctx = WithClaims(ctx, &CustomClaims{Role: models.RoleUser, RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}})
	c, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, models.RoleUser, c.Role)
	assert.Equal(t, "u1", UserIDFromContext(ctx))
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, h.Compare(hash, "s3cret!"))
	assert.Error(t, h.Compare(hash, "wrong"))
	assert.Error(t, h.Compare("not-a-hash", "s3cret!"))
}

func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	assert.Equal(t, 10, NewBcryptHasher(0).Cost)
	assert.Equal(t, 10, NewBcryptHasher(99).Cost)
}
