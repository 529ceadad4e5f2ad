package middleware

import (
	"net/http"
	"strings"

	"github.com/lukabartula/blog-website-api/internal/models"
	"github.com/lukabartula/blog-website-api/internal/utils"
)

// AuthMiddleware accepts only requests carrying a valid "Bearer <token>"
// signed with secret, and puts the token claims into the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				utils.JSONError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				utils.JSONError(w, http.StatusUnauthorized, "expected: Bearer <token>")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "empty token")
				return
			}

			claims, err := utils.VerifyToken(token, secret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole lets the request through only if the token role is one of
// roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := utils.ClaimsFromContext(r.Context())
			if !ok || claims.Role == "" {
				utils.JSONError(w, http.StatusUnauthorized, "token carries no role")
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.JSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}
