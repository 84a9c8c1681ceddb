package httpx

import (
	"net/http"
	"strings"

	"github.com/dehashizia/ReadMeMore-sub000/internal/platform/crypto"
)

// AuthMiddleware authenticates the bearer token and injects the caller
// identity into the request context. Every protected route goes through
// here; handlers never parse tokens themselves.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, claims.Role, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
