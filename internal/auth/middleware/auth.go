// Package middleware provides bearer-token gates for protected routes
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/goshop/backend/internal/auth/service"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// Revoker reports whether a token ID has been revoked. A nil Revoker
// disables the revocation check.
type Revoker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware validates the bearer token and attaches the caller's
// identity to the request context. Missing, malformed, expired and revoked
// tokens are all answered with 401 before the protected handler runs.
func AuthMiddleware(tokenGenerator *service.TokenGenerator, revoker Revoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, tokenGenerator, revoker)
			if !ok {
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleMiddleware validates the bearer token and additionally requires the
// caller to hold the given role
func RoleMiddleware(tokenGenerator *service.TokenGenerator, revoker Revoker, requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authenticate(w, r, tokenGenerator, revoker)
			if !ok {
				return
			}

			if claims.Role != requiredRole {
				respondError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate extracts and verifies the bearer token. On failure it writes
// the 401 response and returns ok=false.
func authenticate(w http.ResponseWriter, r *http.Request, tokenGenerator *service.TokenGenerator, revoker Revoker) (*service.Claims, bool) {
	token := BearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}

	claims, err := tokenGenerator.Validate(token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
		return nil, false
	}

	if revoker != nil {
		revoked, err := revoker.IsRevoked(r.Context(), claims.JTI)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error")
			return nil, false
		}
		if revoked {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return nil, false
		}
	}

	return claims, true
}

// BearerToken extracts the token from the Authorization header.
// Expected format: "Bearer <token>".
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return parts[1]
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

// GetRole retrieves the authenticated user's role from context
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
