// Package middleware provides HTTP middleware for the Quanta Docs API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Clay-Ferguson/quanta-docs/pkg/api/auth"
	"github.com/Clay-Ferguson/quanta-docs/pkg/vfs"
)

// Context key type for storing the acting principal
type contextKey string

const callerContextKey contextKey = "caller"

// principal is the resolved identity of the request.
type principal struct {
	ownerID  int64
	username string
}

// CallerID returns the acting principal's owner id from the request context.
// The second return is false when the request never passed through the auth
// middleware.
func CallerID(ctx context.Context) (int64, bool) {
	p, ok := ctx.Value(callerContextKey).(principal)
	if !ok {
		return 0, false
	}
	return p.ownerID, true
}

// CallerUsername returns the authenticated username, or "" when unknown.
func CallerUsername(ctx context.Context) string {
	p, ok := ctx.Value(callerContextKey).(principal)
	if !ok {
		return ""
	}
	return p.username
}

// extractBearerToken extracts the token from a Bearer Authorization header.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuth validates Bearer tokens and stores the acting principal in the
// request context. Missing or invalid tokens get 401.
func JWTAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey, principal{
				ownerID:  claims.OwnerID,
				username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DesktopAuth injects the admin principal into every request. Used when the
// server runs in desktop mode and no authentication is configured.
func DesktopAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), callerContextKey, principal{
				ownerID:  vfs.AdminOwnerID,
				username: "admin",
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
