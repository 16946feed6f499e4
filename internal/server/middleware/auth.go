// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for storing the authenticated principal.
const principalKey ContextKey = "principal"

// AuthCookieName is the session cookie set by the identity verification endpoint.
const AuthCookieName = "auth_token"

// TokenValidator is an interface for validating session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (PrincipalGetter, error)
}

// PrincipalGetter extracts the principal from token claims.
type PrincipalGetter interface {
	GetPrincipal() string
}

// Auth creates middleware that validates session tokens from the auth cookie
// or an Authorization header and adds the principal to the request context.
func Auth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, claims.GetPrincipal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the session token from the auth cookie, falling back to
// a Bearer Authorization header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (string, error) {
	principal, ok := r.Context().Value(principalKey).(string)
	if !ok || principal == "" {
		return "", fmt.Errorf("principal not found in request context")
	}
	return principal, nil
}

// WithPrincipal returns a copy of the request with the principal set in its
// context (for testing purposes).
func WithPrincipal(r *http.Request, principal string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, principal))
}
