package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/example/shop-admin/internal/auth"
	"github.com/example/shop-admin/internal/authz"
)

// ExtractToken extracts the session token from the access_token cookie or
// the Authorization header.
func ExtractToken(r *http.Request) string {
	// Try cookie first (for browser)
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	// Fall back to Authorization header (for API clients)
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// RoleGate enforces the path policy before any handler runs, so no data
// handler is reachable by a caller the policy denies. Requests to paths the
// policy does not match pass through untouched; protected paths require a
// valid session whose role the policy permits, otherwise the caller is
// redirected to the login path. Valid claims are attached to the request
// context either way.
func RoleGate(jwtService *auth.JWTService, policy *authz.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *auth.Claims
			var role string
			if tokenString := ExtractToken(r); tokenString != "" {
				if c, err := jwtService.ValidateToken(tokenString); err == nil {
					claims = c
					role = c.Role
				}
			}

			decision := policy.Decide(r.URL.Path, role)
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
				return
			}

			if claims != nil {
				ctx := context.WithValue(r.Context(), UserContextKey, claims)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Logging logs every request with its method and path.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves session claims from the request context.
func GetUserFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}

// GetRole returns the caller's role, or an empty string without a session.
func GetRole(ctx context.Context) string {
	claims, ok := GetUserFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.Role
}
