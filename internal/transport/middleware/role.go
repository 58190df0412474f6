package middleware

import (
	"net/http"

	"github.com/frahmantamala/user-administration/internal/auth"
)

// RequireRoles creates a middleware that lets the request through only when
// the authenticated user holds one of the given roles.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			hasRole := false
			for _, required := range roles {
				if user.Role == required {
					hasRole = true
					break
				}
			}

			if !hasRole {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
