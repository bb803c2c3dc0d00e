package middleware

import (
	"context"
	"net/http"
	"strings"

	"stock-backend/internal/access"
	"stock-backend/internal/auth"
	"stock-backend/internal/models"
	"stock-backend/pkg/utils"
)

type contextKey string

const userKey contextKey = "user"

// UserSource loads a user by id. Both the Postgres repository and the
// in-memory store satisfy it.
type UserSource interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      UserSource
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users UserSource) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
	}
}

// Authenticate validates the bearer token and loads the user fresh from
// the store, so permission edits and deactivation take effect on the next
// request rather than at token expiry.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.ErrorMessage(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorMessage(w, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.ErrorMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.users.Get(r.Context(), claims.UserID)
		if err != nil {
			utils.ErrorMessage(w, http.StatusUnauthorized, "User not found")
			return
		}

		if !user.Active {
			utils.ErrorMessage(w, http.StatusForbidden, "Account deactivated. Please contact an administrator.")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCapability gates a route on a single capability tag. Must run
// after Authenticate.
func (m *AuthMiddleware) RequireCapability(cap access.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				utils.ErrorMessage(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !access.Can(user, cap) {
				utils.ErrorMessage(w, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route on the admin role regardless of permissions.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			utils.ErrorMessage(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if user.Role != access.RoleAdmin {
			utils.ErrorMessage(w, http.StatusForbidden, "Forbidden: admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
