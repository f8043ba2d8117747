package middleware

import (
	"errors"
	"net/http"

	"vape-shop/internal/domain"
	"vape-shop/internal/repository"

	"go.uber.org/zap"
)

// RequireAdmin gates a route on the caller's current stored role, not the
// role snapshot inside the token: the user record is resolved by the
// authenticated email on every call. An email with no record is rejected the
// same way as a non-admin role, so the response does not reveal which emails
// are registered.
func RequireAdmin(users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := GetUserEmail(r.Context())
			if !ok {
				logger.Warn("Email not found in context")
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := users.FindByEmail(r.Context(), email)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					logger.Warn("Authenticated email has no user record", zap.String("email", email))
				} else {
					logger.Error("Failed to resolve user role", zap.Error(err))
				}
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if user.Role != domain.RoleAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("email", email),
					zap.String("role", user.Role),
				)
				RespondWithError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
