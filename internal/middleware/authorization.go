package middleware

import (
	"net/http"
	"slices"

	"pvc-shop/internal/domain"

	"go.uber.org/zap"
)

// RequireAdmin middleware ensures the user is an administrator
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, domain.UserTypeAdministrator)
}

// RequireStaff admits administrators and employees
func RequireStaff(logger *zap.Logger) func(http.Handler) http.Handler {
	return RequireRole(logger, domain.UserTypeAdministrator, domain.UserTypeEmployee)
}

// RequireRole middleware ensures the user has one of the specified roles
func RequireRole(logger *zap.Logger, allowedRoles ...domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRole(r.Context())
			if !ok {
				logger.Warn("Role not found in context")
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if !slices.Contains(allowedRoles, role) {
				logger.Warn("User role not authorized",
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
