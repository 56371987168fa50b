package middleware

import (
	"net/http"

	"tienda-pos/internal/domain"

	"go.uber.org/zap"
)

// RequireAdmin ensures the operator has the admin role. Catalog mutations
// (creating, renaming and deleting categories and products) are admin-only;
// cashiers only sell.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetOperatorRole(r.Context())
			if !ok {
				logger.Warn("Role not found in context")
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if role != domain.RoleAdmin {
				logger.Warn("Non-admin operator attempted a catalog mutation",
					zap.String("role", role),
					zap.String("path", r.URL.Path),
				)
				respondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
