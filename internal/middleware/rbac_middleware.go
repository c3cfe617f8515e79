package middleware

import (
	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// FeatureChecker is a local interface; the rbac service satisfies it.
type FeatureChecker interface {
	Allowed(role domain.Role, feature string) bool
}

// RequireFeature guards a route group on a single rbac feature.
func RequireFeature[F ~string](checker FeatureChecker, feature F) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := sessionFrom(c)
		if !ok {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		if !checker.Allowed(session.User.Role, string(feature)) {
			abortWithError(c, apperror.Forbidden("Role "+string(session.User.Role)+" cannot access "+string(feature)))
			return
		}

		c.Next()
	}
}
