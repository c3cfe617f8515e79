package user

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

// accountAdmins may change roles and activation of user accounts.
var accountAdmins = []domain.Role{domain.RoleAdmin}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, checker apicontext.FeatureChecker) {
	const feature = rbac.FeatureUsersManage

	users := r.Group("/users")
	users.Use(auth, middleware.RateLimitByUser(5, 20))
	{
		users.GET("", apicontext.WithFeatureGuard(checker, feature, handler.List))
		users.GET("/:id", apicontext.WithFeatureGuard(checker, feature, handler.GetByID))
		users.PATCH("/:id/role", apicontext.WithRoleGuard(accountAdmins, handler.ChangeRole))
		users.PATCH("/:id/status", apicontext.WithRoleGuard(accountAdmins, handler.UpdateStatus))
	}
}
