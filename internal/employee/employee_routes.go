package employee

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	auth gin.HandlerFunc,
	checker middleware.FeatureChecker,
	idempotency gin.HandlerFunc,
) {
	employees := r.Group("/employees")
	employees.Use(auth)

	read := middleware.RequireFeature(checker, rbac.FeatureEmployeesRead)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			read,
			apicontext.Handle(h.List),
		)
		employees.GET("/hierarchy",
			middleware.RateLimitByUser(1, 5),
			read,
			apicontext.Handle(h.Hierarchy),
		)
		employees.GET("/stats",
			middleware.RateLimitByUser(1, 5),
			middleware.RequireFeature(checker, rbac.FeatureEmployeesStats),
			apicontext.Handle(h.Stats),
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			read,
			apicontext.Handle(h.GetByID),
		)
		employees.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RequireFeature(checker, rbac.FeatureEmployeesCreate),
			idempotency,
			apicontext.Handle(h.Create),
		)
		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RequireFeature(checker, rbac.FeatureEmployeesUpdate),
			apicontext.Handle(h.Update),
		)
		employees.POST("/:id/avatar",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RequireFeature(checker, rbac.FeatureEmployeesUpdate),
			apicontext.Handle(h.UploadAvatar),
		)
		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RequireFeature(checker, rbac.FeatureEmployeesDelete),
			apicontext.Handle(h.Delete),
		)
	}
}
