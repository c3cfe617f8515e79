package department

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
	departments := r.Group("/departments")
	departments.Use(auth)

	manage := middleware.RequireFeature(checker, rbac.FeatureDepartmentsManage)
	{
		departments.GET("", apicontext.Handle(h.List))
		departments.GET("/:id", apicontext.Handle(h.GetByID))
		departments.POST("", manage, idempotency, apicontext.Handle(h.Create))
		departments.PUT("/:id", manage, apicontext.Handle(h.Update))
		departments.DELETE("/:id", manage, apicontext.Handle(h.Delete))
	}
}
