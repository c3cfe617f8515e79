package task

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
	tasks := r.Group("/tasks")
	tasks.Use(auth, middleware.RateLimitByUser(3, 10))

	assign := middleware.RequireFeature(checker, rbac.FeatureTasksAssign)
	{
		tasks.GET("", apicontext.Handle(h.List))
		tasks.GET("/:id", apicontext.Handle(h.GetByID))
		tasks.POST("", assign, idempotency, apicontext.Handle(h.Create))
		tasks.PUT("/:id", apicontext.Handle(h.Update))
		tasks.PATCH("/:id/status", apicontext.Handle(h.UpdateStatus))
		tasks.DELETE("/:id", apicontext.Handle(h.Delete))
	}
}
