package notification

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, checker apicontext.FeatureChecker) {
	notifications := r.Group("/notifications")
	notifications.Use(auth, middleware.RateLimitByUser(5, 20))
	{
		notifications.GET("", apicontext.Handle(h.List))
		notifications.PATCH("/read", apicontext.Handle(h.MarkRead))
		notifications.DELETE("/:id", apicontext.Handle(h.Delete))
		notifications.POST("/broadcast", apicontext.WithFeatureGuard(checker, rbac.FeatureNotificationsBroadcast, h.Broadcast))
	}
}
