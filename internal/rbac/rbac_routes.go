package rbac

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth)
	{
		group.GET("/permissions", middleware.RateLimitByUser(5, 20), apicontext.Handle(handler.Permissions))
		group.GET("/check", middleware.RateLimitByUser(5, 20), apicontext.Handle(handler.Check))
	}
}
