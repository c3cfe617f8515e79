package auth

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		group.POST("/refresh", middleware.RateLimitByIP(0.5, 10), handler.Refresh)
		group.POST("/logout", handler.Logout)
		group.GET("/me", auth, middleware.RateLimitByUser(2, 5), apicontext.Handle(handler.Me))
		group.PUT("/password", auth, middleware.RateLimitByUser(0.1, 3), apicontext.Handle(handler.ChangePassword))
	}
}
