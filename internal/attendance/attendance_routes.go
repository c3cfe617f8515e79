package attendance

import (
	"go-ems/internal/apicontext"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	{
		attendance.GET("", apicontext.Handle(h.List))
		attendance.GET("/today", apicontext.Handle(h.Today))
		attendance.POST("/check-in", apicontext.Handle(h.CheckIn))
		attendance.POST("/check-out", apicontext.Handle(h.CheckOut))
	}
}
