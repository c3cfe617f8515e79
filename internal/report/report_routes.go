package report

import (
	"go-ems/internal/apicontext"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, checker middleware.FeatureChecker) {
	reports := r.Group("/reports")
	reports.Use(auth, middleware.RequireFeature(checker, rbac.FeatureReportsView))
	{
		reports.GET("/stats", apicontext.Handle(h.Dashboard))
		reports.GET("/tasks", apicontext.Handle(h.Tasks))
	}

	attendance := r.Group("/attendance/reports")
	attendance.Use(auth, middleware.RequireFeature(checker, rbac.FeatureAttendanceReports))
	{
		attendance.GET("", apicontext.Handle(h.Attendance))
		attendance.GET("/export", apicontext.Handle(h.ExportAttendance))
	}
}
