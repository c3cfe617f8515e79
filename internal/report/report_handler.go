package report

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"go-ems/internal/apicontext"
	reporterrors "go-ems/internal/report/errors"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// parseQuery reads period, startDate, endDate and a department id.
func parseQuery(c *gin.Context, ac *apicontext.ApiContext) (Query, bool) {
	q := Query{
		Period:    ac.Query.Get("period"),
		StartDate: ac.Query.Get("startDate"),
		EndDate:   ac.Query.Get("endDate"),
	}
	if raw := strings.TrimSpace(ac.Query.Get("department")); raw != "" && !strings.EqualFold(raw, "all") {
		id, err := uuid.Parse(raw)
		if err != nil {
			apicontext.WriteError(c, reporterrors.ErrInvalidDepartmentID)
			return Query{}, false
		}
		q.DepartmentID = &id
	}
	return q, true
}

func (h *Handler) Dashboard(c *gin.Context, ac *apicontext.ApiContext) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) Tasks(c *gin.Context, ac *apicontext.ApiContext) {
	q, ok := parseQuery(c, ac)
	if !ok {
		return
	}

	rep, err := h.service.Tasks(c.Request.Context(), q)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) Attendance(c *gin.Context, ac *apicontext.ApiContext) {
	q, ok := parseQuery(c, ac)
	if !ok {
		return
	}

	rep, err := h.service.Attendance(c.Request.Context(), q)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rep, nil)
}

func (h *Handler) ExportAttendance(c *gin.Context, ac *apicontext.ApiContext) {
	q, ok := parseQuery(c, ac)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportAttendance(c.Request.Context(), q, &buf); err != nil {
		apicontext.WriteError(c, err)
		return
	}

	name := "attendance-report.pdf"
	if q.StartDate != "" && q.EndDate != "" {
		name = fmt.Sprintf("attendance-%s-%s.pdf", q.StartDate, q.EndDate)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
