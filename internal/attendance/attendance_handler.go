package attendance

import (
	"net/http"
	"strings"

	"go-ems/internal/apicontext"
	attendanceerrors "go-ems/internal/attendance/errors"
	"go-ems/internal/shared/ref"
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

// bindOptional decodes a JSON body when one was sent. Check-in and
// check-out accept an empty body.
func bindOptional(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return apicontext.BindJSON(c, dst)
}

func (h *Handler) CheckIn(c *gin.Context, ac *apicontext.ApiContext) {
	var req CheckInRequest
	if !bindOptional(c, &req) {
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), ac.User, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, resp, "Checked in")
}

func (h *Handler) CheckOut(c *gin.Context, ac *apicontext.ApiContext) {
	var req CheckOutRequest
	if !bindOptional(c, &req) {
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), ac.User, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Checked out")
}

func (h *Handler) Today(c *gin.Context, ac *apicontext.ApiContext) {
	resp, err := h.service.Today(c.Request.Context(), ac.User)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context, ac *apicontext.ApiContext) {
	filter := ListFilter{
		StartDate: ac.Query.Get("startDate"),
		EndDate:   ac.Query.Get("endDate"),
		Search:    ac.Search.Term,
		SortBy:    ac.Search.SortBy,
		SortOrder: ac.Search.SortOrder,
		Page:      ac.Pagination.Page,
		Limit:     ac.Pagination.Limit,
	}
	dept, err := ref.FromQuery(ac.Query.Get("departmentId"), ac.Query.Get("department"))
	if err != nil {
		apicontext.WriteError(c, attendanceerrors.ErrInvalidDepartmentID)
		return
	}
	filter.Department = dept
	if raw := ac.Query.Get("status"); raw != "" {
		st, ok := ParseStatus(strings.ToUpper(raw))
		if !ok {
			apicontext.WriteError(c, attendanceerrors.ErrInvalidStatus)
			return
		}
		filter.Status = st
	}
	if raw := ac.Query.Get("employeeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			apicontext.WriteError(c, attendanceerrors.ErrInvalidEmployeeID)
			return
		}
		filter.EmployeeID = &id
	}

	items, total, err := h.service.List(c.Request.Context(), ac.User, filter)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, ac.Meta(total))
}
