package task

import (
	"net/http"
	"strings"

	"go-ems/internal/apicontext"
	"go-ems/internal/shared/response"
	taskerrors "go-ems/internal/task/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
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
	if raw := ac.Query.Get("status"); raw != "" {
		st, ok := ParseStatus(strings.ToUpper(raw))
		if !ok {
			apicontext.WriteError(c, taskerrors.ErrInvalidStatus)
			return
		}
		filter.Status = st
	}
	if raw := ac.Query.Get("priority"); raw != "" {
		p, ok := ParsePriority(strings.ToUpper(raw))
		if !ok {
			apicontext.WriteError(c, taskerrors.ErrInvalidPriority)
			return
		}
		filter.Priority = p
	}
	switch raw := ac.Query.Get("assigneeId"); {
	case strings.EqualFold(raw, UnassignedSentinel):
		filter.Unassigned = true
	case raw != "":
		id, err := uuid.Parse(raw)
		if err != nil {
			apicontext.WriteError(c, taskerrors.ErrAssigneeNotFound.WithMessage("Assignee '%s' not found", raw))
			return
		}
		filter.AssigneeID = &id
	}

	items, total, err := h.service.List(c.Request.Context(), ac.User, filter)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, ac.Meta(total))
}

func (h *Handler) GetByID(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), ac.User, id)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context, ac *apicontext.ApiContext) {
	var req CreateTaskRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), ac.User, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, resp, "Task created")
}

func (h *Handler) Update(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), ac.User, id, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Task updated")
}

func (h *Handler) UpdateStatus(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), ac.User, id, req.Status)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Task status updated")
}

func (h *Handler) Delete(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), ac.User, id); err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Task deleted")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, taskerrors.ErrInvalidTaskID)
		return uuid.Nil, false
	}
	return id, true
}
