package user

import (
	"net/http"

	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/shared/response"
	usererrors "go-ems/internal/user/errors"

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
		Search:    ac.Search.Term,
		SortBy:    ac.Search.SortBy,
		SortOrder: ac.Search.SortOrder,
		Page:      ac.Pagination.Page,
		Limit:     ac.Pagination.Limit,
	}
	if raw := ac.Query.Get("role"); raw != "" {
		role, ok := domain.ParseRole(raw)
		if !ok {
			apicontext.WriteError(c, usererrors.ErrInvalidRole)
			return
		}
		filter.Role = &role
	}
	switch ac.Query.Get("isActive") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users, ac.Meta(total))
}

func (h *Handler) GetByID(c *gin.Context, ac *apicontext.ApiContext) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, usererrors.ErrInvalidUserID)
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	response.Success(c, http.StatusOK, u, nil)
}

func (h *Handler) ChangeRole(c *gin.Context, ac *apicontext.ApiContext) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, usererrors.ErrInvalidUserID)
		return
	}

	var req ChangeRoleRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	u, err := h.service.ChangeRole(c.Request.Context(), ac.User, id, req.Role)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, u, "Role updated")
}

func (h *Handler) UpdateStatus(c *gin.Context, ac *apicontext.ApiContext) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, usererrors.ErrInvalidUserID)
		return
	}

	var req UpdateStatusRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	u, err := h.service.SetStatus(c.Request.Context(), ac.User, id, *req.IsActive)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, u, "Status updated")
}
