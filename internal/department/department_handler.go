package department

import (
	"net/http"

	"go-ems/internal/apicontext"
	departmenterrors "go-ems/internal/department/errors"
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

func (h *Handler) List(c *gin.Context, ac *apicontext.ApiContext) {
	items, total, err := h.service.List(c.Request.Context(), ListFilter{
		Search:    ac.Search.Term,
		SortBy:    ac.Search.SortBy,
		SortOrder: ac.Search.SortOrder,
		Page:      ac.Pagination.Page,
		Limit:     ac.Pagination.Limit,
	})
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

	dept, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dept, nil)
}

func (h *Handler) Create(c *gin.Context, ac *apicontext.ApiContext) {
	var req CreateDepartmentRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	dept, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, dept, "Department created")
}

func (h *Handler) Update(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	dept, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, dept, "Department updated")
}

func (h *Handler) Delete(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Department deleted")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, departmenterrors.ErrInvalidDepartmentID)
		return uuid.Nil, false
	}
	return id, true
}
