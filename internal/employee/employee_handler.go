package employee

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go-ems/internal/apicontext"
	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/ref"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMaxAvatarSize = 2 << 20

type Handler struct {
	service       Service
	maxAvatarSize int64
	logger        *zap.Logger
}

func NewHandler(service Service, maxAvatarSize int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	if maxAvatarSize <= 0 {
		maxAvatarSize = defaultMaxAvatarSize
	}
	return &Handler{service: service, maxAvatarSize: maxAvatarSize, logger: l}
}

func (h *Handler) List(c *gin.Context, ac *apicontext.ApiContext) {
	filter := ListFilter{
		Search:    ac.Search.Term,
		SortBy:    ac.Search.SortBy,
		SortOrder: ac.Search.SortOrder,
		Page:      ac.Pagination.Page,
		Limit:     ac.Pagination.Limit,
	}
	dept, err := ref.FromQuery(ac.Query.Get("departmentId"), ac.Query.Get("department"))
	if err != nil {
		apicontext.WriteError(c, employeeerrors.ErrInvalidDepartmentID)
		return
	}
	filter.Department = dept
	if raw := ac.Query.Get("status"); raw != "" {
		st, ok := ParseStatus(strings.ToUpper(raw))
		if !ok {
			apicontext.WriteError(c, employeeerrors.ErrInvalidStatus)
			return
		}
		filter.Status = st
	}
	if raw := ac.Query.Get("includeInactive"); raw != "" {
		filter.IncludeInactive, _ = strconv.ParseBool(raw)
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
	var req CreateEmployeeRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, resp, "Employee created")
}

func (h *Handler) Update(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), ac.User, id, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Employee updated")
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
	response.SuccessWithMessage(c, http.StatusOK, nil, "Employee deactivated")
}

func (h *Handler) Hierarchy(c *gin.Context, ac *apicontext.ApiContext) {
	tree, err := h.service.Hierarchy(c.Request.Context())
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree, nil)
}

func (h *Handler) Stats(c *gin.Context, ac *apicontext.ApiContext) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) UploadAvatar(c *gin.Context, ac *apicontext.ApiContext) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAvatarSize+1<<20)
	fh, err := c.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apicontext.WriteError(c, employeeerrors.ErrAvatarTooLarge)
			return
		}
		apicontext.WriteError(c, employeeerrors.ErrAvatarRequired)
		return
	}
	if fh.Size > h.maxAvatarSize {
		apicontext.WriteError(c, employeeerrors.ErrAvatarTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("open avatar upload failed", zap.Error(err))
		apicontext.WriteError(c, employeeerrors.ErrAvatarUploadFailed)
		return
	}
	defer f.Close()

	resp, err := h.service.UploadAvatar(c.Request.Context(), ac.User, id, fh.Filename, f)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, resp, "Avatar updated")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, employeeerrors.ErrInvalidEmployeeID)
		return uuid.Nil, false
	}
	return id, true
}
