package notification

import (
	"fmt"
	"net/http"

	"go-ems/internal/apicontext"
	notificationerrors "go-ems/internal/notification/errors"
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
	unreadOnly := ac.Query.Get("unread") == "true"

	res, err := h.service.List(c.Request.Context(), ac.User.ID, unreadOnly, ac.Pagination.Page, ac.Pagination.Limit)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	meta := ac.Meta(res.Total)
	c.JSON(http.StatusOK, response.SuccessEnvelope{
		Success: true,
		Data:    res.Items,
		Meta:    meta,
		Message: fmt.Sprintf("%d unread", res.Unread),
	})
}

func (h *Handler) MarkRead(c *gin.Context, ac *apicontext.ApiContext) {
	var req MarkReadRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.MarkRead(c.Request.Context(), ac.User.ID, req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, MarkReadResponse{Updated: updated}, nil)
}

func (h *Handler) Delete(c *gin.Context, ac *apicontext.ApiContext) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apicontext.WriteError(c, notificationerrors.ErrInvalidNotificationID)
		return
	}

	if err := h.service.Delete(c.Request.Context(), ac.User.ID, id); err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Notification deleted")
}

func (h *Handler) Broadcast(c *gin.Context, ac *apicontext.ApiContext) {
	var req BroadcastRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	n, err := h.service.Broadcast(c.Request.Context(), req)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusAccepted, BroadcastResponse{Recipients: n}, "Broadcast queued")
}
