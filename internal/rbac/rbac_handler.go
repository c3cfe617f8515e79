package rbac

import (
	"net/http"
	"strings"

	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Permissions lists the caller's features. ADMIN may inspect another role
// with ?role=.
func (h *Handler) Permissions(c *gin.Context, ac *apicontext.ApiContext) {
	role := ac.User.Role
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		if ac.User.Role != domain.RoleAdmin {
			apicontext.WriteError(c, apperror.Forbidden("Only administrators can inspect other roles"))
			return
		}
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			apicontext.WriteError(c, apperror.InvalidInput("Unknown role '"+raw+"'"))
			return
		}
		role = parsed
	}

	features := h.service.Permissions(role)
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = string(f)
	}

	response.Success(c, http.StatusOK, PermissionsResponse{Role: string(role), Features: names}, nil)
}

// Check answers whether the caller holds a feature.
func (h *Handler) Check(c *gin.Context, ac *apicontext.ApiContext) {
	feature := strings.TrimSpace(c.Query("feature"))
	if feature == "" {
		apicontext.WriteError(c, apperror.RequiredField("feature"))
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{
		Role:    string(ac.User.Role),
		Feature: feature,
		Allowed: h.service.Allowed(ac.User.Role, feature),
	}, nil)
}
