package user_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/user"
	mock_user "go-ems/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type allowAll struct{}

func (allowAll) Allowed(domain.Role, string) bool { return true }

func setupRoutes(t *testing.T, actor domain.SessionUser) (*gin.Engine, *mock_user.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := mock_user.NewMockService(gomock.NewController(t))
	auth := func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: actor})
		c.Next()
	}

	r := gin.New()
	user.RegisterRoutes(r.Group("/api/v1"), user.NewHandler(svc), auth, allowAll{})
	return r, svc
}

func TestRegisterRoutes_AccountChangesNeedAdmin(t *testing.T) {
	target := uuid.NewString()

	t.Run("manager is refused with a reason", func(t *testing.T) {
		r, _ := setupRoutes(t, domain.SessionUser{ID: uuid.New(), Role: domain.RoleManager})

		for _, path := range []string{"/role", "/status"} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+target+path, strings.NewReader(`{}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code, path)
			assert.Contains(t, w.Body.String(), "requires one of: ADMIN", path)
		}
	})

	t.Run("admin reaches the handler", func(t *testing.T) {
		actor := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}
		r, svc := setupRoutes(t, actor)
		svc.EXPECT().
			ChangeRole(gomock.Any(), actor, uuid.MustParse(target), "MANAGER").
			Return(user.UserResponse{ID: target, Role: "MANAGER"}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+target+"/role", strings.NewReader(`{"role":"MANAGER"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
