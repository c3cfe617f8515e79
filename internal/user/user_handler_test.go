package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"
	mock_user "go-ems/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T, actor domain.SessionUser) (*gin.Engine, *mock_user.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := mock_user.NewMockService(gomock.NewController(t))
	h := user.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: actor})
		c.Next()
	})
	r.GET("/users", apicontext.Handle(h.List))
	r.GET("/users/:id", apicontext.Handle(h.GetByID))
	r.PATCH("/users/:id/role", apicontext.Handle(h.ChangeRole))
	r.PATCH("/users/:id/status", apicontext.Handle(h.UpdateStatus))
	return r, svc
}

func TestUserHandler_List(t *testing.T) {
	admin := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("paginated with role filter", func(t *testing.T) {
		r, svc := setupRouter(t, admin)

		svc.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, f user.ListFilter) ([]user.UserResponse, int64, error) {
				require.NotNil(t, f.Role)
				assert.Equal(t, domain.RoleManager, *f.Role)
				assert.Equal(t, 2, f.Page)
				return []user.UserResponse{{ID: uuid.NewString(), Email: "m@x.com"}}, 12, nil
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?role=MANAGER&page=2&limit=5", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Success bool `json:"success"`
			Meta    struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"totalPages"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, int64(12), body.Meta.Total)
		assert.Equal(t, 3, body.Meta.TotalPages)
	})

	t.Run("unknown role filter", func(t *testing.T) {
		r, _ := setupRouter(t, admin)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?role=ROOT", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_GetByID(t *testing.T) {
	admin := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("invalid id", func(t *testing.T) {
		r, _ := setupRouter(t, admin)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupRouter(t, admin)
		id := uuid.New()
		svc.EXPECT().GetByID(gomock.Any(), id).Return(user.UserResponse{}, usererrors.ErrUserNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/"+id.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})
}

func TestUserHandler_UpdateStatus(t *testing.T) {
	admin := domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("missing isActive", func(t *testing.T) {
		r, _ := setupRouter(t, admin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/"+uuid.NewString()+"/status", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "isActive")
	})

	t.Run("success", func(t *testing.T) {
		r, svc := setupRouter(t, admin)
		id := uuid.New()
		svc.EXPECT().SetStatus(gomock.Any(), admin, id, false).Return(user.UserResponse{ID: id.String()}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/users/"+id.String()+"/status", strings.NewReader(`{"isActive":false}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
