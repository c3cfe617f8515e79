package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T, role domain.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := rbac.NewDefaultService(zap.NewNop())
	require.NoError(t, err)
	h := rbac.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: domain.SessionUser{ID: uuid.New(), Role: role}})
		c.Next()
	})
	r.GET("/rbac/permissions", apicontext.Handle(h.Permissions))
	r.GET("/rbac/check", apicontext.Handle(h.Check))
	return r
}

func TestHandler_Permissions(t *testing.T) {
	t.Run("own role", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(t, domain.RoleManager).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data rbac.PermissionsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "MANAGER", body.Data.Role)
		assert.Contains(t, body.Data.Features, "reports.view")
	})

	t.Run("non admin cannot inspect other roles", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(t, domain.RoleEmployee).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions?role=ADMIN", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin inspects employee", func(t *testing.T) {
		w := httptest.NewRecorder()
		setupRouter(t, domain.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/permissions?role=employee", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"EMPLOYEE"`)
	})
}

func TestHandler_Check(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(t, domain.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/check?feature=legacy.feature", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"allowed":false`)

	w = httptest.NewRecorder()
	setupRouter(t, domain.RoleAdmin).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rbac/check", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
