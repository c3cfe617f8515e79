package department_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/apicontext"
	"go-ems/internal/department"
	departmenterrors "go-ems/internal/department/errors"
	departmentMock "go-ems/internal/department/mock"
	"go-ems/internal/domain"
	"go-ems/internal/shared/ref"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*gin.Engine, *departmentMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := departmentMock.NewMockService(gomock.NewController(t))
	h := department.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}})
		c.Next()
	})
	r.GET("/departments/:id", apicontext.Handle(h.GetByID))
	r.POST("/departments", apicontext.Handle(h.Create))
	r.DELETE("/departments/:id", apicontext.Handle(h.Delete))
	return r, svc
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("manager given as typed ref", func(t *testing.T) {
		r, svc := setupRouter(t)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				require.NotNil(t, req.Manager)
				assert.Equal(t, ref.KindID, req.Manager.Kind)
				return department.DepartmentResponse{ID: uuid.NewString(), Name: req.Name}, nil
			})

		body := `{"name":"Eng","manager":{"kind":"id","value":"` + uuid.NewString() + `"}}`
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"message":"Department created"`)
	})

	t.Run("missing name", func(t *testing.T) {
		r, _ := setupRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDepartmentHandler_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		r, _ := setupRouter(t)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments/abc", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupRouter(t)
		id := uuid.New()
		svc.EXPECT().GetByID(gomock.Any(), id).Return(department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/departments/"+id.String(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Delete(t *testing.T) {
	r, svc := setupRouter(t)
	id := uuid.New()
	svc.EXPECT().Delete(gomock.Any(), id).Return(departmenterrors.ErrDepartmentHasEmployees)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/departments/"+id.String(), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
