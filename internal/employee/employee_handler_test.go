package employee_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/apicontext"
	"go-ems/internal/domain"
	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	employeeMock "go-ems/internal/employee/mock"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/ref"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T, actor domain.SessionUser) (*gin.Engine, *employeeMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := employeeMock.NewMockService(gomock.NewController(t))
	h := employee.NewHandler(svc, 1024)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: actor})
		c.Next()
	})
	r.GET("/employees", apicontext.Handle(h.List))
	r.GET("/employees/hierarchy", apicontext.Handle(h.Hierarchy))
	r.GET("/employees/:id", apicontext.Handle(h.GetByID))
	r.POST("/employees", apicontext.Handle(h.Create))
	r.POST("/employees/:id/avatar", apicontext.Handle(h.UploadAvatar))
	return r, svc
}

func admin() domain.SessionUser {
	return domain.SessionUser{ID: uuid.New(), Role: domain.RoleAdmin}
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("passes filters and pagination", func(t *testing.T) {
		r, svc := setupRouter(t, admin())
		svc.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ domain.SessionUser, f employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
				assert.Equal(t, ref.ByName("Eng"), f.Department)
				assert.Equal(t, employee.StatusOnLeave, f.Status)
				assert.True(t, f.IncludeInactive)
				assert.Equal(t, 2, f.Page)
				return []employee.EmployeeResponse{{ID: "e-1"}}, 25, nil
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/employees?department=Eng&status=on_leave&includeInactive=true&page=2&limit=10", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		meta := body["meta"].(map[string]any)
		assert.Equal(t, float64(3), meta["totalPages"])
	})

	t.Run("department id and name are separate params", func(t *testing.T) {
		id := "3b241101-e2bb-4255-8caf-4136c566a962"
		cases := []struct {
			query string
			want  *ref.Ref
		}{
			{"departmentId=" + id, ref.ByID(id)},
			{"department=" + id, ref.ByName(id)},
			{"departmentId=" + id + "&department=Eng", ref.ByID(id)},
			{"", nil},
		}
		for _, tc := range cases {
			r, svc := setupRouter(t, admin())
			svc.EXPECT().
				List(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, _ domain.SessionUser, f employee.ListFilter) ([]employee.EmployeeResponse, int64, error) {
					assert.Equal(t, tc.want, f.Department, tc.query)
					return nil, 0, nil
				})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?"+tc.query, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("malformed department id", func(t *testing.T) {
		r, _ := setupRouter(t, admin())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?departmentId=eng", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), employeeerrors.ErrInvalidDepartmentID.Message)
	})

	t.Run("unknown status", func(t *testing.T) {
		r, _ := setupRouter(t, admin())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?status=retired", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("department as bare name", func(t *testing.T) {
		r, svc := setupRouter(t, admin())
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				require.NotNil(t, req.Department)
				assert.Equal(t, ref.KindName, req.Department.Kind)
				return employee.EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound.WithMessage("Department '%s' not found", req.Department.Value)
			})

		body := `{"name":"A","email":"a@x.com","password":"pw","employeeId":"E1","department":"Eng","position":"Dev"}`
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Department 'Eng' not found")
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("validation details keyed by json field", func(t *testing.T) {
		r, _ := setupRouter(t, admin())

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"A","email":"nope","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"email"`)
	})

	t.Run("created", func(t *testing.T) {
		r, svc := setupRouter(t, admin())
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(employee.EmployeeResponse{ID: "e-1", EmployeeID: "EMP-000001"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"name":"A","email":"a@x.com","password":"pw"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employeeId":"EMP-000001"`)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	t.Run("forbidden", func(t *testing.T) {
		actor := domain.SessionUser{ID: uuid.New(), Role: domain.RoleEmployee}
		r, svc := setupRouter(t, actor)
		id := uuid.New()
		svc.EXPECT().GetByID(gomock.Any(), actor, id).Return(employee.EmployeeResponse{}, employeeerrors.ErrNotOwner)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+id.String(), nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hierarchy is not treated as an id", func(t *testing.T) {
		r, svc := setupRouter(t, admin())
		svc.EXPECT().Hierarchy(gomock.Any()).Return([]*employee.HierarchyNode{{Name: "Grace"}}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/hierarchy", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Grace")
	})
}

func TestEmployeeHandler_UploadAvatar(t *testing.T) {
	multipartBody := func(t *testing.T, size int) (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("avatar", "me.png")
		require.NoError(t, err)
		_, _ = fw.Write(bytes.Repeat([]byte{1}, size))
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("too large", func(t *testing.T) {
		r, _ := setupRouter(t, admin())
		body, ct := multipartBody(t, 2048)

		req := httptest.NewRequest(http.MethodPost, "/employees/"+uuid.NewString()+"/avatar", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		r, _ := setupRouter(t, admin())

		req := httptest.NewRequest(http.MethodPost, "/employees/"+uuid.NewString()+"/avatar", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("uploaded", func(t *testing.T) {
		r, svc := setupRouter(t, admin())
		id := uuid.New()
		svc.EXPECT().
			UploadAvatar(gomock.Any(), gomock.Any(), id, "me.png", gomock.Any()).
			Return(employee.EmployeeResponse{Avatar: "/uploads/avatars/me.png"}, nil)
		body, ct := multipartBody(t, 100)

		req := httptest.NewRequest(http.MethodPost, "/employees/"+id.String()+"/avatar", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
