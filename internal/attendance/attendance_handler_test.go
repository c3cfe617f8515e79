package attendance_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/apicontext"
	"go-ems/internal/attendance"
	attendanceerrors "go-ems/internal/attendance/errors"
	attendanceMock "go-ems/internal/attendance/mock"
	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/ref"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T, actor domain.SessionUser) (*gin.Engine, *attendanceMock.MockService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	svc := attendanceMock.NewMockService(gomock.NewController(t))
	h := attendance.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(domain.SessionKey, domain.Session{User: actor})
		c.Next()
	})
	r.GET("/attendance", apicontext.Handle(h.List))
	r.GET("/attendance/today", apicontext.Handle(h.Today))
	r.POST("/attendance/check-in", apicontext.Handle(h.CheckIn))
	r.POST("/attendance/check-out", apicontext.Handle(h.CheckOut))
	return r, svc
}

func TestAttendanceHandler_CheckIn(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		r, svc := setupRouter(t, staff)
		svc.EXPECT().
			CheckIn(gomock.Any(), staff, attendance.CheckInRequest{}).
			Return(attendance.AttendanceResponse{Status: attendance.StatusLate}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))

		require.Equal(t, http.StatusCreated, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Checked in", body["message"])
		assert.Equal(t, "LATE", body["data"].(map[string]any)["status"])
	})

	t.Run("rejects an out of range latitude", func(t *testing.T) {
		r, _ := setupRouter(t, staff)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{"latitude":120,"longitude":10}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already checked in", func(t *testing.T) {
		r, svc := setupRouter(t, staff)
		svc.EXPECT().CheckIn(gomock.Any(), staff, gomock.Any()).
			Return(attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/attendance/check-in", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeInvalidState)
	})
}

func TestAttendanceHandler_List(t *testing.T) {
	t.Run("passes filters", func(t *testing.T) {
		r, svc := setupRouter(t, staff)
		svc.EXPECT().List(gomock.Any(), staff, gomock.Any()).
			DoAndReturn(func(_ any, _ domain.SessionUser, f attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
				assert.Equal(t, attendance.StatusEarlyLeave, f.Status)
				assert.Equal(t, "2024-03-01", f.StartDate)
				assert.Equal(t, "2024-03-31", f.EndDate)
				return []attendance.AttendanceResponse{}, 0, nil
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?status=early_leave&startDate=2024-03-01&endDate=2024-03-31", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("department by explicit id", func(t *testing.T) {
		id := "3b241101-e2bb-4255-8caf-4136c566a962"
		r, svc := setupRouter(t, staff)
		svc.EXPECT().List(gomock.Any(), staff, gomock.Any()).
			DoAndReturn(func(_ any, _ domain.SessionUser, f attendance.ListFilter) ([]attendance.AttendanceResponse, int64, error) {
				assert.Equal(t, ref.ByID(id), f.Department)
				return nil, 0, nil
			})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?departmentId="+id, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed department id", func(t *testing.T) {
		r, _ := setupRouter(t, staff)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?departmentId=eng", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		r, _ := setupRouter(t, staff)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance?status=sleeping", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttendanceHandler_Today(t *testing.T) {
	r, svc := setupRouter(t, staff)
	svc.EXPECT().Today(gomock.Any(), staff).Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/today", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":null`)
}
