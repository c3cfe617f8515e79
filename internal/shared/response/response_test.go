package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int
	}{
		{"exact division", 20, 1, 10, 2},
		{"rounds up", 21, 1, 10, 3},
		{"empty", 0, 1, 10, 0},
		{"zero limit", 5, 1, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := response.NewPaginationMeta(tc.total, tc.page, tc.limit)
			assert.Equal(t, tc.totalPages, meta.TotalPages)
			assert.Equal(t, tc.total, meta.Total)
		})
	}
}

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success with meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		meta := response.NewPaginationMeta(11, 2, 5)

		response.Success(c, http.StatusOK, []string{"a"}, &meta)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		m := body["meta"].(map[string]any)
		assert.Equal(t, float64(3), m["totalPages"])
		assert.Equal(t, float64(5), m["limit"])
	})

	t.Run("error carries details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", map[string][]string{"email": {"Email is required"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Validation failed", body["error"])
		assert.Contains(t, body, "details")
	})
}
