package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/config"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", CORSOrigins: "http://localhost:3000"},
	}
}

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testConfig(), zap.NewNop())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("unknown route uses the envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})

	t.Run("panics become a 500 envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}

func TestNewDispatcher(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	cfg := testConfig()
	repo := notification.NewRepository(db)

	cfg.Notification.Delivery = "outbox"
	assert.IsType(t, &kafka.OutboxDispatcher{}, newDispatcher(cfg, db, repo))

	cfg.Notification.Delivery = "direct"
	_, isOutbox := newDispatcher(cfg, db, repo).(*kafka.OutboxDispatcher)
	assert.False(t, isOutbox)
}

func TestModels(t *testing.T) {
	models := Models()
	assert.Len(t, models, 8)
	assert.IsType(t, &kafka.OutboxEvent{}, models[len(models)-1])
}
