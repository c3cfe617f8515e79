package app

import (
	"net/http"
	"time"

	"go-ems/internal/config"
	"go-ems/internal/middleware"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/connection"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the cross-cutting middleware chain.
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		gin.CustomRecovery(recoverPanic),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins(),
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID", "X-Client-Type"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Route not found", nil)
	})

	return r
}

func recoverPanic(c *gin.Context, recovered any) {
	contextutil.GetLogger(c.Request.Context(), zap.L()).
		Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.FullPath()))
	response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error", nil)
	c.Abort()
}

// BuildApp connects the infrastructure and registers every module on a new
// router. The returned cleanup closes the connections.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			closeDatabase(db)
			return nil, nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, connectRetries)
	if err != nil {
		closeDatabase(db)
		return nil, nil, err
	}

	cleanup := func() {
		_ = rdb.Close()
		closeDatabase(db)
	}

	router := NewRouter(cfg, logger)
	if err := registerModules(router, cfg, db, rdb, logger); err != nil {
		cleanup()
		return nil, nil, err
	}

	logger.Named("app").Info("modules registered",
		zap.String("env", cfg.App.Env),
		zap.String("notification_delivery", cfg.Notification.Delivery),
	)
	return router, cleanup, nil
}
