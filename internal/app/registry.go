package app

import (
	"go-ems/internal/attendance"
	"go-ems/internal/auth"
	"go-ems/internal/config"
	"go-ems/internal/department"
	"go-ems/internal/employee"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/middleware"
	"go-ems/internal/notification"
	"go-ems/internal/rbac"
	"go-ems/internal/report"
	"go-ems/internal/shared/cache"
	"go-ems/internal/shared/counter"
	"go-ems/internal/shared/storage"
	"go-ems/internal/shared/token"
	"go-ems/internal/task"
	"go-ems/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newDispatcher picks how post-commit notifications leave the request:
// written straight to the notifications table, or queued in the outbox
// for the worker to relay through kafka.
func newDispatcher(cfg *config.Config, db *gorm.DB, notifications notification.Repository) notification.Dispatcher {
	if cfg.Notification.Delivery == "outbox" {
		return kafka.NewOutboxDispatcher(kafka.NewOutboxRepository(db), cfg.Kafka.NotificationTopic)
	}
	return notification.NewDirectDispatcher(notifications)
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Infrastructure ---
	store := cache.NewRedisStore(rdb, logger)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	images, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		return err
	}
	loc := cfg.Location()

	// --- Repositories ---
	userRepo := user.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	taskRepo := task.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	reportRepo := report.NewRepository(db)
	counterRepo := counter.NewRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewDefaultService(logger)
	if err != nil {
		return err
	}

	// --- Services ---
	dispatcher := newDispatcher(cfg, db, notificationRepo)

	authService := auth.NewService(userRepo, tokens, logger)
	userService := user.NewService(userRepo, logger)
	departmentService := department.NewService(db, departmentRepo, userRepo, store, cfg.Cache.TTL, logger)
	employeeService := employee.NewService(employee.Deps{
		DB:          db,
		Repo:        employeeRepo,
		Users:       userRepo,
		Departments: departmentRepo,
		Counter:     counterRepo,
		Cache:       store,
		CacheTTL:    cfg.Cache.TTL,
		Images:      images,
		Notifier:    dispatcher,
	}, logger)
	taskService := task.NewService(db, taskRepo, userRepo, store, dispatcher, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, employeeRepo, store, loc, logger)
	notificationService := notification.NewService(notificationRepo, userRepo, dispatcher, logger)
	reportService := report.NewService(reportRepo, store, cfg.Cache.TTL, loc, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.Auth.CookieSecure)
	userHandler := user.NewHandler(userService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService, cfg.Storage.MaxImageSize, logger)
	taskHandler := task.NewHandler(taskService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	notificationHandler := notification.NewHandler(notificationService)
	reportHandler := report.NewHandler(reportService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	authMW := middleware.AuthMiddleware(tokens)
	idempotency := middleware.Idempotency(rdb)

	router.Static(cfg.Storage.BaseURL, images.BasePath())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		user.RegisterRoutes(api, userHandler, authMW, rbacService)
		department.RegisterRoutes(api, departmentHandler, authMW, rbacService, idempotency)
		employee.RegisterRoutes(api, employeeHandler, authMW, rbacService, idempotency)
		task.RegisterRoutes(api, taskHandler, authMW, rbacService, idempotency)
		attendance.RegisterRoutes(api, attendanceHandler, authMW)
		notification.RegisterRoutes(api, notificationHandler, authMW, rbacService)
		report.RegisterRoutes(api, reportHandler, authMW, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
	}

	return nil
}
