package app

import (
	"fmt"

	"go-ems/internal/attendance"
	"go-ems/internal/department"
	"go-ems/internal/employee"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/notification"
	"go-ems/internal/shared/counter"
	"go-ems/internal/task"
	"go-ems/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models in dependency order.
func Models() []any {
	return []any{
		&counter.Counter{},
		&user.User{},
		&department.Department{},
		&employee.Employee{},
		&task.Task{},
		&attendance.Attendance{},
		&notification.Notification{},
		&kafka.OutboxEvent{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	zap.L().Named("app.migrate").Info("schema migrated", zap.Int("models", len(Models())))
	return nil
}
