package app

import (
	"go-ems/internal/config"
	"go-ems/internal/shared/connection"

	"gorm.io/gorm"
)

const connectRetries = 5

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(connection.DatabaseOptions{
		Host:            cfg.Database.Host,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		Port:            cfg.Database.Port,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Debug:           cfg.Database.Debug,
	}, connectRetries)
}

func closeDatabase(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
