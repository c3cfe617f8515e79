package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-ems/internal/config"
	"go-ems/internal/messaging/kafka/consumer"
	"go-ems/internal/notification"
	"go-ems/internal/shared/connection"
	"go-ems/internal/user"

	"go.uber.org/zap"
)

// RunConsumer persists notifications published on the notification topic
// until SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	brokers := cfg.KafkaBrokers()
	if len(brokers) == 0 {
		return errors.New("EMS_KAFKA_BROKERS is required")
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(
		notificationRepo,
		user.NewRepository(db),
		notification.NewDirectDispatcher(notificationRepo),
	)

	reader := connection.NewKafkaReader(brokers, cfg.Kafka.NotificationTopic, cfg.Kafka.GroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeNotifications(ctx, reader, notificationService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
