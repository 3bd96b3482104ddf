package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"estatehub/internal/notifier"
	"estatehub/pkg/app"
	"estatehub/pkg/config"
	"estatehub/pkg/kafka"
	kafka_config "estatehub/pkg/kafka/config"
	kafka_middleware "estatehub/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.RequireSecrets(config.EnvSMTPHost, config.EnvSMTPFromEmail)
	app.InitSentry(cfg, ServiceName)
	defer sentry.Flush(2 * time.Second)

	kcfg, err := kafka_config.Load("estatehub-" + ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to load Kafka configuration", "error", err)
	}
	kcfg.LogConfiguration(cfg.Log)

	dispatcher, err := app.NewDispatcher(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to create mail dispatcher", "error", err)
	}
	handler := notifier.NewEventHandler(dispatcher, cfg.Log)

	consumer, err := kafka.NewConsumer(kcfg, cfg.NotificationTopic, notifier.ConsumerGroup, cfg.NotificationDLQTopic, handler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create notification consumer", "error", err)
	}

	metrics := &kafka_middleware.Metrics{}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafka_middleware.MetricsConsumerMiddleware(metrics))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Notification consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down notifier", "lag", consumer.Lag())
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close notification consumer", "error", err)
	}
	cfg.Log.Info("Notification consumer stats", metrics.Snapshot().LogValues()...)
}
