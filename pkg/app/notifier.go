package app

import (
	"fmt"

	"estatehub/pkg/config"
	"estatehub/pkg/kafka"
	kafka_config "estatehub/pkg/kafka/config"
	kafka_middleware "estatehub/pkg/kafka/middleware"
	"estatehub/pkg/mailer"
	"estatehub/pkg/notification"
	"estatehub/pkg/sealer"
)

// NewNotifier builds the transport named by NOTIFICATION_TRANSPORT. The returned func
// releases whatever the transport holds open and is safe to call once on shutdown.
func NewNotifier(cfg *config.Config, source string) (notification.Notifier, func(), error) {
	switch cfg.NotificationTransport {
	case config.NotificationTransportSMTP:
		dispatcher, err := NewDispatcher(cfg)
		if err != nil {
			return nil, nil, err
		}
		cfg.Log.Info("Notifications delivered in-process over SMTP")
		return mailer.NewMailNotifier(dispatcher, cfg.NotificationTimeout, cfg.Log), func() {}, nil

	default:
		kcfg, err := kafka_config.Load("estatehub-" + source)
		if err != nil {
			return nil, nil, err
		}
		kcfg.LogConfiguration(cfg.Log)

		producer, err := kafka.NewProducer(kcfg, cfg.NotificationTopic, cfg.NotificationDLQTopic, cfg.Log)
		if err != nil {
			return nil, nil, fmt.Errorf("create notification producer: %w", err)
		}

		metrics := &kafka_middleware.Metrics{}
		if kcfg.EnableMiddleware {
			producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
			producer.Use(kafka_middleware.MetricsProducerMiddleware(metrics))
		}

		closeFn := func() {
			cfg.Log.Info("Notification producer stats", metrics.Snapshot().LogValues()...)
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close notification producer", "error", err)
			}
		}
		cfg.Log.Info("Notifications published to Kafka", "topic", producer.Topic())
		return notification.NewKafkaNotifier(producer, source, cfg.NotificationTimeout, cfg.Log), closeFn, nil
	}
}

// NewDispatcher wires the SMTP sender and, when a token key is configured, the sealer
// used for newsletter unsubscribe links.
func NewDispatcher(cfg *config.Config) (*mailer.Dispatcher, error) {
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})

	var tokens mailer.TokenSealer
	if cfg.NewsletterTokenKey != "" {
		s, err := sealer.New(cfg.NewsletterTokenKey)
		if err != nil {
			return nil, fmt.Errorf("newsletter token key: %w", err)
		}
		tokens = s
	} else {
		cfg.Log.Warn("Newsletter token key not set, confirmation mails carry no unsubscribe link")
	}

	return mailer.NewDispatcher(sender, mailer.Config{
		FromEmail:     cfg.SMTPFromEmail,
		FromName:      cfg.SMTPFromName,
		CompanyEmail:  cfg.CompanyEmail,
		AdminEmail:    cfg.AdminEmail,
		PublicBaseURL: cfg.PublicBaseURL,
	}, tokens, cfg.Log)
}
