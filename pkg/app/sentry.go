package app

import (
	"github.com/getsentry/sentry-go"

	"estatehub/pkg/config"
)

// InitSentry enables panic reporting when SENTRY_DSN is set. A bad DSN is logged and
// the service keeps running without reporting.
func InitSentry(cfg *config.Config, serviceName string) {
	if cfg.SentryDSN == "" {
		return
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  serviceName,
	})
	if err != nil {
		cfg.Log.Error("Failed to initialize Sentry", "error", err)
		return
	}
	cfg.Log.Info("Sentry panic reporting enabled")
}
