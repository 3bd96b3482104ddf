package config

import "time"

const (
	DefaultEnvironment = "development"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "estatehub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultJWTTTL       = 1 * time.Hour
	MinJWTSecretLength  = 32
	DefaultAdminOTPTTL  = 10 * time.Minute
	DefaultSMTPPort     = 587
	DefaultSMTPFromName = "EstateHub"

	NotificationTransportKafka = "kafka"
	NotificationTransportSMTP  = "smtp"

	DefaultNotificationTransport = NotificationTransportKafka
	DefaultNotificationTopic     = "lead-notifications"
	DefaultNotificationDLQTopic  = "lead-notifications-dlq"
	DefaultNotificationTimeout   = 15 * time.Second

	DefaultPublicBaseURL = "http://localhost:8080"

	DefaultPageSize        = 20
	DefaultPaginationLimit = 100
)
