package config

const (
	EnvEnvironment = "ENVIRONMENT"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvRedisAddr      = "REDIS_ADDR"
	EnvRedisPassword  = "REDIS_PASSWORD"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTTTL    = "JWT_TTL"

	EnvSMTPHost      = "SMTP_HOST"
	EnvSMTPPort      = "SMTP_PORT"
	EnvSMTPUsername  = "SMTP_USERNAME"
	EnvSMTPPassword  = "SMTP_PASSWORD"
	EnvSMTPFromEmail = "SMTP_FROM_EMAIL"
	EnvSMTPFromName  = "SMTP_FROM_NAME"

	EnvCompanyEmail = "COMPANY_EMAIL"
	EnvAdminEmail   = "ADMIN_EMAIL"

	EnvNotificationTransport = "NOTIFICATION_TRANSPORT"
	EnvNotificationTopic     = "NOTIFICATION_TOPIC"
	EnvNotificationDLQTopic  = "NOTIFICATION_DLQ_TOPIC"
	EnvNotificationTimeout   = "NOTIFICATION_TIMEOUT"

	EnvNewsletterTokenKey = "NEWSLETTER_TOKEN_KEY"
	EnvPublicBaseURL      = "PUBLIC_BASE_URL"

	EnvAdminSeedAccounts = "ADMIN_SEED_ACCOUNTS"
	EnvAdminOTPTTL       = "ADMIN_OTP_TTL"

	EnvSentryDSN = "SENTRY_DSN"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
)
