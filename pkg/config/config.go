package config

import (
	"encoding/base64"
	"encoding/json"
	"estatehub/pkg/client"
	"estatehub/pkg/logger"
	"fmt"
	"net/mail"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AdminSeed is one account created at startup when its email is not yet registered.
type AdminSeed struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type Config struct {
	Environment string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int
	RedisAddr      string
	RedisPassword  string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	SMTPFromName  string

	CompanyEmail string
	AdminEmail   string

	NotificationTransport string
	NotificationTopic     string
	NotificationDLQTopic  string
	NotificationTimeout   time.Duration

	NewsletterTokenKey string
	PublicBaseURL      string

	AdminSeeds  []AdminSeed
	AdminOTPTTL time.Duration

	SentryDSN string

	CORSAllowedOrigins []string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnvStr(EnvEnvironment, DefaultEnvironment),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		RedisAddr:      getEnvStr(EnvRedisAddr, ""),
		RedisPassword:  getEnvStr(EnvRedisPassword, ""),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),
		JWTTTL:    getEnvDuration(EnvJWTTTL, DefaultJWTTTL),

		SMTPHost:      getEnvStr(EnvSMTPHost, ""),
		SMTPPort:      getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUsername:  getEnvStr(EnvSMTPUsername, ""),
		SMTPPassword:  getEnvStr(EnvSMTPPassword, ""),
		SMTPFromEmail: getEnvStr(EnvSMTPFromEmail, ""),
		SMTPFromName:  getEnvStr(EnvSMTPFromName, DefaultSMTPFromName),

		CompanyEmail: getEnvStr(EnvCompanyEmail, ""),
		AdminEmail:   getEnvStr(EnvAdminEmail, ""),

		NotificationTransport: strings.ToLower(getEnvStr(EnvNotificationTransport, DefaultNotificationTransport)),
		NotificationTopic:     getEnvStr(EnvNotificationTopic, DefaultNotificationTopic),
		NotificationDLQTopic:  getEnvStr(EnvNotificationDLQTopic, DefaultNotificationDLQTopic),
		NotificationTimeout:   getEnvDuration(EnvNotificationTimeout, DefaultNotificationTimeout),

		NewsletterTokenKey: getEnvStr(EnvNewsletterTokenKey, ""),
		PublicBaseURL:      strings.TrimSuffix(getEnvStr(EnvPublicBaseURL, DefaultPublicBaseURL), "/"),

		AdminOTPTTL: getEnvDuration(EnvAdminOTPTTL, DefaultAdminOTPTTL),

		SentryDSN: getEnvStr(EnvSentryDSN, ""),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	var seedErr error
	cfg.AdminSeeds, seedErr = parseAdminSeeds(getEnvStr(EnvAdminSeedAccounts, ""))

	err := cfg.Validate()
	if seedErr != nil {
		err = joinConfigErrors(err, seedErr)
	}
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the optional shared store. It is a no-op when REDIS_ADDR is unset.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.MongoConnTimeout)
}

// RequireSecrets stops the process when any of the named settings is empty. Services call it for
// the secrets only they need, so a migration job does not have to carry a JWT secret.
func (cfg *Config) RequireSecrets(envNames ...string) {
	var missing []string
	for _, name := range envNames {
		if cfg.secret(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		cfg.Log.Fatal("Required settings are not set", "missing", missing)
	}
}

func (cfg *Config) secret(envName string) string {
	switch envName {
	case EnvJWTSecret:
		return cfg.JWTSecret
	case EnvNewsletterTokenKey:
		return cfg.NewsletterTokenKey
	case EnvSMTPHost:
		return cfg.SMTPHost
	case EnvSMTPFromEmail:
		return cfg.SMTPFromEmail
	default:
		return os.Getenv(envName)
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.NotificationTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("NotificationTimeout must be positive, got: %s", cfg.NotificationTimeout))
	}
	if cfg.JWTTTL <= 0 {
		errors = append(errors, fmt.Sprintf("JWTTTL must be positive, got: %s", cfg.JWTTTL))
	}
	if cfg.AdminOTPTTL <= 0 {
		errors = append(errors, fmt.Sprintf("AdminOTPTTL must be positive, got: %s", cfg.AdminOTPTTL))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.SMTPPort < 1 || cfg.SMTPPort > 65535 {
		errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < MinJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters", MinJWTSecretLength))
	}

	switch cfg.NotificationTransport {
	case NotificationTransportKafka, NotificationTransportSMTP:
	default:
		errors = append(errors, fmt.Sprintf("NotificationTransport must be one of [kafka, smtp], got: %s", cfg.NotificationTransport))
	}
	if cfg.NotificationTransport == NotificationTransportKafka && cfg.NotificationTopic == "" {
		errors = append(errors, "NotificationTopic cannot be empty when NotificationTransport is kafka")
	}

	for _, addr := range []struct{ name, value string }{
		{"CompanyEmail", cfg.CompanyEmail},
		{"AdminEmail", cfg.AdminEmail},
		{"SMTPFromEmail", cfg.SMTPFromEmail},
	} {
		if addr.value == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr.value); err != nil {
			errors = append(errors, fmt.Sprintf("%s is not a valid email address, got: %s", addr.name, addr.value))
		}
	}

	if cfg.NewsletterTokenKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.NewsletterTokenKey)
		if err != nil || len(key) != 32 {
			errors = append(errors, "NewsletterTokenKey must be base64 of exactly 32 bytes")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"environment", cfg.Environment,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"redis_enabled", cfg.RedisAddr != "",
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"jwt_secret_set", cfg.JWTSecret != "",
		"jwt_ttl", cfg.JWTTTL,
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
		"smtp_password_set", cfg.SMTPPassword != "",
		"company_email", cfg.CompanyEmail,
		"admin_email", cfg.AdminEmail,
		"notification_transport", cfg.NotificationTransport,
		"notification_topic", cfg.NotificationTopic,
		"newsletter_token_key_set", cfg.NewsletterTokenKey != "",
		"public_base_url", cfg.PublicBaseURL,
		"admin_seed_accounts", len(cfg.AdminSeeds),
		"sentry_enabled", cfg.SentryDSN != "",
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
	)
}

func parseAdminSeeds(raw string) ([]AdminSeed, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var seeds []AdminSeed
	if err := json.Unmarshal([]byte(raw), &seeds); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of {email,password,name}: %w", EnvAdminSeedAccounts, err)
	}

	for i, seed := range seeds {
		if _, err := mail.ParseAddress(seed.Email); err != nil {
			return nil, fmt.Errorf("%s entry %d has an invalid email", EnvAdminSeedAccounts, i)
		}
		if len(seed.Password) < 8 {
			return nil, fmt.Errorf("%s entry %d password must be at least 8 characters", EnvAdminSeedAccounts, i)
		}
		seeds[i].Email = strings.ToLower(strings.TrimSpace(seed.Email))
	}
	return seeds, nil
}

func joinConfigErrors(err error, extra error) error {
	if err == nil {
		return fmt.Errorf("Configuration validation failed:\n  1. %s\n", extra)
	}
	return fmt.Errorf("%s  +. %s\n", err.Error(), extra)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
