package kafka_config

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"estatehub/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Config struct {
	ClientID    string
	Brokers     []string
	DialTimeout time.Duration

	// SASL/PLAIN is enabled when a username is set.
	SASLUsername string
	SASLPassword string
	TLSEnabled   bool

	Producer ProducerConfig
	Consumer ConsumerConfig

	EnableMiddleware bool
}

type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	Compression  string // none, gzip, snappy, lz4, zstd
}

type ConsumerConfig struct {
	StartOffset       int64 // -1 = newest, -2 = oldest
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration // 0 commits synchronously
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
}

// Load reads the Kafka settings. clientID defaults to the service name so
// broker-side logs and quotas can tell the services apart.
func Load(clientID string) (*Config, error) {
	cfg := &Config{
		ClientID:     getEnvStr(EnvKafkaClientID, clientID),
		Brokers:      splitBrokers(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),
		DialTimeout:  getEnv(EnvKafkaDialTimeout, DefaultDialTimeout, time.ParseDuration),
		SASLUsername: getEnvStr(EnvKafkaSASLUsername, ""),
		SASLPassword: getEnvStr(EnvKafkaSASLPassword, ""),
		TLSEnabled:   getEnv(EnvKafkaTLSEnabled, false, strconv.ParseBool),

		Producer: ProducerConfig{
			MaxAttempts:  getEnv(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts, strconv.Atoi),
			BatchTimeout: getEnv(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout, time.ParseDuration),
			RequireAcks:  getEnv(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks, strconv.Atoi),
			Compression:  getEnvStr(EnvKafkaProducerCompression, DefaultProducerCompression),
		},

		Consumer: ConsumerConfig{
			StartOffset:       getEnv(EnvKafkaConsumerStartOffset, int64(DefaultConsumerStartOffset), parseInt64),
			MinBytes:          getEnv(EnvKafkaConsumerMinBytes, DefaultConsumerMinBytes, strconv.Atoi),
			MaxBytes:          getEnv(EnvKafkaConsumerMaxBytes, DefaultConsumerMaxBytes, strconv.Atoi),
			MaxWait:           getEnv(EnvKafkaConsumerMaxWait, DefaultConsumerMaxWait, time.ParseDuration),
			CommitInterval:    getEnv(EnvKafkaConsumerCommitInterval, time.Duration(DefaultConsumerCommitInterval), time.ParseDuration),
			HeartbeatInterval: getEnv(EnvKafkaConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval, time.ParseDuration),
			SessionTimeout:    getEnv(EnvKafkaConsumerSessionTimeout, DefaultConsumerSessionTimeout, time.ParseDuration),
			RebalanceTimeout:  getEnv(EnvKafkaConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout, time.ParseDuration),
			MaxRetries:        getEnv(EnvKafkaConsumerMaxRetries, DefaultConsumerMaxRetries, strconv.Atoi),
		},

		EnableMiddleware: getEnv(EnvKafkaEnableMiddleware, DefaultEnableMiddleware, strconv.ParseBool),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka configuration: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if len(cfg.Brokers) == 0 {
		add("At least one Kafka broker is required")
	}
	for i, broker := range cfg.Brokers {
		if broker == "" {
			add("Broker %d cannot be empty", i)
		}
	}
	if cfg.SASLUsername != "" && cfg.SASLPassword == "" {
		add("%s is required when %s is set", EnvKafkaSASLPassword, EnvKafkaSASLUsername)
	}
	if cfg.DialTimeout <= 0 {
		add("DialTimeout must be positive, got: %s", cfg.DialTimeout)
	}

	p := cfg.Producer
	if p.MaxAttempts <= 0 {
		add("Producer.MaxAttempts must be positive, got: %d", p.MaxAttempts)
	}
	if p.BatchTimeout <= 0 {
		add("Producer.BatchTimeout must be positive, got: %s", p.BatchTimeout)
	}
	if !validCompressions[p.Compression] {
		add("Producer.Compression must be one of [none, gzip, snappy, lz4, zstd], got: %s", p.Compression)
	}
	if !validAcks[p.RequireAcks] {
		add("Producer.RequireAcks must be -1, 0, or 1, got: %d", p.RequireAcks)
	}

	c := cfg.Consumer
	if c.StartOffset != kafka.FirstOffset && c.StartOffset != kafka.LastOffset {
		add("Consumer.StartOffset must be -1 (newest) or -2 (oldest), got: %d", c.StartOffset)
	}
	if c.MinBytes <= 0 || c.MaxBytes < c.MinBytes {
		add("Consumer.MinBytes/MaxBytes must satisfy 0 < min <= max, got: %d/%d", c.MinBytes, c.MaxBytes)
	}
	if c.MaxWait <= 0 {
		add("Consumer.MaxWait must be positive, got: %s", c.MaxWait)
	}
	if c.CommitInterval < 0 {
		add("Consumer.CommitInterval cannot be negative, got: %s", c.CommitInterval)
	}
	if c.HeartbeatInterval <= 0 || c.SessionTimeout <= c.HeartbeatInterval {
		add("Consumer.SessionTimeout (%s) must exceed a positive HeartbeatInterval (%s)", c.SessionTimeout, c.HeartbeatInterval)
	}
	if c.RebalanceTimeout <= 0 {
		add("Consumer.RebalanceTimeout must be positive, got: %s", c.RebalanceTimeout)
	}
	if c.MaxRetries < 0 {
		add("Consumer.MaxRetries cannot be negative, got: %d", c.MaxRetries)
	}

	if len(errs) > 0 {
		var b strings.Builder
		b.WriteString("validation failed:")
		for i, e := range errs {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, e)
		}
		return fmt.Errorf("%s", b.String())
	}
	return nil
}

func (cfg *Config) mechanism() sasl.Mechanism {
	if cfg.SASLUsername == "" {
		return nil
	}
	return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}
}

func (cfg *Config) tlsConfig() *tls.Config {
	if !cfg.TLSEnabled {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// Transport is shared by every writer built from this config.
func (cfg *Config) Transport() *kafka.Transport {
	return &kafka.Transport{
		ClientID:    cfg.ClientID,
		DialTimeout: cfg.DialTimeout,
		SASL:        cfg.mechanism(),
		TLS:         cfg.tlsConfig(),
	}
}

func (cfg *Config) Dialer() *kafka.Dialer {
	return &kafka.Dialer{
		ClientID:      cfg.ClientID,
		Timeout:       cfg.DialTimeout,
		DualStack:     true,
		SASLMechanism: cfg.mechanism(),
		TLS:           cfg.tlsConfig(),
	}
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"client_id", cfg.ClientID,
		"brokers", cfg.Brokers,
		"sasl_enabled", cfg.SASLUsername != "",
		"tls_enabled", cfg.TLSEnabled,
		"producer_max_attempts", cfg.Producer.MaxAttempts,
		"producer_require_acks", cfg.Producer.RequireAcks,
		"producer_compression", cfg.Producer.Compression,
		"consumer_start_offset", cfg.Consumer.StartOffset,
		"consumer_commit_interval", cfg.Consumer.CommitInterval,
		"consumer_max_retries", cfg.Consumer.MaxRetries,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, b := range parts {
		brokers = append(brokers, strings.TrimSpace(b))
	}
	return brokers
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnv falls back to defaultValue when the variable is unset or does not parse.
func getEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := parse(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
