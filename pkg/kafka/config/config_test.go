package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "k1:9092, k2:9092")
	t.Setenv(EnvKafkaProducerCompression, "gzip")
	t.Setenv(EnvKafkaConsumerMaxWait, "2s")

	cfg, err := Load("estatehub-leads")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.ClientID != "estatehub-leads" {
		t.Errorf("ClientID = %q, want service default", cfg.ClientID)
	}
	if cfg.Producer.Compression != "gzip" {
		t.Errorf("Producer.Compression = %q", cfg.Producer.Compression)
	}
	if cfg.Consumer.MaxWait != 2*time.Second {
		t.Errorf("Consumer.MaxWait = %s", cfg.Consumer.MaxWait)
	}
	if cfg.Consumer.StartOffset != DefaultConsumerStartOffset {
		t.Errorf("Consumer.StartOffset = %d", cfg.Consumer.StartOffset)
	}
}

func TestLoad_ClientIDOverride(t *testing.T) {
	t.Setenv(EnvKafkaClientID, "custom")

	cfg, err := Load("estatehub-admin")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ClientID != "custom" {
		t.Errorf("ClientID = %q, want custom", cfg.ClientID)
	}
}

func TestLoad_UnparsableValueFallsBack(t *testing.T) {
	t.Setenv(EnvKafkaProducerMaxAttempts, "many")

	cfg, err := Load("x")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Producer.MaxAttempts != DefaultProducerMaxAttempts {
		t.Errorf("Producer.MaxAttempts = %d, want default", cfg.Producer.MaxAttempts)
	}
}

func TestLoad_InvalidReturnsNumberedErrors(t *testing.T) {
	t.Setenv(EnvKafkaProducerCompression, "brotli")
	t.Setenv(EnvKafkaProducerRequireAcks, "7")

	_, err := Load("x")
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "1. ") || !strings.Contains(msg, "2. ") {
		t.Errorf("expected numbered errors, got %q", msg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"empty broker entry", map[string]string{EnvKafkaBrokers: "k1:9092,"}, "Broker 1"},
		{"sasl user without password", map[string]string{EnvKafkaSASLUsername: "svc"}, EnvKafkaSASLPassword},
		{"explicit offset", map[string]string{EnvKafkaConsumerStartOffset: "42"}, "StartOffset"},
		{"heartbeat beyond session", map[string]string{EnvKafkaConsumerHeartbeatInterval: "1m"}, "SessionTimeout"},
		{"max below min bytes", map[string]string{EnvKafkaConsumerMinBytes: "100", EnvKafkaConsumerMaxBytes: "10"}, "MaxBytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("x")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestTransportAndDialer(t *testing.T) {
	cfg := &Config{ClientID: "svc", DialTimeout: time.Second}

	tr := cfg.Transport()
	if tr.SASL != nil || tr.TLS != nil {
		t.Error("plain config should not enable SASL or TLS")
	}

	cfg.SASLUsername, cfg.SASLPassword, cfg.TLSEnabled = "u", "p", true
	d := cfg.Dialer()
	if d.SASLMechanism == nil || d.SASLMechanism.Name() != "PLAIN" {
		t.Errorf("SASLMechanism = %v, want PLAIN", d.SASLMechanism)
	}
	if d.TLS == nil {
		t.Error("TLS should be configured")
	}
	if d.ClientID != "svc" || d.Timeout != time.Second {
		t.Errorf("Dialer = %+v", d)
	}
}
