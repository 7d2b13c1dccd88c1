package config

import (
	"reflect"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RELAY_URL", "wss://relay.example/posbus")
	t.Setenv("RELAY_TOKEN", "tok")
	t.Setenv("RELAY_USER_ID", "u1")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_BROKER", "")
	t.Setenv("KAFKA_TOPIC", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "4040" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Kafka.Topic != "posbus-events" {
		t.Fatalf("unexpected kafka topic: %q", cfg.Kafka.Topic)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected no brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadRequiresRelaySettings(t *testing.T) {
	cases := []string{"RELAY_URL", "RELAY_TOKEN", "RELAY_USER_ID"}
	for _, missing := range cases {
		t.Run(missing, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(missing, "")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error with %s unset", missing)
			}
		})
	}
}

func TestLoadRequiresSecretOrPublicKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_PUBLIC_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without jwt material")
	}

	t.Setenv("JWT_PUBLIC_KEY", "-----BEGIN PUBLIC KEY-----")
	if _, err := Load(); err != nil {
		t.Fatalf("public key alone should suffice: %v", err)
	}
}

func TestLoadSplitsKafkaBrokers(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "broker-a:9092, broker-b:9092 ,,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"broker-a:9092", "broker-b:9092"}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, want) {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}

func TestLoadKafkaBrokerFallback(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_BROKER", "solo:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, []string{"solo:9092"}) {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
}
