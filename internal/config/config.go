package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Security SecurityConfig
	Relay    RelayConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type RelayConfig struct {
	URL    string
	Token  string
	UserID string
	// WorldID, when set, is teleported to right after the connection
	// comes up.
	WorldID string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "4040"),
		},
		Logging: LoggingConfig{
			Level:     envOr("LOG_LEVEL", "info"),
			Format:    envOr("LOG_FORMAT", "text"),
			Directory: envOr("LOG_DIR", "./logs"),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
		Relay: RelayConfig{
			URL:     os.Getenv("RELAY_URL"),
			Token:   os.Getenv("RELAY_TOKEN"),
			UserID:  os.Getenv("RELAY_USER_ID"),
			WorldID: os.Getenv("RELAY_WORLD_ID"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(envOr("KAFKA_BROKERS", os.Getenv("KAFKA_BROKER"))),
			Topic:   envOr("KAFKA_TOPIC", "posbus-events"),
		},
	}

	if cfg.Relay.URL == "" {
		return nil, fmt.Errorf("RELAY_URL is required")
	}
	if cfg.Relay.Token == "" {
		return nil, fmt.Errorf("RELAY_TOKEN is required")
	}
	if cfg.Relay.UserID == "" {
		return nil, fmt.Errorf("RELAY_USER_ID is required")
	}
	if cfg.Security.JWTSecret == "" && cfg.Security.JWTPublicKey == "" {
		return nil, fmt.Errorf("JWT_SECRET or JWT_PUBLIC_KEY is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
