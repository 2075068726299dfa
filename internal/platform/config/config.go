package config

import (
	"os"
	"strings"
	"time"
)

// Server captures service-level configuration sourced from the environment so
// main stays lean.
type Server struct {
	Addr string

	// Case-management backend.
	BackendURL      string
	ServiceTokenKey string

	// One-time link tokens.
	LinkTokenKey string

	// Session-scoped stores. Empty RedisURL means in-memory (dev/test).
	RedisURL   string
	SessionTTL time.Duration

	// Audit sinks. Empty means in-memory.
	PostgresDSN  string
	KafkaBrokers []string
	AuditTopic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:            getenv("CHECKIN_ADDR", ":8080"),
		BackendURL:      getenv("CHECKIN_BACKEND_URL", "http://localhost:9090"),
		ServiceTokenKey: getenv("CHECKIN_SERVICE_TOKEN_KEY", "dev-secret-key-change-in-production"),
		LinkTokenKey:    getenv("CHECKIN_LINK_TOKEN_KEY", "dev-link-key-change-in-production"),
		RedisURL:        os.Getenv("CHECKIN_REDIS_URL"),
		PostgresDSN:     os.Getenv("CHECKIN_POSTGRES_DSN"),
		AuditTopic:      getenv("CHECKIN_AUDIT_TOPIC", "checkin.audit.events"),
		SessionTTL:      time.Hour,
	}

	if brokers := os.Getenv("CHECKIN_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if ttl := os.Getenv("CHECKIN_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			cfg.SessionTTL = d
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
