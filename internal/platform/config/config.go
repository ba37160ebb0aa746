package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	HTTPPort       string
	DatabaseDriver string
	DatabaseDSN    string

	StatusRefreshInterval time.Duration
	RefreshOnRead         bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "tallyard"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	driver := strings.TrimSpace(strings.ToLower(os.Getenv("DATABASE_DRIVER")))
	if driver == "" {
		driver = "postgres"
	}

	return Config{
		ServiceName:    service,
		HTTPPort:       port,
		DatabaseDriver: driver,
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),

		StatusRefreshInterval: envDuration("STATUS_REFRESH_INTERVAL", time.Minute),
		RefreshOnRead:         envBool("REFRESH_ON_READ", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
