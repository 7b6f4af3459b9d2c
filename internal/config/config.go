package config

import (
	"log/slog"
	"os"
)

const devSessionSecret = "dev-secret-change-in-production"

type Config struct {
	Port          string
	Env           string
	DatabaseDSN   string
	SessionSecret string
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/devgear?parseTime=true"),
		SessionSecret: getEnv("SESSION_SECRET", devSessionSecret),
	}

	if cfg.Env == "production" && cfg.SessionSecret == devSessionSecret {
		slog.Error("SESSION_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// Production reports whether the server runs behind TLS in a deployed
// environment; it controls the Secure attribute on the session cookie.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
