// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything the process needs at startup.
type Config struct {
	ServiceName string
	Environment string
	ListenAddr  string

	LogLevel  string
	LogFormat string

	// DatabaseURL selects the postgres-backed vehicle store when set; empty
	// means the in-memory store.
	DatabaseURL string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		ServiceName:     "vehicle-manager",
		Environment:     "development",
		ListenAddr:      ":8000",
		LogLevel:        "info",
		LogFormat:       "json",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds the configuration from environment variables, falling back to
// defaults for anything unset. Invalid duration values are reported rather
// than silently ignored.
func Load() (Config, error) {
	cfg := Default()

	cfg.ServiceName = getenv("SERVICE_NAME", cfg.ServiceName)
	cfg.Environment = getenv("ENVIRONMENT", cfg.Environment)
	cfg.ListenAddr = getenv("SERVER_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("LOG_FORMAT", cfg.LogFormat)
	cfg.DatabaseURL = getenv("DATABASE_URL", cfg.DatabaseURL)

	for _, d := range []struct {
		env  string
		dest *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	} {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.env, err)
		}
		*d.dest = parsed
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
