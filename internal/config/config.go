// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server settings.
type Config struct {
	BackendURL     string
	ListenAddr     string
	LogLevel       string
	AppEnv         string
	DatabaseURL    string
	BackendTimeout time.Duration
	SessionIdleTTL time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL:  getenv("MANCALA_BACKEND_URL", "http://localhost:8080"),
		ListenAddr:  getenv("LISTEN_ADDR", ":4200"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		AppEnv:      getenv("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("MANCALA_BACKEND_URL %q is not an absolute URL", cfg.BackendURL)
	}

	if cfg.BackendTimeout, err = duration("BACKEND_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = duration("SESSION_IDLE_TTL", 2*time.Hour); err != nil {
		return nil, err
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// Production reports whether the app runs in production mode.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
