package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the auction house.
type Config struct {
	Port              int           `env:"PORT" envDefault:"8080"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"0s"` // 0 leaves time to explicit heartbeats
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT" envDefault:"5s"`

	ResultWebhookURL string `env:"RESULT_WEBHOOK_URL"`

	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
	RedisResultsChannel string `env:"REDIS_RESULTS_CHANNEL" envDefault:"auction-results"`
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d, must be between 1 and 65535", c.Port)
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	durations := []struct {
		key string
		val time.Duration
	}{
		{"HEARTBEAT_INTERVAL", c.HeartbeatInterval},
		{"READ_TIMEOUT", c.ReadTimeout},
		{"WRITE_TIMEOUT", c.WriteTimeout},
		{"IDLE_TIMEOUT", c.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.ShutdownTimeout},
		{"SINK_TIMEOUT", c.SinkTimeout},
	}
	for _, d := range durations {
		if d.val < 0 {
			return fmt.Errorf("invalid %s: %v, must not be negative", d.key, d.val)
		}
	}

	if c.ResultWebhookURL != "" {
		parsed, err := url.ParseRequestURI(c.ResultWebhookURL)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return fmt.Errorf("invalid RESULT_WEBHOOK_URL: %q, must be an absolute URL", c.ResultWebhookURL)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid RESULT_WEBHOOK_URL: %q, must use http or https", c.ResultWebhookURL)
		}
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("invalid REDIS_DB: %d, must not be negative", c.RedisDB)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
