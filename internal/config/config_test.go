package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.HeartbeatInterval != 0 {
		t.Errorf("HeartbeatInterval = %v, want 0 (wall-clock heartbeat off)", cfg.HeartbeatInterval)
	}
	if cfg.SinkTimeout != 5*time.Second {
		t.Errorf("SinkTimeout = %v, want 5s", cfg.SinkTimeout)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.ResultWebhookURL != "" || cfg.RedisAddr != "" {
		t.Errorf("expected sinks disabled by default, got webhook=%q redis=%q", cfg.ResultWebhookURL, cfg.RedisAddr)
	}
	if cfg.RedisResultsChannel != "auction-results" {
		t.Errorf("RedisResultsChannel = %q, want auction-results", cfg.RedisResultsChannel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HEARTBEAT_INTERVAL", "2s")
	t.Setenv("SINK_TIMEOUT", "3s")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("WRITE_TIMEOUT", "5s")
	t.Setenv("IDLE_TIMEOUT", "30s")
	t.Setenv("SHUTDOWN_TIMEOUT", "15s")
	t.Setenv("RESULT_WEBHOOK_URL", "https://example.com/results")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_RESULTS_CHANNEL", "results")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.HeartbeatInterval != 2*time.Second {
		t.Errorf("HeartbeatInterval = %v, want 2s", cfg.HeartbeatInterval)
	}
	if cfg.SinkTimeout != 3*time.Second {
		t.Errorf("SinkTimeout = %v, want 3s", cfg.SinkTimeout)
	}
	if cfg.ResultWebhookURL != "https://example.com/results" {
		t.Errorf("ResultWebhookURL = %q", cfg.ResultWebhookURL)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisPassword != "secret" || cfg.RedisDB != 2 || cfg.RedisResultsChannel != "results" {
		t.Errorf("unexpected redis settings %+v", cfg)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"not-a-number", "0", "70000", "-1"} {
		t.Run(port, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PORT", port)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for PORT=%q", port)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	for _, key := range durationEnvKeys {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-duration")

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}

func TestLoad_NegativeDuration(t *testing.T) {
	for _, key := range durationEnvKeys {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "-1s")

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for negative %s", key)
			}
		})
	}
}

func TestLoad_InvalidWebhookURL(t *testing.T) {
	for _, raw := range []string{"not a url", "/relative/path", "ftp://example.com/x"} {
		t.Run(raw, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("RESULT_WEBHOOK_URL", raw)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for RESULT_WEBHOOK_URL=%q", raw)
			}
		})
	}
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	for _, db := range []string{"one", "-1"} {
		t.Run(db, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("REDIS_DB", db)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for REDIS_DB=%q", db)
			}
		})
	}
}
