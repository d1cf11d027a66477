package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"CONFIG_FILE", "HOST", "PORT", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"MAX_REQUEST_BODY_SIZE", "LOG_LEVEL", "GIN_MODE", "CORS_ALLOWED_ORIGINS", "PREVIEW_LENGTH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected 30s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.MaxRequestBodySize != 1<<20 {
		t.Errorf("Expected 1MB body limit, got %d", cfg.MaxRequestBodySize)
	}
	if cfg.PreviewLength != 50 {
		t.Errorf("Expected preview length 50, got %d", cfg.PreviewLength)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("Expected wildcard CORS origin, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", " 9090 ")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:9090" {
		t.Errorf("Expected trimmed port in address, got %s", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected 5s, got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" || cfg.GinMode != "test" {
		t.Errorf("Unexpected level/mode: %s/%s", cfg.LogLevel, cfg.GinMode)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.CORSAllowedOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Expected origins %v, got %v", want, cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_InvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default timeout on bad value, got %s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"zero body size", "MAX_REQUEST_BODY_SIZE", "0"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
		{"unknown gin mode", "GIN_MODE", "turbo"},
		{"negative preview", "PREVIEW_LENGTH", "-1"},
		{"origin without scheme", "CORS_ALLOWED_ORIGINS", "dashboard.example"},
		{"wildcard mixed with origins", "CORS_ALLOWED_ORIGINS", "*,https://a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoadFromEnv_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "insight-agent.yaml")
	content := `port: "7070"
request_timeout: 10s
log_level: warn
cors_allowed_origins:
  - https://dashboard.example
preview_length: 20
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Errorf("Expected port from file, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("Expected 10s from file, got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected env to win over file, got %s", cfg.LogLevel)
	}
	if cfg.PreviewLength != 20 {
		t.Errorf("Expected preview length 20, got %d", cfg.PreviewLength)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://dashboard.example" {
		t.Errorf("Unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadFromEnv_ConfigFileErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("request_timeout: whenever\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for bad duration in config file")
	}
}
