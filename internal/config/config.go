package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"insight-agent/internal/logger"
)

const (
	ServiceName    = "insight-agent"
	ServiceTitle   = "Insight-Agent"
	ServiceVersion = "1.0.0"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	LogLevel           string
	GinMode            string
	CORSAllowedOrigins []string
	PreviewLength      int
}

// fileConfig mirrors Config for the optional YAML file named by CONFIG_FILE.
// Empty values leave the default in place.
type fileConfig struct {
	Host               string   `yaml:"host"`
	Port               string   `yaml:"port"`
	RequestTimeout     string   `yaml:"request_timeout"`
	ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64    `yaml:"max_request_body_size"`
	LogLevel           string   `yaml:"log_level"`
	GinMode            string   `yaml:"gin_mode"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	PreviewLength      int      `yaml:"preview_length"`
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Host:               "0.0.0.0",
		Port:               "8080",
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    30 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		LogLevel:           "info",
		GinMode:            gin.ReleaseMode,
		CORSAllowedOrigins: []string{"*"},
		PreviewLength:      50,
	}
}

// LoadFromEnv builds the config from defaults, an optional CONFIG_FILE and the
// environment, in that order of precedence (environment wins).
func LoadFromEnv() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Host = getEnvOrDefault("HOST", cfg.Host)
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)
	cfg.RequestTimeout = parseDurationOrDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ShutdownTimeout = parseDurationOrDefault("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxRequestBodySize = parseIntOrDefault("MAX_REQUEST_BODY_SIZE", cfg.MaxRequestBodySize)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.GinMode = getEnvOrDefault("GIN_MODE", cfg.GinMode)
	cfg.CORSAllowedOrigins = parseListOrDefault("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.PreviewLength = int(parseIntOrDefault("PREVIEW_LENGTH", int64(cfg.PreviewLength)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config can be used to start the server.
func (c *Config) Validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, shutdown=%s)",
			c.RequestTimeout, c.ShutdownTimeout)
	}
	if c.PreviewLength <= 0 {
		return fmt.Errorf("PREVIEW_LENGTH must be > 0 (got %d)", c.PreviewLength)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid GIN_MODE: %q", c.GinMode)
	}
	if len(c.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be empty")
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin == "*" {
			if len(c.CORSAllowedOrigins) > 1 {
				return fmt.Errorf("CORS_ALLOWED_ORIGINS: \"*\" cannot be combined with other origins")
			}
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin %q: must start with http:// or https://", origin)
		}
	}
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Host != "" {
		c.Host = fc.Host
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout in %s: %w", path, err)
		}
		c.RequestTimeout = d
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout in %s: %w", path, err)
		}
		c.ShutdownTimeout = d
	}
	if fc.MaxRequestBodySize != 0 {
		c.MaxRequestBodySize = fc.MaxRequestBodySize
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.GinMode != "" {
		c.GinMode = fc.GinMode
	}
	if len(fc.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	if fc.PreviewLength != 0 {
		c.PreviewLength = fc.PreviewLength
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
