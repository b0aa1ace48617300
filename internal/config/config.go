package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port           string
	RequestTimeout time.Duration
	AllowedOrigins []string
	StaticDir      string

	// Google Cloud
	ProjectID   string
	Region      string
	VertexModel string
	AuthEnabled bool

	// Settings cache, disabled when RedisURL is empty
	RedisURL         string
	SettingsCacheTTL time.Duration

	LogLevel string
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		StaticDir:      getEnv("STATIC_DIR", ""),

		ProjectID:   os.Getenv("PROJECTID"),
		Region:      getEnv("REGION", "us-central1"),
		VertexModel: getEnv("VERTEXMODEL", "gemini-2.0-flash"),
		AuthEnabled: getEnvBool("AUTH_ENABLED", false),

		RedisURL:         getEnv("REDIS_URL", ""),
		SettingsCacheTTL: getEnvDuration("SETTINGS_CACHE_TTL", 10*time.Minute),

		LogLevel: getEnv("LOGLEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ProjectID == "" {
		errors = append(errors, "PROJECTID is required")
	}
	if c.Region == "" {
		errors = append(errors, "REGION is required")
	}
	if c.VertexModel == "" {
		errors = append(errors, "VERTEXMODEL is required")
	}

	if c.RequestTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid request timeout %v: must be at least 1 second", c.RequestTimeout))
	}

	if c.RedisURL != "" {
		if parsedURL, err := url.Parse(c.RedisURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid Redis URL '%s': %v", c.RedisURL, err))
		} else if parsedURL.Scheme != "redis" && parsedURL.Scheme != "rediss" {
			errors = append(errors, fmt.Sprintf("invalid Redis URL scheme '%s': must be 'redis' or 'rediss'", parsedURL.Scheme))
		}
		if c.SettingsCacheTTL <= 0 {
			errors = append(errors, fmt.Sprintf("invalid settings cache ttl %v: must be positive", c.SettingsCacheTTL))
		}
	}

	if c.StaticDir != "" {
		if info, err := os.Stat(c.StaticDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("static directory does not exist: %s", c.StaticDir))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// comma separated, blanks dropped
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
