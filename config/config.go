package config

import (
	"os"
	"strconv"
	"time"

	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Target site configuration
	BaseURL   string
	Province  string
	Specialty string

	// Browser configuration
	Headless        bool
	PageLoadTimeout time.Duration

	// Export configuration
	OutputPath string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int
	PublishEnabled       bool

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	pageLoadTimeout, _ := strconv.Atoi(getEnv("PAGE_LOAD_TIMEOUT", "15"))
	headless, _ := strconv.ParseBool(getEnv("BROWSER_HEADLESS", "true"))
	publishEnabled, _ := strconv.ParseBool(getEnv("PUBLISH_ENABLED", "false"))

	return &Config{
		BaseURL:              getEnv("IRIMC_BASE_URL", "https://membersearch.irimc.org/"),
		Province:             getEnv("IRIMC_PROVINCE", "مازندران"),
		Specialty:            getEnv("IRIMC_SPECIALTY", "تخصص تصویربرداری (رادیولوژی)"),
		Headless:             headless,
		PageLoadTimeout:      time.Duration(pageLoadTimeout) * time.Second,
		OutputPath:           getEnv("OUTPUT_PATH", "DoctorsList.xlsx"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "doctors"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLength,
		PublishEnabled:       publishEnabled,
		Environment:          getEnv("IRIMC_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errs.NewValidation("config", "base URL must not be empty")
	}
	if c.Province == "" {
		return errs.NewValidation("config", "province must not be empty")
	}
	if c.Specialty == "" {
		return errs.NewValidation("config", "specialty must not be empty")
	}
	if c.PageLoadTimeout <= 0 {
		return errs.NewValidation("config", "page load timeout must be positive")
	}
	if c.PublishEnabled && c.RedisStreamCount <= 0 {
		return errs.NewValidation("config", "redis stream count must be positive when publishing is enabled")
	}
	return nil
}

// ProvincesURL returns the root directory URL listing all provinces
func (c *Config) ProvincesURL() string {
	return c.BaseURL + "directory"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
