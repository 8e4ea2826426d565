package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// Both binaries load the same Config and validate the sections they use.
type Config struct {
	Port string
	Env  string

	DB    DatabaseConfig
	Redis RedisConfig
	Cache CacheConfig
	Admin AdminConfig
	CORS  CORSConfig
	Web   WebConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters. An empty Host disables
// caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig controls the catalog cache.
type CacheConfig struct {
	TTL time.Duration
}

// AdminConfig holds the statically configured admin token. Empty disables it;
// tokens issued into the database still work.
type AdminConfig struct {
	Token string
}

// CORSConfig lists allowed browser origins. A single "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// WebConfig configures the storefront/admin server.
type WebConfig struct {
	Port               string
	APIBaseURL         string
	APIPath            string
	APITimeout         time.Duration
	DraftCapacity      int
	DraftTTL           time.Duration
	DraftSweepInterval time.Duration
	AdminGateStrict    bool
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// Missing .env is fine; production uses real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8000")
	cfg.Env = getEnv("ENV", "development")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.Admin = AdminConfig{Token: getEnv("ADMIN_TOKEN", "")}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))}

	cfg.Web = WebConfig{
		Port:            getEnv("WEB_PORT", "3000"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000"),
		APIPath:         getEnv("API_PATH", "/api"),
		DraftCapacity:   getEnvInt("DRAFT_CAPACITY", 256),
		AdminGateStrict: getEnvBool("ADMIN_GATE_STRICT", false),
	}

	var err error
	if cfg.Cache.TTL, err = parseDurationEnv("CACHE_TTL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.Web.APITimeout, err = parseDurationEnv("API_TIMEOUT", "0s"); err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}
	if cfg.Web.DraftTTL, err = parseDurationEnv("DRAFT_TTL", "2h"); err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TTL: %w", err)
	}
	if cfg.Web.DraftSweepInterval, err = parseDurationEnv("DRAFT_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid DRAFT_SWEEP_INTERVAL: %w", err)
	}

	return cfg, nil
}

// ValidateAPI checks the settings the API server needs.
func (c *Config) ValidateAPI() error {
	if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
		return errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}
	return nil
}

// ValidateWeb checks the settings the web server needs.
func (c *Config) ValidateWeb() error {
	if c.Web.APIBaseURL == "" {
		return errors.New("API_BASE_URL must be set")
	}
	if c.Web.DraftCapacity <= 0 {
		return errors.New("DRAFT_CAPACITY must be positive")
	}
	if c.Web.DraftSweepInterval <= 0 {
		return errors.New("DRAFT_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
