package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (optional, evaluation history)
	Database DatabaseConfig

	// Redis (optional, shared cache tier and rate limit)
	Redis RedisConfig

	// Upstream APIs
	FantasyCalc FantasyCalcConfig
	FFCalc      FFCalcConfig
	HTTPTimeout time.Duration
	RateLimit   RateLimitConfig

	// Player catalog
	Catalog CatalogConfig

	// Search input smoothing
	Search SearchConfig

	// Scoring bands override (YAML)
	ScoringConfigPath string

	// Cache warming
	WarmSchedule string

	// CORS
	CORSAllowedOrigins []string

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether evaluation history should be persisted
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// FantasyCalcConfig holds the player-values API configuration
type FantasyCalcConfig struct {
	BaseURL string
}

// FFCalcConfig holds the ADP API configuration
type FFCalcConfig struct {
	BaseURL string
}

// RateLimitConfig is the client-side token bucket applied before every upstream call
type RateLimitConfig struct {
	Burst     int
	PerSecond float64
}

// CatalogConfig controls the player catalog eviction policy.
// Zero values mean "never evict".
type CatalogConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// SearchConfig controls keystroke debouncing
type SearchConfig struct {
	Debounce time.Duration
	Cooldown time.Duration
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function calling os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		FantasyCalc: FantasyCalcConfig{
			BaseURL: getEnv("FANTASYCALC_BASE_URL", "https://api.fantasycalc.com"),
		},
		FFCalc: FFCalcConfig{
			BaseURL: getEnv("FFCALC_BASE_URL", "https://fantasyfootballcalculator.com/api/v1"),
		},
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "30s"),
		RateLimit: RateLimitConfig{
			Burst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
			PerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 1),
		},

		Catalog: CatalogConfig{
			TTL:        getEnvAsDuration("CATALOG_TTL", "0s"),
			MaxEntries: getEnvAsInt("CATALOG_MAX_ENTRIES", 0),
		},

		Search: SearchConfig{
			Debounce: getEnvAsDuration("SEARCH_DEBOUNCE", "300ms"),
			Cooldown: getEnvAsDuration("SEARCH_COOLDOWN", "500ms"),
		},

		ScoringConfigPath: getEnv("SCORING_CONFIG", ""),
		WarmSchedule:      getEnv("WARM_SCHEDULE", "0 0 */6 * * *"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be > 0")
	}
	if c.RateLimit.PerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be > 0")
	}

	if c.Catalog.TTL < 0 || c.Catalog.MaxEntries < 0 {
		return fmt.Errorf("CATALOG_TTL and CATALOG_MAX_ENTRIES must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
