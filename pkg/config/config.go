package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Trade source
	Source SourceConfig

	// Analytics constants
	Analytics AnalyticsConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
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

// SourceConfig describes where closed trades come from
type SourceConfig struct {
	Kind         string // http, postgres, file
	APIURL       string
	File         string
	PollInterval time.Duration
	RateLimit    int // requests per second against the upstream API, 0 = unlimited
	CacheTTL     time.Duration
}

// AnalyticsConfig holds the constants the statistics engine works with
type AnalyticsConfig struct {
	InitialCapitalPerBot float64
	RiskFreeRate         float64 // annual
	TradingDays          int
}

// Source kinds
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Source: SourceConfig{
			Kind:         getEnv("TRADE_SOURCE", SourceHTTP),
			APIURL:       getEnv("TRADE_API_URL", "http://localhost:5000/api"),
			File:         getEnv("TRADE_FILE", ""),
			PollInterval: getEnvAsDuration("POLL_INTERVAL", "5s"),
			RateLimit:    getEnvAsInt("SOURCE_RATE_LIMIT", 10),
			CacheTTL:     getEnvAsDuration("SOURCE_CACHE_TTL", "4s"),
		},

		Analytics: AnalyticsConfig{
			InitialCapitalPerBot: getEnvAsFloat("INITIAL_CAPITAL_PER_BOT", 5000),
			RiskFreeRate:         getEnvAsFloat("RISK_FREE_RATE", 0.0438),
			TradingDays:          getEnvAsInt("TRADING_DAYS", 252),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Source.Kind {
	case SourceHTTP:
		if c.Source.APIURL == "" {
			return fmt.Errorf("TRADE_API_URL is required for the http source")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres source")
		}
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("TRADE_FILE is required for the file source")
		}
	default:
		return fmt.Errorf("TRADE_SOURCE must be one of: http, postgres, file")
	}

	if c.Source.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.Analytics.InitialCapitalPerBot <= 0 {
		return fmt.Errorf("INITIAL_CAPITAL_PER_BOT must be positive")
	}
	if c.Analytics.TradingDays <= 0 {
		return fmt.Errorf("TRADING_DAYS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",         // Current directory
		"backend/.env", // From project root
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
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
