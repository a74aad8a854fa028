package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the reporting CRM application.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Archive   ArchiveConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Geo       GeoConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

// UploadConfig controls CSV upload handling.
type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// ArchiveConfig configures the ClickHouse raw-row archive.
type ArchiveConfig struct {
	Enabled  bool
	Addr     string
	Database string
	Username string
	Password string
}

// CacheConfig controls the aggregated-dashboard cache.
type CacheConfig struct {
	TTL time.Duration
}

type AuthConfig struct {
	Enabled   bool
	MasterKey string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled     bool
	RPS         float64
	Burst       int
	UploadRPS   float64
	UploadBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// GeoConfig configures GeoIP enrichment of uploads.
type GeoConfig struct {
	Enabled      bool
	DatabasePath string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("MOLOCO_CRM_HTTP_ADDR", ":8080"),
			Env:             getEnv("MOLOCO_CRM_ENV", "development"),
			ShutdownTimeout: getDurationEnv("MOLOCO_CRM_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Upload: UploadConfig{
			Dir:          getEnv("MOLOCO_CRM_UPLOAD_DIR", "uploads"),
			MaxSizeBytes: int64(getIntEnv("MOLOCO_CRM_UPLOAD_MAX_MB", 50)) << 20,
		},
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("MOLOCO_CRM_DB_ENABLED", false),
			Host:     getEnv("MOLOCO_CRM_DB_HOST", "localhost"),
			Port:     getIntEnv("MOLOCO_CRM_DB_PORT", 5432),
			User:     getEnv("MOLOCO_CRM_DB_USER", "molococrm"),
			Password: getEnv("MOLOCO_CRM_DB_PASSWORD", "molococrm_secret"),
			DBName:   getEnv("MOLOCO_CRM_DB_NAME", "molococrm"),
			SSLMode:  getEnv("MOLOCO_CRM_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("MOLOCO_CRM_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("MOLOCO_CRM_DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("MOLOCO_CRM_REDIS_ENABLED", false),
			Addr:     getEnv("MOLOCO_CRM_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("MOLOCO_CRM_REDIS_PASSWORD", ""),
			DB:       getIntEnv("MOLOCO_CRM_REDIS_DB", 0),
		},
		Archive: ArchiveConfig{
			Enabled:  getBoolEnv("MOLOCO_CRM_ARCHIVE_ENABLED", false),
			Addr:     getEnv("MOLOCO_CRM_ARCHIVE_ADDR", "localhost:9000"),
			Database: getEnv("MOLOCO_CRM_ARCHIVE_DB", "default"),
			Username: getEnv("MOLOCO_CRM_ARCHIVE_USER", "default"),
			Password: getEnv("MOLOCO_CRM_ARCHIVE_PASSWORD", ""),
		},
		Cache: CacheConfig{
			TTL: getDurationEnv("MOLOCO_CRM_CACHE_TTL", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("MOLOCO_CRM_AUTH_ENABLED", false),
			MasterKey: getEnv("MOLOCO_CRM_API_KEY_MASTER", ""),
			SkipPaths: getSliceEnv("MOLOCO_CRM_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("MOLOCO_CRM_RATE_LIMIT_ENABLED", true),
			RPS:         getFloatEnv("MOLOCO_CRM_RATE_LIMIT_RPS", 100),
			Burst:       getIntEnv("MOLOCO_CRM_RATE_LIMIT_BURST", 50),
			UploadRPS:   getFloatEnv("MOLOCO_CRM_RATE_LIMIT_UPLOAD_RPS", 5),
			UploadBurst: getIntEnv("MOLOCO_CRM_RATE_LIMIT_UPLOAD_BURST", 5),
		},
		Log: LogConfig{
			Level:  getEnv("MOLOCO_CRM_LOG_LEVEL", "info"),
			Format: getEnv("MOLOCO_CRM_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("MOLOCO_CRM_METRICS_ENABLED", true),
			Path:    getEnv("MOLOCO_CRM_METRICS_PATH", "/metrics"),
		},
		Geo: GeoConfig{
			Enabled:      getBoolEnv("MOLOCO_CRM_GEO_ENABLED", false),
			DatabasePath: getEnv("MOLOCO_CRM_GEO_DB_PATH", "/app/data/GeoLite2-Country.mmdb"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.MasterKey == "" {
		return fmt.Errorf("MOLOCO_CRM_API_KEY_MASTER is required when auth is enabled")
	}
	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("MOLOCO_CRM_UPLOAD_MAX_MB must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("MOLOCO_CRM_CACHE_TTL must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
