package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App      AppConfig
	Accounts AccountsConfig
	Search   SearchConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// AccountsConfig points at the remote account service.
type AccountsConfig struct {
	BaseURL             string
	TimeoutSeconds      int
	PatchTimeoutSeconds int
}

// SearchConfig tunes the fuzzy filter.
type SearchConfig struct {
	Threshold          float64
	Location           int
	Distance           int
	MaxPatternLength   int
	MinMatchCharLength int
}

// PostgresConfig holds DB connection values for the toggle audit journal.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the snapshot cache.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	SnapshotTTLSecs int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	threshold, err := strconv.ParseFloat(getEnv("SEARCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_THRESHOLD: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "account-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Accounts: AccountsConfig{
			BaseURL:             getEnv("ACCOUNTS_API_BASE_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds:      getEnvAsInt("ACCOUNTS_API_TIMEOUT_SECONDS", 10),
			PatchTimeoutSeconds: getEnvAsInt("ACCOUNTS_PATCH_TIMEOUT_SECONDS", 10),
		},
		Search: SearchConfig{
			Threshold:          threshold,
			Location:           getEnvAsInt("SEARCH_LOCATION", 0),
			Distance:           getEnvAsInt("SEARCH_DISTANCE", 100),
			MaxPatternLength:   getEnvAsInt("SEARCH_MAX_PATTERN_LENGTH", 32),
			MinMatchCharLength: getEnvAsInt("SEARCH_MIN_MATCH_CHAR_LENGTH", 1),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			SnapshotTTLSecs: getEnvAsInt("SNAPSHOT_CACHE_TTL_SECONDS", 3600),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the console cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Accounts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid ACCOUNTS_API_BASE_URL %q", c.Accounts.BaseURL)
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return errors.New("SEARCH_THRESHOLD must be between 0 and 1")
	}
	if c.Search.Location < 0 {
		return errors.New("SEARCH_LOCATION must not be negative")
	}
	if c.Search.Distance < 0 {
		return errors.New("SEARCH_DISTANCE must not be negative")
	}
	if c.Search.MaxPatternLength <= 0 {
		return errors.New("SEARCH_MAX_PATTERN_LENGTH must be positive")
	}
	if c.Search.MinMatchCharLength < 1 {
		return errors.New("SEARCH_MIN_MATCH_CHAR_LENGTH must be at least 1")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	return seconds(a.RequestTimeoutSeconds)
}

// Timeout bounds a listing call to the remote service.
func (a AccountsConfig) Timeout() time.Duration {
	return seconds(a.TimeoutSeconds)
}

// PatchTimeout bounds a single background PATCH.
func (a AccountsConfig) PatchTimeout() time.Duration {
	return seconds(a.PatchTimeoutSeconds)
}

// SnapshotTTL is how long a cached collection stays usable.
func (r RedisConfig) SnapshotTTL() time.Duration {
	return seconds(r.SnapshotTTLSecs)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
