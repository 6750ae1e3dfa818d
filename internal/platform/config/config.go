package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
	TxTimeout       time.Duration

	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	ProgressCacheTTL    time.Duration
	RequestTTL          time.Duration
	ExpirySweepInterval time.Duration
	SeedDemoData        bool
}

// RedisConfig holds Redis connection settings. An empty URL disables the progress cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds event publishing settings. No brokers disables events.
type KafkaConfig struct {
	Brokers string
	Topic   string
	Acks    string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Server{}, err
	}

	cfg := Server{
		Addr:            getEnv("EPORTFOLIO_ADDR", ":8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        level,
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		TxTimeout:       getEnvDuration("TX_TIMEOUT", 5*time.Second),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topic:   getEnv("EVENTS_TOPIC", "eportfolio.events"),
			Acks:    getEnv("KAFKA_ACKS", "all"),
		},
		ProgressCacheTTL:    getEnvDuration("PROGRESS_CACHE_TTL", 30*time.Second),
		RequestTTL:          getEnvDuration("REQUEST_TTL", 30*24*time.Hour),
		ExpirySweepInterval: getEnvDuration("EXPIRY_SWEEP_INTERVAL", 0),
		SeedDemoData:        getEnvBool("SEED_DEMO_DATA", true),
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Server) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("EPORTFOLIO_ADDR must not be empty")
	}
	if c.TxTimeout <= 0 {
		return fmt.Errorf("TX_TIMEOUT must be positive")
	}
	if c.RequestTTL <= 0 {
		return fmt.Errorf("REQUEST_TTL must be positive")
	}
	if c.ExpirySweepInterval < 0 {
		return fmt.Errorf("EXPIRY_SWEEP_INTERVAL must not be negative")
	}
	return nil
}

// IsProduction reports whether demo conveniences must stay off.
func (c Server) IsProduction() bool {
	return c.Environment == "production"
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
	}
	return level, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
