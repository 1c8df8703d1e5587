package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Store backends accepted by STORE_BACKEND
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreS3       = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port           string
	CORSOrigins    []string
	Env            string
	TrustedProxies []string

	// Persistence area
	StoreBackend string
	StoreDir     string
	SQLitePath   string
	DatabaseURL  string

	// S3 Storage
	S3 S3Config

	// Change feed sinks
	AMQPURL      string
	AMQPExchange string
	KafkaBrokers []string
	KafkaTopic   string

	// Auth
	AuthSimulatedDelay     time.Duration
	AuthRateLimitPerMinute int
	AuthRateLimitBurst     int

	// Metrics
	EmergencyMonthlyContribution decimal.Decimal
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	delay, err := time.ParseDuration(getEnv("AUTH_SIMULATED_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("AUTH_SIMULATED_DELAY: %w", err)
	}

	contribution, err := decimal.NewFromString(getEnv("EMERGENCY_MONTHLY_CONTRIBUTION", "800"))
	if err != nil {
		return nil, fmt.Errorf("EMERGENCY_MONTHLY_CONTRIBUTION: %w", err)
	}

	perMinute, err := getEnvInt("AUTH_RATE_LIMIT_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("AUTH_RATE_LIMIT_BURST", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		CORSOrigins:    strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:            getEnv("ENV", "development"),
		TrustedProxies: splitNonEmpty(getEnv("TRUSTED_PROXIES", "")), // Empty = X-Forwarded-For ignored
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", StoreFile)),
		StoreDir:       getEnv("STORE_DIR", "./data"),
		SQLitePath:     getEnv("SQLITE_DB_PATH", "./data/economize.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "economize-data"),
			Prefix:          getEnv("S3_PREFIX", "economize/"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		AMQPURL:                      getEnv("AMQP_URL", ""),
		AMQPExchange:                 getEnv("AMQP_EXCHANGE", "economize.events"),
		KafkaBrokers:                 splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:                   getEnv("KAFKA_TOPIC", "economize.events"),
		AuthSimulatedDelay:           delay,
		AuthRateLimitPerMinute:       perMinute,
		AuthRateLimitBurst:           burst,
		EmergencyMonthlyContribution: contribution,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory:
	case StoreFile:
		if c.StoreDir == "" {
			return fmt.Errorf("STORE_DIR is required for the file backend")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_DB_PATH is required for the sqlite backend")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	case StoreS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.AuthSimulatedDelay < 0 {
		return fmt.Errorf("AUTH_SIMULATED_DELAY must not be negative")
	}
	if c.EmergencyMonthlyContribution.IsNegative() {
		return fmt.Errorf("EMERGENCY_MONTHLY_CONTRIBUTION must not be negative")
	}
	if c.AuthRateLimitPerMinute <= 0 || c.AuthRateLimitBurst <= 0 {
		return fmt.Errorf("auth rate limit values must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
