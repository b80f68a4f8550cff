package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "storefront-service/pkg/aws"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Port string
	Env  string

	StorageBackend string
	StorageTTL     time.Duration
	RedisURL       string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	AuthDelay         time.Duration
	AdminEmail        string
	AdminPasswordHash []byte

	ShippingCost float64

	CheckoutSNSTopicARN string
	ProductImageBucket  string
	PresignExpiry       time.Duration

	AllowedOrigins []string

	CloudWatchEnabled   bool
	CloudWatchNamespace string
}

// LoadConfig reads configuration from the environment (and .env when present)
// with an optional Secrets Manager override of storage credentials.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8087"),
		Env:                 getEnv("APP_ENV", "development"),
		StorageBackend:      strings.ToLower(getEnv("STORAGE_BACKEND", StorageMemory)),
		RedisURL:            getEnv("REDIS_URL", "redis://redis:6379"),
		PostgresUser:        os.Getenv("POSTGRES_USER"),
		PostgresPassword:    os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:          os.Getenv("POSTGRES_DB"),
		PostgresHost:        getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:    getEnv("POSTGRES_TIMEZONE", "UTC"),
		AdminEmail:          getEnv("ADMIN_EMAIL", "admin@example.com"),
		CheckoutSNSTopicARN: os.Getenv("CHECKOUT_SNS_TOPIC_ARN"),
		ProductImageBucket:  os.Getenv("PRODUCT_IMAGE_BUCKET"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
	}

	var err error
	if cfg.StorageTTL, err = getDuration("STORAGE_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AuthDelay, err = getDuration("AUTH_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ShippingCost, err = getFloat("SHIPPING_COST", 10.00); err != nil {
		return nil, err
	}
	expirySeconds, err := getFloat("PRESIGN_EXPIRY_SECONDS", 900)
	if err != nil {
		return nil, err
	}
	cfg.PresignExpiry = time.Duration(expirySeconds) * time.Second

	if cfg.AdminPasswordHash, err = adminPasswordHash(); err != nil {
		return nil, err
	}

	// Override storage credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			return nil, err
		}
		if err := cfg.loadSecrets(context.Background(), aws_pkg.NewSecretsClient(awsCfg)); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected storage backend is fully configured.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis storage backend")
		}
	case StoragePostgres:
		if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
			return fmt.Errorf("database config incomplete")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.ShippingCost < 0 {
		return fmt.Errorf("SHIPPING_COST must not be negative")
	}
	if c.AuthDelay < 0 {
		return fmt.Errorf("AUTH_DELAY must not be negative")
	}
	return nil
}

// PostgresDSN builds the DSN for the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB,
		c.PostgresPort, c.PostgresSSLMode, c.PostgresTimeZone,
	)
}

type storageCredentialSource interface {
	StorageCredentials(ctx context.Context) (*aws_pkg.StorageCredentials, error)
}

func (c *Config) loadSecrets(ctx context.Context, src storageCredentialSource) error {
	creds, err := src.StorageCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to load storage credentials: %w", err)
	}
	c.applySecrets(creds)
	return nil
}

func (c *Config) applySecrets(creds *aws_pkg.StorageCredentials) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.PostgresUser, creds.PostgresUser)
	set(&c.PostgresPassword, creds.PostgresPassword)
	set(&c.PostgresDB, creds.PostgresDB)
	set(&c.PostgresHost, creds.PostgresHost)
	set(&c.PostgresPort, creds.PostgresPort)
	set(&c.RedisURL, creds.RedisURL)
}

// adminPasswordHash prefers a precomputed bcrypt hash and otherwise hashes
// ADMIN_PASSWORD at startup.
func adminPasswordHash() ([]byte, error) {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		return []byte(hash), nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return hash, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "/")); part != "" {
			out = append(out, part)
		}
	}
	return out
}
