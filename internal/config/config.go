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
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	// Hosts allowed to call the API from a browser.
	CORSAllowedHosts []string

	DB       DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	Storage  StorageConfig
	Roles    RoleFunctionsConfig
	Razorpay RazorpayConfig
	Worker   WorkerConfig
	Auth     AuthConfig
	Snapshot SnapshotConfig
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

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// S3Config contains S3-compatible object storage credentials.
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// StorageConfig describes the public buckets used for images.
type StorageConfig struct {
	PublicBaseURL  string
	ProductBucket  string
	BlogBucket     string
	ServiceBucket  string
	MaxUploadBytes int64
}

// RoleFunctionsConfig points at the privileged grant-role / revoke-role functions.
type RoleFunctionsConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RazorpayConfig contains payment gateway credentials. Empty keys disable reconciliation.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

// Enabled reports whether Razorpay credentials are configured.
func (c RazorpayConfig) Enabled() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	PaymentReconcileInterval   time.Duration
	PaymentReconcileStaleAfter time.Duration
}

// AuthConfig contains password reset and first-run settings.
type AuthConfig struct {
	PasswordResetTTL time.Duration
	ResetURL         string

	// Optional super admin created at startup when no user has this email.
	BootstrapEmail    string
	BootstrapPassword string
}

// SnapshotConfig caps how many rows each admin list reads before filtering.
type SnapshotConfig struct {
	OrderLimit   int
	ProductLimit int
	ReviewLimit  int
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.CORSAllowedHosts = splitList(getEnv("CORS_ALLOWED_HOSTS", "localhost:3000,127.0.0.1:3000,localhost:5173"))

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
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Object storage
	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "ap-south-1"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		UsePathStyle:    getEnv("S3_USE_PATH_STYLE", "false") == "true",
	}
	cfg.Storage = StorageConfig{
		PublicBaseURL:  getEnv("STORAGE_PUBLIC_BASE_URL", ""),
		ProductBucket:  getEnv("STORAGE_PRODUCT_BUCKET", "product-images"),
		BlogBucket:     getEnv("STORAGE_BLOG_BUCKET", "blog-image"),
		ServiceBucket:  getEnv("STORAGE_SERVICE_BUCKET", "service-images"),
		MaxUploadBytes: int64(getEnvInt("STORAGE_MAX_UPLOAD_MB", 10)) << 20,
	}

	// Privileged role functions default to this process.
	cfg.Roles = RoleFunctionsConfig{
		BaseURL: getEnv("ROLE_FUNCTIONS_URL", "http://localhost:"+cfg.Port+"/functions/v1"),
	}

	cfg.Razorpay = RazorpayConfig{
		KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
	}

	cfg.Auth.ResetURL = getEnv("PASSWORD_RESET_URL", "http://localhost:3000/update-password")
	cfg.Auth.BootstrapEmail = getEnv("BOOTSTRAP_ADMIN_EMAIL", "")
	cfg.Auth.BootstrapPassword = getEnv("BOOTSTRAP_ADMIN_PASSWORD", "")

	cfg.Snapshot = SnapshotConfig{
		OrderLimit:   getEnvInt("SNAPSHOT_ORDER_LIMIT", 300),
		ProductLimit: getEnvInt("SNAPSHOT_PRODUCT_LIMIT", 400),
		ReviewLimit:  getEnvInt("SNAPSHOT_REVIEW_LIMIT", 500),
	}

	// Durations
	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", "12h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.Roles.Timeout, err = parseDurationEnv("ROLE_FUNCTIONS_TIMEOUT", "15s"); err != nil {
		return nil, fmt.Errorf("invalid ROLE_FUNCTIONS_TIMEOUT: %w", err)
	}
	if cfg.Auth.PasswordResetTTL, err = parseDurationEnv("PASSWORD_RESET_TTL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_TTL: %w", err)
	}
	if cfg.Worker.PaymentReconcileInterval, err = parseDurationEnv("PAYMENT_RECONCILE_INTERVAL", "5m"); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_RECONCILE_INTERVAL: %w", err)
	}
	if cfg.Worker.PaymentReconcileStaleAfter, err = parseDurationEnv("PAYMENT_RECONCILE_STALE_AFTER", "10m"); err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_RECONCILE_STALE_AFTER: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	if cfg.Storage.PublicBaseURL == "" && cfg.S3.Endpoint != "" {
		cfg.Storage.PublicBaseURL = cfg.S3.Endpoint
	}

	return cfg, nil
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

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
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
