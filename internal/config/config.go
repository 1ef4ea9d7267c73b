package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// maxSignedURLExpiration is the longest lifetime S3 accepts for a SigV4 presigned URL.
const maxSignedURLExpiration = 7 * 24 * time.Hour

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort     string
	AppEnv      string
	AppLogLevel string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	TodosTable      string
	TodosIndex      string // GSI keyed by userId
	DynamoBootstrap bool

	AttachmentBucket    string
	SignedURLExpiration time.Duration
	BindOnIssue         bool // legacy: write attachmentUrl when the upload URL is issued

	JWTPublicKeyPath  string
	JWTPrivateKeyPath string // optional; only needed to mint tokens locally
	JWTExpiry         time.Duration

	AllowedOrigins []string // CORS allowed origins
	UploadURLRate  float64  // upload-URL requests per second per client
	UploadURLBurst int
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads all configuration from environment variables and validates it.
// Problems are collected so a misconfigured deployment reports all of them at once.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		AppLogLevel: getEnv("APP_LOG_LEVEL", "info"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		TodosTable: getEnv("TODOS_TABLE", ""),
		TodosIndex: getEnv("INDEX_NAME", ""),

		AttachmentBucket: getEnv("ATTACHMENT_S3_BUCKET", ""),

		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	var err error
	if cfg.DynamoBootstrap, err = getEnvBool("DYNAMO_BOOTSTRAP", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.BindOnIssue, err = getEnvBool("ATTACHMENT_BIND_ON_ISSUE", false); err != nil {
		errs = append(errs, err)
	}

	seconds, err := getEnvInt("SIGNED_URL_EXPIRATION", 300)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.SignedURLExpiration = time.Duration(seconds) * time.Second

	hours, err := getEnvInt("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.JWTExpiry = time.Duration(hours) * time.Hour

	if cfg.UploadURLRate, err = getEnvFloat("UPLOAD_URL_RATE", 5); err != nil {
		errs = append(errs, err)
	}
	if cfg.UploadURLBurst, err = getEnvInt("UPLOAD_URL_BURST", 10); err != nil {
		errs = append(errs, err)
	}

	if err := cfg.validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.TodosTable == "" {
		errs = append(errs, errors.New("TODOS_TABLE is required"))
	}
	if c.TodosIndex == "" {
		errs = append(errs, errors.New("INDEX_NAME is required"))
	}
	if c.AttachmentBucket == "" {
		errs = append(errs, errors.New("ATTACHMENT_S3_BUCKET is required"))
	}
	if c.SignedURLExpiration <= 0 || c.SignedURLExpiration > maxSignedURLExpiration {
		errs = append(errs, fmt.Errorf("SIGNED_URL_EXPIRATION must be between 1 and %d seconds", int(maxSignedURLExpiration.Seconds())))
	}
	if c.JWTExpiry <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRY_HOURS must be positive"))
	}
	if c.UploadURLRate <= 0 || c.UploadURLBurst < 1 {
		errs = append(errs, errors.New("UPLOAD_URL_RATE and UPLOAD_URL_BURST must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, v)
	}
	return f, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
