package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration loaded from an optional YAML file and environment variables.
type Config struct {
	AppPort string `yaml:"app_port"`
	AppEnv  string `yaml:"app_env"`

	AWSRegion      string       `yaml:"aws_region"`
	AWSEndpointURL string       `yaml:"aws_endpoint_url"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string       `yaml:"aws_access_key_id"`
	AWSSecretKey   string       `yaml:"aws_secret_access_key"`
	DynamoTables   DynamoTables `yaml:"dynamo_tables"`

	JWTPrivateKeyPath string        `yaml:"jwt_private_key_path"`
	JWTPublicKeyPath  string        `yaml:"jwt_public_key_path"`
	JWTExpiry         time.Duration `yaml:"-"`

	// Email provider. Empty SMTPHost means console fallback.
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPFrom     string `yaml:"smtp_from"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`

	// SMS provider. A sender identity is required for SNS dispatch.
	SNSRegion            string `yaml:"sns_region"`
	SNSSenderID          string `yaml:"sns_sender_id"`
	SNSOriginationNumber string `yaml:"sns_origination_number"`
	SMSCountryCode       string `yaml:"sms_country_code"`

	DeliveryTimeout time.Duration `yaml:"-"`
	CodeTTL         time.Duration `yaml:"-"`
	BrandName       string        `yaml:"brand_name"`
	SupportEmail    string        `yaml:"support_email"`
	AllowedOrigins  []string      `yaml:"allowed_origins"` // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each role-store.
type DynamoTables struct {
	Customers string `yaml:"customers"`
	Vendors   string `yaml:"vendors"`
	Admins    string `yaml:"admins"`
}

// IsProduction reports whether raw codes must be kept out of API results.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

// EmailConfigured reports whether an SMTP relay is set.
func (c *Config) EmailConfigured() bool {
	return c.SMTPHost != ""
}

// SMSSenderIdentity returns the configured sender identity, preferring the origination number.
func (c *Config) SMSSenderIdentity() string {
	if c.SNSOriginationNumber != "" {
		return c.SNSOriginationNumber
	}
	return c.SNSSenderID
}

// Load reads configuration. When CONFIG_FILE points at a YAML file it is decoded first;
// environment variables always win over file values.
func Load() (*Config, error) {
	var file Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &file); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return fromEnv(&file), nil
}

func fromEnv(f *Config) *Config {
	origins := getEnv("ALLOWED_ORIGINS", "")
	allowed := f.AllowedOrigins
	if origins != "" || len(allowed) == 0 {
		allowed = strings.Split(or(origins, "*"), ",")
	}
	return &Config{
		AppPort:        getEnv("APP_PORT", or(f.AppPort, "3000")),
		AppEnv:         getEnv("APP_ENV", or(f.AppEnv, "development")),
		AWSRegion:      getEnv("AWS_REGION", or(f.AWSRegion, "us-east-1")),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", f.AWSEndpointURL),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", f.AWSAccessKeyID),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", f.AWSSecretKey),
		DynamoTables: DynamoTables{
			Customers: getEnv("DYNAMO_TABLE_CUSTOMERS", or(f.DynamoTables.Customers, "customers")),
			Vendors:   getEnv("DYNAMO_TABLE_VENDORS", or(f.DynamoTables.Vendors, "vendors")),
			Admins:    getEnv("DYNAMO_TABLE_ADMINS", or(f.DynamoTables.Admins, "admins")),
		},
		JWTPrivateKeyPath:    getEnv("JWT_PRIVATE_KEY_PATH", or(f.JWTPrivateKeyPath, "./private_key.pem")),
		JWTPublicKeyPath:     getEnv("JWT_PUBLIC_KEY_PATH", or(f.JWTPublicKeyPath, "./public_key.pem")),
		JWTExpiry:            time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		SMTPHost:             getEnv("SMTP_HOST", f.SMTPHost),
		SMTPPort:             getEnvInt("SMTP_PORT", orInt(f.SMTPPort, 587)),
		SMTPFrom:             getEnv("SMTP_FROM", or(f.SMTPFrom, "noreply@example.com")),
		SMTPUsername:         getEnv("SMTP_USERNAME", f.SMTPUsername),
		SMTPPassword:         getEnv("SMTP_PASSWORD", f.SMTPPassword),
		SNSRegion:            getEnv("SNS_REGION", or(f.SNSRegion, "us-east-1")),
		SNSSenderID:          getEnv("SNS_SENDER_ID", f.SNSSenderID),
		SNSOriginationNumber: getEnv("SNS_ORIGINATION_NUMBER", f.SNSOriginationNumber),
		SMSCountryCode:       getEnv("SMS_COUNTRY_CODE", or(f.SMSCountryCode, "91")),
		DeliveryTimeout:      getEnvDuration("DELIVERY_TIMEOUT", 5*time.Second),
		CodeTTL:              time.Duration(getEnvInt("CODE_TTL_MINUTES", 10)) * time.Minute,
		BrandName:            getEnv("BRAND_NAME", or(f.BrandName, "Marketplace")),
		SupportEmail:         getEnv("SUPPORT_EMAIL", or(f.SupportEmail, "support@example.com")),
		AllowedOrigins:       allowed,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
