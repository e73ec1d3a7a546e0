package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Gateway holds the redirect endpoint and the shared test credential pair.
// It is resolved once at startup and passed into the checkout pipeline as an
// immutable value, never read from package-level state mid-request.
type Gateway struct {
	DefaultKey  string
	DefaultSalt string
	EndpointURL string
}

// Defaults for the PayU test environment. These are published sandbox values,
// not secrets.
const (
	testMerchantKey  = "a4vGC2"
	testMerchantSalt = "hKvGJP28d2ZUuCRz5BnDag58QBdCxBli"
	testEndpointURL  = "https://test.payu.in/_payment"
)

type Config struct {
	Validator *validator.Validate
}

// AppConfig represents the application configuration
type AppConfig struct {
	Port             string
	OpenSearchURL    string
	OpenSearchUser   string
	OpenSearchPass   string
	EnableLogging    bool
	LoggingLevel     string
	LogRetentionDays int
	CredentialDBPath string
}

var (
	instance          *Config
	appConfigInstance *AppConfig
)

func App() *Config {
	if instance == nil {
		instance = &Config{
			Validator: validator.New(),
		}
	}
	return instance
}

// NewGateway builds the gateway configuration from the environment, falling
// back to the PayU test pair.
func NewGateway() Gateway {
	return Gateway{
		DefaultKey:  GetEnv("PAYU_MERCHANT_KEY", testMerchantKey),
		DefaultSalt: GetEnv("PAYU_MERCHANT_SALT", testMerchantSalt),
		EndpointURL: GetEnv("PAYU_ENDPOINT_URL", testEndpointURL),
	}
}

// GetAppConfig returns the application configuration
func GetAppConfig() *AppConfig {
	if appConfigInstance == nil {
		appConfigInstance = &AppConfig{
			Port:             GetEnv("APP_PORT", "9999"),
			OpenSearchURL:    GetEnv("OPENSEARCH_URL", "http://localhost:9200"),
			OpenSearchUser:   GetEnv("OPENSEARCH_USER", ""),
			OpenSearchPass:   GetEnv("OPENSEARCH_PASSWORD", ""),
			EnableLogging:    GetBoolEnv("ENABLE_OPENSEARCH_LOGGING", false),
			LoggingLevel:     GetEnv("LOGGING_LEVEL", "info"),
			LogRetentionDays: GetIntEnv("LOG_RETENTION_DAYS", 30),
			CredentialDBPath: GetEnv("CREDENTIAL_DB_PATH", "data/credentials.db"),
		}
	}
	return appConfigInstance
}

// GetEnv returns the value of an environment variable or a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolEnv returns the boolean value of an environment variable or a default value
func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetIntEnv returns the integer value of an environment variable or a default value
func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
