package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"campusevents/analytics"
	"campusevents/models"
)

const defaultJWTSecret = "your-super-secret-jwt-key-change-in-production"

type Config struct {
	// Server Configuration
	Port        string
	Environment string
	Debug       bool

	// Database Configuration
	MongoURI string
	DBName   string

	// JWT Configuration
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Security Configuration
	CORSAllowedOrigins []string
	RateLimitEnabled   bool
	RateLimitRequests  int
	RateLimitWindow    time.Duration

	// Application Configuration
	AppName    string
	AppVersion string

	// Admin Configuration
	AdminDefaultEmail string
	AdminDefaultPass  string

	// Analytics Configuration
	DefaultDateRange   string
	DefaultTopN        int
	AnalyticsCacheTTL  time.Duration
	AnalyticsCacheSize int

	// Export Storage Configuration
	ExportStorageProvider string
	ExportPath            string
	ExportBucket          string
	ExportRegion          string
	ExportEndpoint        string
	ExportAccessKey       string
	ExportSecretKey       string
	ExportAccountID       string
	ExportURLTTL          time.Duration

	// Observability
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server Configuration
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvAsBool("DEBUG", false),

		// Database Configuration
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "campusevents"),

		// JWT Configuration
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		AccessTokenTTL: getEnvAsDuration("ACCESS_TOKEN_TTL", "24h"),

		// Security Configuration
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
		RateLimitEnabled:  getEnvAsBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),

		// Application Configuration
		AppName:    getEnv("APP_NAME", "CampusEvents Analytics"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),

		// Admin Configuration
		AdminDefaultEmail: getEnv("ADMIN_DEFAULT_EMAIL", "admin@example.com"),
		AdminDefaultPass:  getEnv("ADMIN_DEFAULT_PASS", "admin123"),

		// Analytics Configuration
		DefaultDateRange:   getEnv("DEFAULT_DATE_RANGE", string(analytics.DefaultDateRange)),
		DefaultTopN:        getEnvAsInt("DEFAULT_TOP_N", analytics.DefaultTopN),
		AnalyticsCacheTTL:  getEnvAsDuration("ANALYTICS_CACHE_TTL", "1m"),
		AnalyticsCacheSize: getEnvAsInt("ANALYTICS_CACHE_SIZE", 64),

		// Export Storage Configuration
		ExportStorageProvider: strings.ToLower(getEnv("EXPORT_STORAGE_PROVIDER", "local")),
		ExportPath:            getEnv("EXPORT_PATH", "./exports"),
		ExportBucket:          getEnv("EXPORT_BUCKET", ""),
		ExportRegion:          getEnv("EXPORT_REGION", ""),
		ExportEndpoint:        getEnv("EXPORT_ENDPOINT", ""),
		ExportAccessKey:       getEnv("EXPORT_ACCESS_KEY", ""),
		ExportSecretKey:       getEnv("EXPORT_SECRET_KEY", ""),
		ExportAccountID:       getEnv("EXPORT_ACCOUNT_ID", ""),
		ExportURLTTL:          getEnvAsDuration("EXPORT_URL_TTL", "15m"),

		// Observability
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	if parsed, err := time.ParseDuration(defaultValue); err == nil {
		return parsed
	}
	return time.Minute
}

// getEnvAsSlice splits a comma-separated value, dropping blank items
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the server address for listening
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// DashboardDefaults returns the parameters used when a request leaves them out
func (c *Config) DashboardDefaults() analytics.Params {
	return analytics.Params{
		DateRange: analytics.DateRange(c.DefaultDateRange),
		TopN:      c.DefaultTopN,
	}
}

// ExportProvider describes the export storage provider
func (c *Config) ExportProvider() *models.StorageProvider {
	provider := &models.StorageProvider{
		Name:      "Export Storage",
		Type:      c.ExportStorageProvider,
		Region:    c.ExportRegion,
		Endpoint:  c.ExportEndpoint,
		Bucket:    c.ExportBucket,
		AccessKey: c.ExportAccessKey,
		SecretKey: c.ExportSecretKey,
		Settings:  map[string]interface{}{},
	}

	switch c.ExportStorageProvider {
	case "local":
		provider.Settings["base_path"] = c.ExportPath
	case "r2":
		provider.Settings["account_id"] = c.ExportAccountID
	}
	return provider
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	var errs []error

	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI environment variable is required"))
	}

	if c.JWTSecret == defaultJWTSecret && c.IsProduction() {
		errs = append(errs, errors.New("JWT_SECRET must be changed in production"))
	}

	if _, ok := analytics.ParseDateRange(c.DefaultDateRange); !ok {
		errs = append(errs, fmt.Errorf("DEFAULT_DATE_RANGE %q is not one of 7d, 30d, 90d, 1y, all", c.DefaultDateRange))
	}

	if !analytics.IsAllowedTopN(c.DefaultTopN) {
		errs = append(errs, fmt.Errorf("DEFAULT_TOP_N %d is not one of 5, 10, 20, 50", c.DefaultTopN))
	}

	switch c.ExportStorageProvider {
	case "local", "s3", "r2", "wasabi":
	default:
		errs = append(errs, fmt.Errorf("EXPORT_STORAGE_PROVIDER %q is not supported", c.ExportStorageProvider))
	}

	if c.RateLimitEnabled && c.RateLimitRequests < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}

	return errors.Join(errs...)
}
