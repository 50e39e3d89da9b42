package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"warden/database"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken     string `env:"DISCORD_TOKEN"`
	MessageCacheSize int    `env:"MESSAGE_CACHE_SIZE" envDefault:"1000"` // Messages kept per channel for edit/delete audit lines

	// Database configuration. When DATABASE_URL is empty the guild config
	// store falls back to a JSON snapshot at StoragePath.
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"datastore.json"`

	// Guild config read cache
	ConfigCacheTTL time.Duration `env:"CONFIG_CACHE_TTL" envDefault:"5m"`

	// NATS configuration
	NATSServers string `env:"NATS_SERVERS"` // NATS server addresses (comma-separated), empty disables publishing

	// Debug API
	DebugPort int `env:"DEBUG_PORT" envDefault:"8899"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName          string `env:"OTEL_SERVICE_NAME" envDefault:"warden"`
	OTelExporterType         string `env:"OTEL_EXPORTER_TYPE" envDefault:"console"` // console, otlp or none
	OTelOTLPEndpoint         string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelExportIntervalMillis int    `env:"OTEL_EXPORT_INTERVAL_MILLIS" envDefault:"60000"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// UsesDatabase reports whether guild configs are stored in Postgres
func (c *Config) UsesDatabase() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// UsesNATS reports whether domain events are published to NATS
func (c *Config) UsesNATS() bool {
	return strings.TrimSpace(c.NATSServers) != ""
}

// load loads configuration from the environment, reading .env first if present
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required settings outside the test environment
func (c *Config) Validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	// If DatabaseName is provided, ensure it's not empty
	if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	if c.DebugPort < 0 || c.DebugPort > 65535 {
		return fmt.Errorf("DEBUG_PORT %d is out of range", c.DebugPort)
	}
	switch c.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return fmt.Errorf("unknown OTEL_EXPORTER_TYPE: %s", c.OTelExporterType)
	}
	return nil
}

// ConfigureLogging applies the log level and formatter for the environment
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("log_level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:              "test",
		StoragePath:              "datastore.json",
		ConfigCacheTTL:           time.Minute,
		MessageCacheSize:         100,
		DebugPort:                8899,
		LogLevel:                 "debug",
		OTelServiceName:          "warden-test",
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 60000,
	}
}
