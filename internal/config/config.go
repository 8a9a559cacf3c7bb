package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBPath   string `envconfig:"NEUCLER_DB_PATH" default:"./data/neucler.sqlite"`
	Port     int    `envconfig:"NEUCLER_PORT" default:"8080"`
	LogLevel string `envconfig:"NEUCLER_LOG_LEVEL" default:"info"`
	LogDir   string `envconfig:"NEUCLER_LOG_DIR" default:"./logs"`

	// Shared secret used to verify payment webhook signatures.
	WebhookSecret    string `envconfig:"NEUCLER_WEBHOOK_SECRET" required:"true"`
	WebhookRateLimit int    `envconfig:"NEUCLER_WEBHOOK_RATE_LIMIT" default:"25"`

	// SMS gateway settings. When the URL is empty, notifications are
	// logged instead of delivered.
	SMSGatewayURL string `envconfig:"NEUCLER_SMS_GATEWAY_URL"`
	SMSAccountID  string `envconfig:"NEUCLER_SMS_ACCOUNT_ID"`
	SMSAPIKey     string `envconfig:"NEUCLER_SMS_API_KEY"`
	SMSFromNumber string `envconfig:"NEUCLER_SMS_FROM_NUMBER"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars, so real environment
	// variables take precedence over .env values.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("%w: NEUCLER_WEBHOOK_SECRET must be set", ErrInvalidConfig)
	}
	if c.WebhookRateLimit < 1 {
		return fmt.Errorf("%w: NEUCLER_WEBHOOK_RATE_LIMIT must be >= 1, got %d", ErrInvalidConfig, c.WebhookRateLimit)
	}
	if c.SMSGatewayURL != "" {
		if c.SMSAccountID == "" || c.SMSAPIKey == "" {
			return fmt.Errorf("%w: SMS gateway requires NEUCLER_SMS_ACCOUNT_ID and NEUCLER_SMS_API_KEY", ErrInvalidConfig)
		}
		if c.SMSFromNumber == "" {
			return fmt.Errorf("%w: SMS gateway requires NEUCLER_SMS_FROM_NUMBER", ErrInvalidConfig)
		}
	}
	return nil
}
