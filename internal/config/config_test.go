package config

import (
	"errors"
	"testing"
)

// validConfig returns a Config that passes Validate().
func validConfig() *Config {
	return &Config{
		DBPath:           "./data/test.sqlite",
		Port:             8080,
		LogLevel:         "info",
		LogDir:           "./logs",
		WebhookSecret:    "test-secret",
		WebhookRateLimit: 25,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"empty webhook secret", func(c *Config) { c.WebhookSecret = "" }},
		{"rate limit zero", func(c *Config) { c.WebhookRateLimit = 0 }},
		{"gateway without credentials", func(c *Config) { c.SMSGatewayURL = "https://sms.example.com" }},
		{"gateway without from number", func(c *Config) {
			c.SMSGatewayURL = "https://sms.example.com"
			c.SMSAccountID = "acct"
			c.SMSAPIKey = "key"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidate_SMSGatewayComplete(t *testing.T) {
	cfg := validConfig()
	cfg.SMSGatewayURL = "https://sms.example.com"
	cfg.SMSAccountID = "acct"
	cfg.SMSAPIKey = "key"
	cfg.SMSFromNumber = "+15550001111"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
