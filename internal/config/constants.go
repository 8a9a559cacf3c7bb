package config

import "time"

// Database
const (
	DBBusyTimeout = 5000 // milliseconds
)

// Server
const (
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 60 * time.Second
	ShutdownTimeout    = 10 * time.Second
)

// Outbound notification channel
const (
	SMSTimeout = 10 * time.Second
)

// Webhook
const (
	// SignatureHeader carries the hex-encoded HMAC-SHA256 of the raw
	// request body, computed with the shared webhook secret.
	SignatureHeader = "X-Neucler-Signature"

	// WebhookRateBurst is the token bucket burst for the payment webhook.
	WebhookRateBurst = 10

	// MaxWebhookBodyBytes caps the payment event payload size.
	MaxWebhookBodyBytes = 1 << 16
)

// Pagination
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Logging
const (
	LogMaxAgeDays = 30
	LogFilePrefix = "neucler-"
)

// API error codes returned in the error envelope.
const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeSignature  = "INVALID_SIGNATURE"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeDatabase   = "DATABASE_ERROR"
	ErrorCodeRateLimit  = "RATE_LIMITED"
)
