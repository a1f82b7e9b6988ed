// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// pass-guard application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds token signing parameters and password-hashing settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Lockout holds the failed-attempt threshold and backoff policy.
	Lockout Lockout `envPrefix:"LOCKOUT_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Audit holds settings for the asynchronous audit event pipeline.
	Audit Audit `envPrefix:"AUDIT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds security parameters for credential handling and token issuance.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// SessionDuration is the TTL of an authenticated session (default 24h).
	// Env: AUTH_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// ChallengeDuration is the TTL of a pending-2FA challenge token
	// (default 5m).
	// Env: AUTH_CHALLENGE_DURATION
	ChallengeDuration time.Duration `env:"CHALLENGE_DURATION"`

	// BcryptCost is the bcrypt work factor for password hashing
	// (default 12).
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// TOTPIssuer is the issuer label embedded in otpauth:// provisioning
	// URIs shown to authenticator apps.
	// Env: AUTH_TOTP_ISSUER
	TOTPIssuer string `env:"TOTP_ISSUER"`
}

// Lockout holds the failed-login lockout policy parameters.
type Lockout struct {
	// Threshold is the number of consecutive failures after which an
	// account is temporarily locked (default 5).
	// Env: LOCKOUT_THRESHOLD
	Threshold int `env:"THRESHOLD"`

	// BackoffBase is the lockout duration applied at the threshold
	// (default 1m). Doubles with each further failure.
	// Env: LOCKOUT_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap is the upper bound of the lockout duration (default 15m).
	// Env: LOCKOUT_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`
}

// Storage groups the configuration for the persistence backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL Data Source Name used to open the database
	// connection. When empty the server falls back to the in-memory store
	// (useful for local development and tests only).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Audit holds settings for the asynchronous audit pipeline. The pipeline is
// fail-open: delivery problems are logged and never block the security
// operation that produced the event.
type Audit struct {
	// WebhookURL, when set, enables the HTTP webhook sink. Every audit
	// event is POSTed to this URL as JSON.
	// Env: AUDIT_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`

	// BufferSize is the capacity of the in-process event queue
	// (default 256). Events are dropped, not blocked on, when it is full.
	// Env: AUDIT_BUFFER_SIZE
	BufferSize int `env:"BUFFER_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
