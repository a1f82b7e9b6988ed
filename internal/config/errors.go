package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates invalid authentication settings
	// (for example, a missing token sign key or an out-of-range bcrypt
	// cost).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidLockoutConfigs indicates an unusable lockout policy
	// (non-positive threshold or a backoff cap below its base).
	ErrInvalidLockoutConfigs = errors.New("invalid lockout configuration")
	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, an empty listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
