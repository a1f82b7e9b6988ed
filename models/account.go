package models

import "time"

// Role is the authorization level assigned to an account.
// The set is closed: only the constants below are valid values.
type Role string

const (
	// RoleAdmin is granted to the first registered account and allows
	// administrative operations such as revoking other users' sessions.
	RoleAdmin Role = "admin"

	// RoleUser is the default role for every account after the first.
	RoleUser Role = "user"
)

// Account represents a registered identity used for authentication.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// AccountID is the opaque unique identifier of the account (UUID).
	AccountID string `json:"-"`

	// Email is the unique login identifier. Uniqueness is enforced
	// case-insensitively at the storage layer.
	Email string `json:"email"`

	// Name is the display name of the account holder. Non-sensitive.
	Name string `json:"name"`

	// PasswordHash is the bcrypt digest of the account password.
	// Plaintext passwords are never persisted or logged.
	PasswordHash string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// FailedAttempts counts consecutive failed login attempts since the
	// last successful login. Incremented atomically at the storage layer.
	FailedAttempts int `json:"-"`

	// LockoutUntil, when set, suspends login attempts until the given
	// instant. Cleared on successful login.
	LockoutUntil *time.Time `json:"-"`

	// TwoFactorSecret is the base32 TOTP secret. While TwoFactorEnabled is
	// false the secret is pending confirmation and not yet active.
	TwoFactorSecret string `json:"-"`

	// TwoFactorEnabled reports whether login requires a second factor.
	TwoFactorEnabled bool `json:"two_factor_enabled"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// IsLockedAt reports whether the account is under a lockout window at the
// given instant.
func (a Account) IsLockedAt(now time.Time) bool {
	return a.LockoutUntil != nil && now.Before(*a.LockoutUntil)
}
