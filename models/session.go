package models

import "time"

// ClientMeta carries advisory client information captured at login time.
// It is recorded for audit purposes only and is not a security boundary.
type ClientMeta struct {
	// IP is the remote address of the client as seen by the server.
	IP string `json:"ip"`

	// UserAgent is the raw User-Agent header supplied by the client.
	UserAgent string `json:"user_agent"`
}

// Session represents one authenticated login. Sessions are individually
// revocable and expire lazily: validity is always recomputed from ExpiresAt
// at check time, never enforced by a background sweep.
type Session struct {
	// SessionID is the opaque, unguessable session identifier. It is
	// embedded in the JWT as the "sid" claim; the JWT signature, not this
	// value, is the bearer secret.
	SessionID string `json:"session_id"`

	// AccountID is the owner of the session.
	AccountID string `json:"-"`

	// IP and UserAgent are the client metadata captured at login.
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`

	// LastActive is the time of the most recent validated request.
	LastActive time.Time `json:"last_active"`

	// ExpiresAt is the fixed expiry instant set at creation.
	ExpiresAt time.Time `json:"expires_at"`

	// IsRevoked is set once by logout or administrative revocation and is
	// never cleared.
	IsRevoked bool `json:"-"`

	// CreatedAt is the session creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsValidAt reports whether the session is usable at the given instant:
// not revoked and not past its expiry.
func (s Session) IsValidAt(now time.Time) bool {
	return !s.IsRevoked && now.Before(s.ExpiresAt)
}
