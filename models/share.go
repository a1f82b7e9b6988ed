package models

import "time"

// ShareType tags the kind of secret carried by a public share.
// The set is closed: only the constants below are valid values.
type ShareType string

const (
	SharePassword ShareType = "password"
	ShareNote     ShareType = "note"
)

// PublicShare is a one-time/limited-view secret published under an
// unguessable URL id. The payload is encrypted by the client before it
// reaches the server; the server stores and returns it verbatim and never
// sees plaintext.
//
// Invariant: 0 <= ViewsLeft <= MaxViews. ViewsLeft is decremented exactly
// once per successful redemption; once it reaches zero or ExpiresAt passes,
// the share is permanently unredeemable.
type PublicShare struct {
	// ShareID is the URL-safe capability identifier (>= 128 bits of
	// entropy). Possession of the id is the sole access check.
	ShareID string `json:"share_id"`

	// Payload is the encrypted opaque secret, stored verbatim.
	Payload string `json:"-"`

	// Type declares what kind of secret the payload holds.
	Type ShareType `json:"type"`

	// ExpiresAt is the fixed expiry instant.
	ExpiresAt time.Time `json:"expires_at"`

	// ViewsLeft is the remaining view budget.
	ViewsLeft int `json:"views_left"`

	// MaxViews is the total view budget set at creation.
	MaxViews int `json:"max_views"`

	// CreatedAt is the share creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PublicShare model.
func (p PublicShare) TableName() string {
	return "shares"
}

// IsRedeemableAt reports whether a redemption could still succeed at the
// given instant. The authoritative check is the storage layer's conditional
// update; this helper only serves metadata reads.
func (p PublicShare) IsRedeemableAt(now time.Time) bool {
	return p.ViewsLeft > 0 && now.Before(p.ExpiresAt)
}
