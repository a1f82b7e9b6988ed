package models

// RegisterRequest is the inbound payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the inbound payload for the first login step.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TwoFactorCompleteRequest exchanges a pending challenge token plus a TOTP
// or recovery code for an authenticated session.
type TwoFactorCompleteRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

// TwoFactorEnableRequest confirms a pending TOTP secret.
type TwoFactorEnableRequest struct {
	Code string `json:"code"`
}

// TwoFactorDisableRequest turns off 2FA. Both factors are required so that
// a single compromised factor cannot disable the second one.
type TwoFactorDisableRequest struct {
	Password string `json:"password"`
	Code     string `json:"code"`
}

// CreateShareRequest publishes an encrypted payload as a limited-view
// public share. TTLSeconds and MaxViews fall back to server defaults
// (1 hour, single view) when zero.
type CreateShareRequest struct {
	Payload    string    `json:"payload"`
	Type       ShareType `json:"type"`
	MaxViews   int       `json:"max_views"`
	TTLSeconds int64     `json:"ttl_seconds"`
}
