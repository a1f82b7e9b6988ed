package models

import "time"

// LoginResponse is returned by the login endpoint. Exactly one of Token or
// ChallengeToken is set: accounts without 2FA receive a session token
// immediately, accounts with 2FA receive a short-lived challenge token and
// Requires2FA = true.
type LoginResponse struct {
	Token          string `json:"token,omitempty"`
	Requires2FA    bool   `json:"requires_2fa,omitempty"`
	ChallengeToken string `json:"challenge_token,omitempty"`
}

// TwoFactorSetupResponse carries a freshly generated pending TOTP secret
// and the otpauth:// URI used to render the enrollment QR code.
type TwoFactorSetupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
}

// RecoveryCodesResponse returns the plaintext recovery codes exactly once,
// at 2FA enablement. Only hashes are stored; the codes are not retrievable
// again.
type RecoveryCodesResponse struct {
	RecoveryCodes []string `json:"recovery_codes"`
}

// ShareCreatedResponse returns the capability id of a new public share.
type ShareCreatedResponse struct {
	ShareID   string    `json:"share_id"`
	ExpiresAt time.Time `json:"expires_at"`
	MaxViews  int       `json:"max_views"`
}

// ShareMetadataResponse is the read-only peek view of a share. It never
// contains the payload and reading it does not consume a view.
type ShareMetadataResponse struct {
	Type      ShareType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ViewsLeft int       `json:"views_left"`
	MaxViews  int       `json:"max_views"`
}

// ShareRedeemedResponse carries the payload of a successfully redeemed
// share. Each successful redemption burns exactly one view.
type ShareRedeemedResponse struct {
	Payload string    `json:"payload"`
	Type    ShareType `json:"type"`
}

// SessionListResponse lists the caller's active sessions, most recent first.
type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
	Length   int       `json:"length"`
}
