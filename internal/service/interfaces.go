package service

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

// AuthService implements the credential, session, and two-factor state
// machine: registration, the two-step login flow, lockout bookkeeping,
// per-request validation, and session management.
type AuthService interface {
	// Register creates a new account. The first account ever registered
	// receives the admin role.
	Register(ctx context.Context, req models.RegisterRequest, client models.ClientMeta) (models.Account, error)

	// Login performs the password step. Accounts without 2FA get a session
	// token immediately; accounts with 2FA get a short-lived challenge
	// token and Requires2FA set. Unknown email and wrong password are
	// indistinguishable in the returned error.
	Login(ctx context.Context, req models.LoginRequest, client models.ClientMeta) (models.LoginResponse, error)

	// CompleteTwoFactorLogin exchanges a pending challenge token plus a
	// TOTP or recovery code for a full session token.
	CompleteTwoFactorLogin(ctx context.Context, req models.TwoFactorCompleteRequest, client models.ClientMeta) (models.LoginResponse, error)

	// SetupTwoFactor generates a pending TOTP secret for the account and
	// returns it with the otpauth:// provisioning URI. The secret stays
	// inactive until confirmed via EnableTwoFactor.
	SetupTwoFactor(ctx context.Context, accountID string, client models.ClientMeta) (models.TwoFactorSetupResponse, error)

	// EnableTwoFactor confirms the pending secret with a valid TOTP code,
	// activates 2FA, and returns the freshly generated recovery codes. The
	// plaintext codes are returned exactly once.
	EnableTwoFactor(ctx context.Context, accountID string, req models.TwoFactorEnableRequest, client models.ClientMeta) (models.RecoveryCodesResponse, error)

	// DisableTwoFactor turns 2FA off. It demands both the password and a
	// valid second factor so one compromised factor cannot remove the other.
	DisableTwoFactor(ctx context.Context, accountID string, req models.TwoFactorDisableRequest, client models.ClientMeta) error

	// Logout revokes the calling session.
	Logout(ctx context.Context, accountID, sessionID string, client models.ClientMeta) error

	// ValidateRequest authenticates one inbound request: it verifies the
	// bearer token, rejects pending challenge tokens, and checks the
	// server-side session in a single revocation-safe read.
	ValidateRequest(ctx context.Context, tokenString string) (models.Token, models.Session, error)

	// ListSessions returns the account's active sessions, newest first.
	ListSessions(ctx context.Context, accountID string) (models.SessionListResponse, error)

	// RevokeSession revokes the target session. Non-admins may only revoke
	// their own sessions.
	RevokeSession(ctx context.Context, accountID string, role models.Role, targetSessionID string, client models.ClientMeta) error
}

// ShareService implements one-time/limited-view secret sharing.
type ShareService interface {
	// CreateShare publishes an encrypted payload under a fresh unguessable
	// id with a view budget and a TTL.
	CreateShare(ctx context.Context, req models.CreateShareRequest, accountID string, client models.ClientMeta) (models.ShareCreatedResponse, error)

	// PeekShare returns share metadata without consuming a view. Expired
	// and exhausted shares still report their metadata; only unknown ids
	// fail.
	PeekShare(ctx context.Context, shareID string) (models.ShareMetadataResponse, error)

	// RedeemShare consumes exactly one view and returns the payload, or
	// reports the share gone. At most MaxViews redemptions ever succeed.
	RedeemShare(ctx context.Context, shareID string, client models.ClientMeta) (models.ShareRedeemedResponse, error)
}

// auditEmitter is the slice of the audit dispatcher the services need.
type auditEmitter interface {
	Emit(event models.AuditEvent)
}
