package service

import "errors"

// Sentinel errors returned by the service layer. The handler layer maps them
// to HTTP statuses; several deliberately collapse distinct internal causes so
// responses cannot be used to enumerate accounts or probe share ids. The
// precise cause always goes to the audit trail instead.
var (
	// ErrInvalidPayload is returned when a request fails structural
	// validation (missing fields, out-of-range values).
	ErrInvalidPayload = errors.New("invalid request payload")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountLocked is returned while a lockout window is active.
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrDuplicateAccount is returned when the email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalid2FACode is returned for a wrong TOTP or recovery code.
	ErrInvalid2FACode = errors.New("invalid two-factor code")

	// ErrChallengeExpiredOrInvalid is returned when the pending-2FA
	// challenge token is missing, malformed, expired, or not pending.
	ErrChallengeExpiredOrInvalid = errors.New("challenge expired or invalid")

	// ErrTwoFactorStateConflict is returned when a 2FA management operation
	// does not apply to the account's current state (already enabled, no
	// pending secret, not enabled).
	ErrTwoFactorStateConflict = errors.New("two-factor state conflict")

	// ErrSessionExpiredOrRevoked covers every way a bearer token can stop
	// working: bad signature, expiry, revoked or unknown session.
	ErrSessionExpiredOrRevoked = errors.New("session expired or revoked")

	// ErrNotAuthorized is returned when the caller is authenticated but not
	// allowed to perform the operation on the target.
	ErrNotAuthorized = errors.New("operation not permitted")

	// ErrShareNotFound is returned when no share exists under the id.
	ErrShareNotFound = errors.New("share not found")

	// ErrShareUnavailable collapses expired and exhausted: the share existed
	// but can no longer be redeemed.
	ErrShareUnavailable = errors.New("share no longer available")
)
