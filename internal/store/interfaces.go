package store

import (
	"context"
	"time"

	"github.com/MKhiriev/pass-guard/models"
)

// AccountRepository is the data-access contract for account rows, including
// the lockout counter and two-factor state. Counter and flag mutations are
// single conditional statements: the database row lock, not the
// application, is the serialization point under concurrent logins.
type AccountRepository interface {
	// CreateAccount persists a new account. The role is assigned inside the
	// INSERT: the first row ever created gets admin, every later one user.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByEmail looks an account up by email, case-insensitively.
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)

	// FindAccountByID looks an account up by its opaque id.
	FindAccountByID(ctx context.Context, accountID string) (models.Account, error)

	// IncrementFailedAttempts atomically bumps the failed-login counter and
	// returns the new value.
	IncrementFailedAttempts(ctx context.Context, accountID string) (int, error)

	// SetLockout sets the lockout deadline, guarded by the attempt count the
	// caller observed. A concurrent attempt that bumped the counter first
	// wins the race; losers get ErrLockoutRaceLost.
	SetLockout(ctx context.Context, accountID string, until time.Time, expectedAttempts int) error

	// ResetLockout zeroes the counter and clears the deadline.
	ResetLockout(ctx context.Context, accountID string) error

	// SetPendingTwoFactorSecret stores a freshly generated TOTP secret
	// without enabling it.
	SetPendingTwoFactorSecret(ctx context.Context, accountID, secret string) error

	// EnableTwoFactor flips the enabled flag, guarded by the pending secret
	// still being the one the caller verified a code against.
	EnableTwoFactor(ctx context.Context, accountID, secret string) error

	// DisableTwoFactor clears the secret, the flag, and all recovery codes.
	DisableTwoFactor(ctx context.Context, accountID string) error

	// ReplaceRecoveryCodes swaps the account's recovery-code set for the
	// given digests.
	ReplaceRecoveryCodes(ctx context.Context, accountID string, codeHashes []string) error

	// ConsumeRecoveryCode marks one unused code as used. Returns false when
	// the code does not exist or was already consumed — the mark is a
	// single conditional update, so a code can never be redeemed twice.
	ConsumeRecoveryCode(ctx context.Context, accountID, codeHash string) (bool, error)
}

// SessionRepository is the data-access contract for session rows.
type SessionRepository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// ValidateSession returns the session iff it is not revoked and not
	// expired at now, checked in one logical read so a concurrent
	// revocation cannot slip between the checks. Invalid or missing
	// sessions yield ErrSessionInvalid.
	ValidateSession(ctx context.Context, sessionID string, now time.Time) (models.Session, error)

	// TouchSession updates the last-active timestamp. Best effort.
	TouchSession(ctx context.Context, sessionID string, now time.Time) error

	// RevokeSession marks the session revoked. Unless isAdmin is set, the
	// session must belong to accountID; otherwise ErrNotSessionOwner.
	RevokeSession(ctx context.Context, sessionID, accountID string, isAdmin bool) error

	// ListActiveSessions returns the account's usable sessions, most
	// recently active first, using the same validity predicate as
	// ValidateSession.
	ListActiveSessions(ctx context.Context, accountID string, now time.Time) ([]models.Session, error)
}

// ShareRepository is the data-access contract for public-share rows.
type ShareRepository interface {
	// CreateShare persists a new share row.
	CreateShare(ctx context.Context, share models.PublicShare) (models.PublicShare, error)

	// GetShare returns the share metadata without consuming a view.
	GetShare(ctx context.Context, shareID string) (models.PublicShare, error)

	// RedeemShare is the burn-after-reading step: one conditional update
	// that checks the view budget and the expiry and decrements the budget,
	// returning the payload. Callers that lose the race get
	// ErrShareNotRedeemable; the total number of successes can never exceed
	// the share's view budget.
	RedeemShare(ctx context.Context, shareID string, now time.Time) (models.PublicShare, error)
}

// AuditRepository persists audit events emitted by the security core.
type AuditRepository interface {
	// SaveAuditEvent appends one event to the audit trail.
	SaveAuditEvent(ctx context.Context, event models.AuditEvent) error

	// ListRecentEvents returns up to limit newest events, optionally
	// filtered by acting account (empty accountID = no filter).
	ListRecentEvents(ctx context.Context, accountID string, limit int) ([]models.AuditEvent, error)
}

// Storages aggregates every repository the service layer consumes.
type Storages struct {
	Accounts AccountRepository
	Sessions SessionRepository
	Shares   ShareRepository
	Audit    AuditRepository
}
