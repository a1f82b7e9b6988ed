// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/MKhiriev/pass-guard/internal/config"
	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

// recoveryCodeCount is the number of single-use recovery codes issued when
// two-factor is enabled.
const recoveryCodeCount = 10

// minPasswordLength is the structural floor for new passwords. Strength
// policy beyond length is the client's concern.
const minPasswordLength = 8

// authService is the concrete implementation of AuthService. It owns the
// login state machine (password step, optional 2FA step), the failed-attempt
// lockout policy, and session issuance/validation/revocation.
//
// The service never decides races itself: every contended transition (the
// attempt counter, the lockout deadline, the 2FA flag, recovery-code burns,
// session revocation) is delegated to a conditional storage operation and the
// service only interprets its outcome.
type authService struct {
	accounts store.AccountRepository
	sessions store.SessionRepository

	hasher crypto.PasswordHasher
	totp   crypto.TotpEngine

	audit auditEmitter
	ids   *utils.UUIDGenerator

	authCfg    config.Auth
	lockoutCfg config.Lockout

	// clock is swapped in tests; production uses time.Now.
	clock func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and security parameters. The returned service is safe for concurrent use;
// all state is read-only after construction.
func NewAuthService(
	accounts store.AccountRepository,
	sessions store.SessionRepository,
	hasher crypto.PasswordHasher,
	totp crypto.TotpEngine,
	auditor auditEmitter,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		accounts:   accounts,
		sessions:   sessions,
		hasher:     hasher,
		totp:       totp,
		audit:      auditor,
		ids:        utils.NewUUIDGenerator(),
		authCfg:    cfg.Auth,
		lockoutCfg: cfg.Lockout,
		clock:      time.Now,
		logger:     logger,
	}
}

// Register creates a new account with a bcrypt-hashed password. The role is
// assigned by the storage layer (first account becomes admin). Duplicate
// emails map to ErrDuplicateAccount.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, client models.ClientMeta) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err := validateRegistration(req); err != nil {
		log.Error().Str("email", req.Email).Msg("invalid registration payload")
		return models.Account{}, err
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	account, err := a.accounts.CreateAccount(ctx, models.Account{
		AccountID:    a.ids.Generate(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.Account{}, ErrDuplicateAccount
		}
		log.Err(err).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	a.emit(account.AccountID, models.AuditRegister, models.EntityAccount, account.AccountID, "", client)

	return account, nil
}

// Login performs the password step of the login flow.
//
// Outcomes, in evaluation order:
//   - unknown email         -> ErrInvalidCredentials (after a burned hash
//     verification, so the timing matches the known-email path)
//   - active lockout window -> ErrAccountLocked
//   - wrong password        -> failed attempt recorded, ErrInvalidCredentials
//   - 2FA enabled           -> challenge token, Requires2FA set
//   - otherwise             -> session created, lockout state cleared
func (a *authService) Login(ctx context.Context, req models.LoginRequest, client models.ClientMeta) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.LoginResponse{}, ErrInvalidPayload
	}

	now := a.clock()

	account, err := a.accounts.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// burn a verification against a fixed digest so unknown emails
			// cost the same as wrong passwords
			_, _ = a.hasher.Verify(req.Password, decoyDigest)
			a.emit("", models.AuditLoginFailed, models.EntityAccount, "", "unknown email", client)
			return models.LoginResponse{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("account lookup failed")
		return models.LoginResponse{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if account.IsLockedAt(now) {
		a.emit(account.AccountID, models.AuditLoginFailed, models.EntityAccount, account.AccountID, "lockout active", client)
		return models.LoginResponse{}, ErrAccountLocked
	}

	ok, err := a.hasher.Verify(req.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Str("account_id", account.AccountID).Msg("password verification failed")
		return models.LoginResponse{}, fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		a.recordFailedAttempt(ctx, account.AccountID, "wrong password", client)
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	if account.TwoFactorEnabled {
		challenge, err := utils.GenerateChallengeToken(a.authCfg.TokenIssuer, account.AccountID, a.authCfg.ChallengeDuration, a.authCfg.TokenSignKey)
		if err != nil {
			log.Err(err).Str("account_id", account.AccountID).Msg("challenge token generation failed")
			return models.LoginResponse{}, fmt.Errorf("challenge token generation failed: %w", err)
		}

		return models.LoginResponse{Requires2FA: true, ChallengeToken: challenge.String()}, nil
	}

	token, err := a.openSession(ctx, account, client, now)
	if err != nil {
		return models.LoginResponse{}, err
	}

	a.emit(account.AccountID, models.AuditLogin, models.EntitySession, token.SessionID, "", client)

	return models.LoginResponse{Token: token.String()}, nil
}

// CompleteTwoFactorLogin is the second login step: a pending challenge token
// plus a TOTP or recovery code buys a full session. Failed codes feed the
// same lockout counter as failed passwords, so the second factor cannot be
// brute-forced any faster than the first.
func (a *authService) CompleteTwoFactorLogin(ctx context.Context, req models.TwoFactorCompleteRequest, client models.ClientMeta) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if req.ChallengeToken == "" || req.Code == "" {
		return models.LoginResponse{}, ErrInvalidPayload
	}

	challenge, err := utils.ValidateAndParseToken(req.ChallengeToken, a.authCfg.TokenSignKey, a.authCfg.TokenIssuer)
	if err != nil || !challenge.IsPending() {
		return models.LoginResponse{}, ErrChallengeExpiredOrInvalid
	}

	now := a.clock()

	account, err := a.accounts.FindAccountByID(ctx, challenge.AccountID())
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.LoginResponse{}, ErrChallengeExpiredOrInvalid
		}
		log.Err(err).Msg("account lookup failed")
		return models.LoginResponse{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if account.IsLockedAt(now) {
		a.emit(account.AccountID, models.AuditLoginFailed, models.EntityAccount, account.AccountID, "lockout active", client)
		return models.LoginResponse{}, ErrAccountLocked
	}
	if !account.TwoFactorEnabled {
		return models.LoginResponse{}, ErrChallengeExpiredOrInvalid
	}

	ok, err := a.verifySecondFactor(ctx, account, req.Code, now)
	if err != nil {
		log.Err(err).Str("account_id", account.AccountID).Msg("second-factor verification failed")
		return models.LoginResponse{}, fmt.Errorf("second-factor verification failed: %w", err)
	}
	if !ok {
		a.recordFailedAttempt(ctx, account.AccountID, "wrong second factor", client)
		return models.LoginResponse{}, ErrInvalid2FACode
	}

	token, err := a.openSession(ctx, account, client, now)
	if err != nil {
		return models.LoginResponse{}, err
	}

	a.emit(account.AccountID, models.AuditLogin2FA, models.EntitySession, token.SessionID, "", client)

	return models.LoginResponse{Token: token.String()}, nil
}

// SetupTwoFactor generates a fresh pending secret. Calling it again before
// confirmation replaces the previous pending secret; calling it on an account
// with 2FA already active is a state conflict.
func (a *authService) SetupTwoFactor(ctx context.Context, accountID string, client models.ClientMeta) (models.TwoFactorSetupResponse, error) {
	log := logger.FromContext(ctx)

	account, err := a.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("account lookup failed")
		return models.TwoFactorSetupResponse{}, fmt.Errorf("account lookup failed: %w", err)
	}
	if account.TwoFactorEnabled {
		return models.TwoFactorSetupResponse{}, ErrTwoFactorStateConflict
	}

	secret, uri, err := a.totp.GenerateSecret(account.Email)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("totp secret generation failed")
		return models.TwoFactorSetupResponse{}, fmt.Errorf("totp secret generation failed: %w", err)
	}

	if err := a.accounts.SetPendingTwoFactorSecret(ctx, accountID, secret); err != nil {
		if errors.Is(err, store.ErrTwoFactorConflict) {
			return models.TwoFactorSetupResponse{}, ErrTwoFactorStateConflict
		}
		log.Err(err).Str("account_id", accountID).Msg("storing pending secret failed")
		return models.TwoFactorSetupResponse{}, fmt.Errorf("storing pending secret failed: %w", err)
	}

	a.emit(accountID, models.AuditTwoFactorSetup, models.EntityAccount, accountID, "", client)

	return models.TwoFactorSetupResponse{Secret: secret, ProvisioningURI: uri}, nil
}

// EnableTwoFactor confirms the pending secret with a live TOTP code and
// activates enforcement. Recovery codes are generated, returned in plaintext
// exactly once, and persisted only as SHA-256 digests.
func (a *authService) EnableTwoFactor(ctx context.Context, accountID string, req models.TwoFactorEnableRequest, client models.ClientMeta) (models.RecoveryCodesResponse, error) {
	log := logger.FromContext(ctx)

	if req.Code == "" {
		return models.RecoveryCodesResponse{}, ErrInvalidPayload
	}

	account, err := a.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("account lookup failed")
		return models.RecoveryCodesResponse{}, fmt.Errorf("account lookup failed: %w", err)
	}
	if account.TwoFactorEnabled || account.TwoFactorSecret == "" {
		return models.RecoveryCodesResponse{}, ErrTwoFactorStateConflict
	}

	ok, err := a.totp.VerifyCode(account.TwoFactorSecret, req.Code, a.clock())
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("totp verification failed")
		return models.RecoveryCodesResponse{}, fmt.Errorf("totp verification failed: %w", err)
	}
	if !ok {
		return models.RecoveryCodesResponse{}, ErrInvalid2FACode
	}

	if err := a.accounts.EnableTwoFactor(ctx, accountID, account.TwoFactorSecret); err != nil {
		if errors.Is(err, store.ErrTwoFactorConflict) {
			return models.RecoveryCodesResponse{}, ErrTwoFactorStateConflict
		}
		log.Err(err).Str("account_id", accountID).Msg("enabling two-factor failed")
		return models.RecoveryCodesResponse{}, fmt.Errorf("enabling two-factor failed: %w", err)
	}

	codes, err := a.totp.GenerateRecoveryCodes(recoveryCodeCount)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("recovery code generation failed")
		return models.RecoveryCodesResponse{}, fmt.Errorf("recovery code generation failed: %w", err)
	}

	hashes := make([]string, len(codes))
	for i, code := range codes {
		hashes[i] = crypto.HashRecoveryCode(code)
	}
	if err := a.accounts.ReplaceRecoveryCodes(ctx, accountID, hashes); err != nil {
		log.Err(err).Str("account_id", accountID).Msg("storing recovery codes failed")
		return models.RecoveryCodesResponse{}, fmt.Errorf("storing recovery codes failed: %w", err)
	}

	a.emit(accountID, models.AuditTwoFactorEnabled, models.EntityAccount, accountID, "", client)

	return models.RecoveryCodesResponse{RecoveryCodes: codes}, nil
}

// DisableTwoFactor removes the second factor. Both the password and a valid
// TOTP or recovery code are required.
func (a *authService) DisableTwoFactor(ctx context.Context, accountID string, req models.TwoFactorDisableRequest, client models.ClientMeta) error {
	log := logger.FromContext(ctx)

	if req.Password == "" || req.Code == "" {
		return ErrInvalidPayload
	}

	account, err := a.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("account lookup failed")
		return fmt.Errorf("account lookup failed: %w", err)
	}
	if !account.TwoFactorEnabled {
		return ErrTwoFactorStateConflict
	}

	ok, err := a.hasher.Verify(req.Password, account.PasswordHash)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("password verification failed")
		return fmt.Errorf("password verification failed: %w", err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	ok, err = a.verifySecondFactor(ctx, account, req.Code, a.clock())
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("second-factor verification failed")
		return fmt.Errorf("second-factor verification failed: %w", err)
	}
	if !ok {
		return ErrInvalid2FACode
	}

	if err := a.accounts.DisableTwoFactor(ctx, accountID); err != nil {
		log.Err(err).Str("account_id", accountID).Msg("disabling two-factor failed")
		return fmt.Errorf("disabling two-factor failed: %w", err)
	}

	a.emit(accountID, models.AuditTwoFactorDisabled, models.EntityAccount, accountID, "", client)

	return nil
}

// Logout revokes the calling session. Revoking an already dead session is
// reported as ErrSessionExpiredOrRevoked.
func (a *authService) Logout(ctx context.Context, accountID, sessionID string, client models.ClientMeta) error {
	log := logger.FromContext(ctx)

	if err := a.sessions.RevokeSession(ctx, sessionID, accountID, false); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrNotSessionOwner) {
			return ErrSessionExpiredOrRevoked
		}
		log.Err(err).Str("session_id", sessionID).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}

	a.emit(accountID, models.AuditLogout, models.EntitySession, sessionID, "", client)

	return nil
}

// ValidateRequest authenticates a bearer token against both the token itself
// and the server-side session row. A valid signature is necessary but never
// sufficient: pending tokens are rejected outright, and the session check is
// a single conditional read, so a revocation that already committed always
// wins over an in-flight request.
func (a *authService) ValidateRequest(ctx context.Context, tokenString string) (models.Token, models.Session, error) {
	token, err := utils.ValidateAndParseToken(tokenString, a.authCfg.TokenSignKey, a.authCfg.TokenIssuer)
	if err != nil {
		return models.Token{}, models.Session{}, ErrSessionExpiredOrRevoked
	}
	if token.IsPending() || token.SessionID == "" {
		return models.Token{}, models.Session{}, ErrSessionExpiredOrRevoked
	}

	now := a.clock()

	session, err := a.sessions.ValidateSession(ctx, token.SessionID, now)
	if err != nil {
		if errors.Is(err, store.ErrSessionInvalid) {
			return models.Token{}, models.Session{}, ErrSessionExpiredOrRevoked
		}
		return models.Token{}, models.Session{}, fmt.Errorf("session validation failed: %w", err)
	}
	if session.AccountID != token.AccountID() {
		return models.Token{}, models.Session{}, ErrSessionExpiredOrRevoked
	}

	// best effort; the request proceeds even if the touch is lost
	if err := a.sessions.TouchSession(ctx, session.SessionID, now); err != nil {
		logger.FromContext(ctx).Warn().Str("session_id", session.SessionID).Msg("session touch failed")
	}

	return token, session, nil
}

// ListSessions returns the account's active sessions.
func (a *authService) ListSessions(ctx context.Context, accountID string) (models.SessionListResponse, error) {
	sessions, err := a.sessions.ListActiveSessions(ctx, accountID, a.clock())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("account_id", accountID).Msg("session listing failed")
		return models.SessionListResponse{}, fmt.Errorf("session listing failed: %w", err)
	}

	return models.SessionListResponse{Sessions: sessions, Length: len(sessions)}, nil
}

// RevokeSession revokes the target session on behalf of accountID. Admins may
// revoke any session; everyone else only their own.
func (a *authService) RevokeSession(ctx context.Context, accountID string, role models.Role, targetSessionID string, client models.ClientMeta) error {
	log := logger.FromContext(ctx)

	if targetSessionID == "" {
		return ErrInvalidPayload
	}

	err := a.sessions.RevokeSession(ctx, targetSessionID, accountID, role == models.RoleAdmin)
	switch {
	case errors.Is(err, store.ErrNotSessionOwner):
		return ErrNotAuthorized
	case errors.Is(err, store.ErrSessionNotFound):
		return ErrSessionExpiredOrRevoked
	case err != nil:
		log.Err(err).Str("session_id", targetSessionID).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}

	a.emit(accountID, models.AuditSessionRevoked, models.EntitySession, targetSessionID, "", client)

	return nil
}

// openSession creates the server-side session row and issues the matching
// JWT. It also clears the lockout state: a successful full login forgives
// prior failures.
func (a *authService) openSession(ctx context.Context, account models.Account, client models.ClientMeta, now time.Time) (models.Token, error) {
	log := logger.FromContext(ctx)

	sessionID, err := crypto.NewSecureID()
	if err != nil {
		log.Err(err).Msg("session id generation failed")
		return models.Token{}, fmt.Errorf("session id generation failed: %w", err)
	}

	session, err := a.sessions.CreateSession(ctx, models.Session{
		SessionID:  sessionID,
		AccountID:  account.AccountID,
		IP:         client.IP,
		UserAgent:  client.UserAgent,
		LastActive: now,
		ExpiresAt:  now.Add(a.authCfg.SessionDuration),
	})
	if err != nil {
		log.Err(err).Str("account_id", account.AccountID).Msg("session creation failed")
		return models.Token{}, fmt.Errorf("session creation failed: %w", err)
	}

	if err := a.accounts.ResetLockout(ctx, account.AccountID); err != nil {
		log.Err(err).Str("account_id", account.AccountID).Msg("lockout reset failed")
		return models.Token{}, fmt.Errorf("lockout reset failed: %w", err)
	}

	token, err := utils.GenerateSessionToken(a.authCfg.TokenIssuer, account.AccountID, string(account.Role), session.SessionID, a.authCfg.SessionDuration, a.authCfg.TokenSignKey)
	if err != nil {
		log.Err(err).Str("account_id", account.AccountID).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("token generation failed: %w", err)
	}

	return token, nil
}

// recordFailedAttempt bumps the counter and, at or past the threshold, arms
// the doubling lockout window. Losing the SetLockout race is fine: whoever
// bumped the counter last arms a window at least as long.
func (a *authService) recordFailedAttempt(ctx context.Context, accountID, reason string, client models.ClientMeta) {
	log := logger.FromContext(ctx)

	attempts, err := a.accounts.IncrementFailedAttempts(ctx, accountID)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("failed-attempt increment failed")
		a.emit(accountID, models.AuditLoginFailed, models.EntityAccount, accountID, reason, client)
		return
	}

	a.emit(accountID, models.AuditLoginFailed, models.EntityAccount, accountID, reason, client)

	window := backoffDuration(attempts, a.lockoutCfg.Threshold, a.lockoutCfg.BackoffBase, a.lockoutCfg.BackoffCap)
	if window == 0 {
		return
	}

	until := a.clock().Add(window)
	err = a.accounts.SetLockout(ctx, accountID, until, attempts)
	switch {
	case errors.Is(err, store.ErrLockoutRaceLost):
		return
	case err != nil:
		log.Err(err).Str("account_id", accountID).Msg("arming lockout failed")
		return
	}

	a.emit(accountID, models.AuditAccountLocked, models.EntityAccount, accountID,
		fmt.Sprintf("locked for %s after %d failures", window, attempts), client)
}

// verifySecondFactor accepts either a live TOTP code or an unused recovery
// code. A recovery code burns on use through a single-shot storage update.
func (a *authService) verifySecondFactor(ctx context.Context, account models.Account, code string, now time.Time) (bool, error) {
	ok, err := a.totp.VerifyCode(account.TwoFactorSecret, code, now)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	return a.accounts.ConsumeRecoveryCode(ctx, account.AccountID, crypto.HashRecoveryCode(code))
}

// emit sends one audit event through the fire-and-forget pipeline.
func (a *authService) emit(accountID string, action models.AuditAction, entity models.AuditEntity, entityID, details string, client models.ClientMeta) {
	event := models.AuditEvent{
		EventID:    a.ids.Generate(),
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		Details:    details,
		Client:     client,
		CreatedAt:  a.clock(),
	}
	if accountID != "" {
		event.AccountID = &accountID
	}

	a.audit.Emit(event)
}

// decoyDigest is a fixed bcrypt digest verified against when the email is
// unknown, keeping the unknown-email and wrong-password paths at the same
// cost.
const decoyDigest = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

func validateRegistration(req models.RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return ErrInvalidPayload
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return ErrInvalidPayload
	}
	if len(req.Password) < minPasswordLength {
		return ErrInvalidPayload
	}
	return nil
}
