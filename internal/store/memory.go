package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// MemoryStore is a mutex-guarded in-memory implementation of every
// repository. It backs local development and tests when no database DSN is
// configured, and mirrors the PostgreSQL semantics exactly: the same sentinel
// errors, the same conditional single-shot transitions, the same collapsed
// validity checks. One mutex covers all tables, so every operation is atomic
// the way a single SQL statement is.
type MemoryStore struct {
	mu sync.Mutex

	accounts     map[string]*models.Account // by account id
	emailIndex   map[string]string          // lower(email) -> account id
	recoveryUsed map[string]map[string]bool // account id -> code hash -> used
	sessions     map[string]*models.Session
	shares       map[string]*models.PublicShare
	events       []models.AuditEvent
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:     make(map[string]*models.Account),
		emailIndex:   make(map[string]string),
		recoveryUsed: make(map[string]map[string]bool),
		sessions:     make(map[string]*models.Session),
		shares:       make(map[string]*models.PublicShare),
	}
}

// NewMemoryStorages wires one shared MemoryStore behind every repository
// interface.
func NewMemoryStorages(log *logger.Logger) *Storages {
	log.Debug().Msg("creating in-memory storages")
	m := NewMemoryStore()
	return &Storages{Accounts: m, Sessions: m, Shares: m, Audit: m}
}

// CreateAccount implements [AccountRepository]. The first account ever
// created gets the admin role; email uniqueness is case-insensitive.
func (m *MemoryStore) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(account.Email)
	if _, taken := m.emailIndex[email]; taken {
		return models.Account{}, ErrEmailAlreadyExists
	}

	account.Email = email
	account.Role = models.RoleUser
	if len(m.accounts) == 0 {
		account.Role = models.RoleAdmin
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	stored := account
	m.accounts[account.AccountID] = &stored
	m.emailIndex[email] = account.AccountID

	return account, nil
}

// FindAccountByEmail implements [AccountRepository].
func (m *MemoryStore) FindAccountByEmail(_ context.Context, email string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.emailIndex[strings.ToLower(email)]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return copyAccount(m.accounts[id]), nil
}

// FindAccountByID implements [AccountRepository].
func (m *MemoryStore) FindAccountByID(_ context.Context, accountID string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return copyAccount(account), nil
}

// IncrementFailedAttempts implements [AccountRepository].
func (m *MemoryStore) IncrementFailedAttempts(_ context.Context, accountID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}

	account.FailedAttempts++
	return account.FailedAttempts, nil
}

// SetLockout implements [AccountRepository]; the write only lands when the
// attempt counter still matches what the caller observed.
func (m *MemoryStore) SetLockout(_ context.Context, accountID string, until time.Time, expectedAttempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok || account.FailedAttempts != expectedAttempts {
		return ErrLockoutRaceLost
	}

	deadline := until
	account.LockoutUntil = &deadline
	return nil
}

// ResetLockout implements [AccountRepository].
func (m *MemoryStore) ResetLockout(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}

	account.FailedAttempts = 0
	account.LockoutUntil = nil
	return nil
}

// SetPendingTwoFactorSecret implements [AccountRepository].
func (m *MemoryStore) SetPendingTwoFactorSecret(_ context.Context, accountID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok || account.TwoFactorEnabled {
		return ErrTwoFactorConflict
	}

	account.TwoFactorSecret = secret
	return nil
}

// EnableTwoFactor implements [AccountRepository]; guarded by the pending
// secret still being the verified one.
func (m *MemoryStore) EnableTwoFactor(_ context.Context, accountID, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok || account.TwoFactorEnabled || account.TwoFactorSecret != secret {
		return ErrTwoFactorConflict
	}

	account.TwoFactorEnabled = true
	return nil
}

// DisableTwoFactor implements [AccountRepository].
func (m *MemoryStore) DisableTwoFactor(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}

	account.TwoFactorSecret = ""
	account.TwoFactorEnabled = false
	delete(m.recoveryUsed, accountID)
	return nil
}

// ReplaceRecoveryCodes implements [AccountRepository].
func (m *MemoryStore) ReplaceRecoveryCodes(_ context.Context, accountID string, codeHashes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[accountID]; !ok {
		return ErrAccountNotFound
	}

	codes := make(map[string]bool, len(codeHashes))
	for _, hash := range codeHashes {
		codes[hash] = false
	}
	m.recoveryUsed[accountID] = codes
	return nil
}

// ConsumeRecoveryCode implements [AccountRepository]; a code burns exactly
// once under the store mutex.
func (m *MemoryStore) ConsumeRecoveryCode(_ context.Context, accountID, codeHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	codes, ok := m.recoveryUsed[accountID]
	if !ok {
		return false, nil
	}

	used, known := codes[codeHash]
	if !known || used {
		return false, nil
	}

	codes[codeHash] = true
	return true, nil
}

// CreateSession implements [SessionRepository].
func (m *MemoryStore) CreateSession(_ context.Context, session models.Session) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	stored := session
	m.sessions[session.SessionID] = &stored
	return session, nil
}

// ValidateSession implements [SessionRepository]; missing, revoked, and
// expired collapse to [ErrSessionInvalid].
func (m *MemoryStore) ValidateSession(_ context.Context, sessionID string, now time.Time) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok || !session.IsValidAt(now) {
		return models.Session{}, ErrSessionInvalid
	}

	return *session, nil
}

// TouchSession implements [SessionRepository].
func (m *MemoryStore) TouchSession(_ context.Context, sessionID string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[sessionID]; ok {
		session.LastActive = now
	}
	return nil
}

// RevokeSession implements [SessionRepository].
func (m *MemoryStore) RevokeSession(_ context.Context, sessionID, accountID string, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if !isAdmin && session.AccountID != accountID {
		return ErrNotSessionOwner
	}

	session.IsRevoked = true
	return nil
}

// ListActiveSessions implements [SessionRepository].
func (m *MemoryStore) ListActiveSessions(_ context.Context, accountID string, now time.Time) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sessions []models.Session
	for _, s := range m.sessions {
		if s.AccountID == accountID && s.IsValidAt(now) {
			sessions = append(sessions, *s)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActive.After(sessions[j].LastActive)
	})

	return sessions, nil
}

// CreateShare implements [ShareRepository].
func (m *MemoryStore) CreateShare(_ context.Context, share models.PublicShare) (models.PublicShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now()
	}

	stored := share
	m.shares[share.ShareID] = &stored
	return share, nil
}

// GetShare implements [ShareRepository].
func (m *MemoryStore) GetShare(_ context.Context, shareID string) (models.PublicShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	share, ok := m.shares[shareID]
	if !ok {
		return models.PublicShare{}, ErrShareNotFound
	}

	return *share, nil
}

// RedeemShare implements [ShareRepository]: guard and decrement happen under
// one mutex hold, so concurrent redemptions can never hand out more payloads
// than the view budget.
func (m *MemoryStore) RedeemShare(_ context.Context, shareID string, now time.Time) (models.PublicShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	share, ok := m.shares[shareID]
	if !ok {
		return models.PublicShare{}, ErrShareNotFound
	}
	if !share.IsRedeemableAt(now) {
		return models.PublicShare{}, ErrShareNotRedeemable
	}

	share.ViewsLeft--
	return *share, nil
}

// SaveAuditEvent implements [AuditRepository].
func (m *MemoryStore) SaveAuditEvent(_ context.Context, event models.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
	return nil
}

// ListRecentEvents implements [AuditRepository].
func (m *MemoryStore) ListRecentEvents(_ context.Context, accountID string, limit int) ([]models.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var events []models.AuditEvent
	for i := len(m.events) - 1; i >= 0 && len(events) < limit; i-- {
		e := m.events[i]
		if accountID != "" && (e.AccountID == nil || *e.AccountID != accountID) {
			continue
		}
		events = append(events, e)
	}

	return events, nil
}

// copyAccount returns a value copy with its own LockoutUntil pointer so
// callers can never mutate stored state through the returned struct.
func copyAccount(a *models.Account) models.Account {
	out := *a
	if a.LockoutUntil != nil {
		until := *a.LockoutUntil
		out.LockoutUntil = &until
	}
	return out
}
