package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/pass-guard/models"
)

func TestMemoryStore_FirstAccountIsAdmin(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	first, err := m.CreateAccount(ctx, models.Account{AccountID: "a1", Email: "First@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Role != models.RoleAdmin {
		t.Errorf("expected admin role for first account, got %s", first.Role)
	}

	second, err := m.CreateAccount(ctx, models.Account{AccountID: "a2", Email: "second@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Role != models.RoleUser {
		t.Errorf("expected user role for second account, got %s", second.Role)
	}

	// email uniqueness is case-insensitive
	_, err = m.CreateAccount(ctx, models.Account{AccountID: "a3", Email: "FIRST@EXAMPLE.COM"})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

// TestMemoryStore_ConcurrentRedeem hammers a single-view share with 100
// goroutines; exactly one may receive the payload.
func TestMemoryStore_ConcurrentRedeem(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	_, err := m.CreateShare(ctx, models.PublicShare{
		ShareID:   "s1",
		Payload:   "ciphertext",
		Type:      models.SharePassword,
		ExpiresAt: now.Add(time.Hour),
		ViewsLeft: 1,
		MaxViews:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const goroutines = 100
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if _, err := m.RedeemShare(ctx, "s1", now); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := successes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 successful redemption, got %d", got)
	}
}

func TestMemoryStore_ConcurrentRecoveryCodeBurn(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, err := m.CreateAccount(ctx, models.Account{AccountID: "a1", Email: "a@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.ReplaceRecoveryCodes(ctx, "a1", []string{"hash-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const goroutines = 50
	var (
		wg        sync.WaitGroup
		successes atomic.Int64
	)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			ok, err := m.ConsumeRecoveryCode(ctx, "a1", "hash-1")
			if err == nil && ok {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := successes.Load(); got != 1 {
		t.Fatalf("expected exactly 1 successful burn, got %d", got)
	}
}

func TestMemoryStore_SessionLifecycle(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	session := models.Session{
		SessionID:  "sess-1",
		AccountID:  "a1",
		LastActive: now,
		ExpiresAt:  now.Add(time.Hour),
	}
	if _, err := m.CreateSession(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.ValidateSession(ctx, "sess-1", now); err != nil {
		t.Fatalf("fresh session should validate, got %v", err)
	}

	// expired lazily: no sweep, just a failed check past the deadline
	if _, err := m.ValidateSession(ctx, "sess-1", now.Add(2*time.Hour)); err != ErrSessionInvalid {
		t.Fatalf("expected ErrSessionInvalid past expiry, got %v", err)
	}

	if err := m.RevokeSession(ctx, "sess-1", "intruder", false); err != ErrNotSessionOwner {
		t.Fatalf("expected ErrNotSessionOwner, got %v", err)
	}
	if err := m.RevokeSession(ctx, "sess-1", "a1", false); err != nil {
		t.Fatalf("owner revoke failed: %v", err)
	}
	if _, err := m.ValidateSession(ctx, "sess-1", now); err != ErrSessionInvalid {
		t.Fatalf("expected ErrSessionInvalid after revoke, got %v", err)
	}
}

func TestMemoryStore_SetLockoutGuard(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if _, err := m.CreateAccount(ctx, models.Account{AccountID: "a1", Email: "a@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	attempts, err := m.IncrementFailedAttempts(ctx, "a1")
	if err != nil || attempts != 1 {
		t.Fatalf("expected attempts=1, got %d (err=%v)", attempts, err)
	}

	// stale observation loses
	err = m.SetLockout(ctx, "a1", time.Now().Add(time.Minute), 2)
	if err != ErrLockoutRaceLost {
		t.Fatalf("expected ErrLockoutRaceLost, got %v", err)
	}

	if err := m.SetLockout(ctx, "a1", time.Now().Add(time.Minute), 1); err != nil {
		t.Fatalf("matching observation should win: %v", err)
	}

	account, err := m.FindAccountByID(ctx, "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.IsLockedAt(time.Now()) {
		t.Error("account should be locked")
	}

	if err := m.ResetLockout(ctx, "a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	account, _ = m.FindAccountByID(ctx, "a1")
	if account.FailedAttempts != 0 || account.LockoutUntil != nil {
		t.Error("reset should clear counter and deadline")
	}
}

func TestMemoryStore_ListRecentEventsFilters(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	acc := "a1"

	for i, action := range []models.AuditAction{models.AuditLogin, models.AuditLogout, models.AuditLoginFailed} {
		event := models.AuditEvent{EventID: string(rune('e' + i)), Action: action, CreatedAt: time.Now()}
		if action != models.AuditLoginFailed {
			event.AccountID = &acc
		}
		if err := m.SaveAuditEvent(ctx, event); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	all, err := m.ListRecentEvents(ctx, "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Action != models.AuditLoginFailed {
		t.Errorf("expected newest first, got %s", all[0].Action)
	}

	mine, err := m.ListRecentEvents(ctx, acc, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 filtered events, got %d", len(mine))
	}
}
