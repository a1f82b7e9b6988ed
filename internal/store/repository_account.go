package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It manages the "accounts" and "recovery_codes" tables.
//
// All state transitions that race under concurrent logins (the failed-attempt
// counter, the lockout deadline, the two-factor flag, recovery-code burns)
// are expressed as single conditional statements; the repository never does a
// read-modify-write in Go.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// singleAdminIndex is the partial unique index that admits at most one
// admin row.
const singleAdminIndex = "accounts_single_admin"

// CreateAccount persists a new account and returns the fully populated
// [models.Account] with server-assigned fields (Role, CreatedAt).
//
// The role is decided inside the INSERT: admin for the very first row, user
// for everyone after. Losing the first-account race to a concurrent
// registration surfaces as a unique_violation on the single-admin index and
// is retried once with the user role. A unique_violation on the email index
// maps to [ErrEmailAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	saved, err := r.insertAccount(ctx, createAccount, account)
	if err != nil && isSingleAdminViolation(err) {
		return r.insertAccount(ctx, createAccountAsUser, account)
	}

	return saved, err
}

func (r *accountRepository) insertAccount(ctx context.Context, query string, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query,
		account.AccountID, account.Email, account.Name, account.PasswordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*accountRepository.insertAccount").Msg("error: row is nil")
		return models.Account{}, mapInsertAccountError(err)
	}

	saved, err := scanAccount(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Account{}, mapInsertAccountError(err)
		}
		log.Err(err).Str("func", "*accountRepository.insertAccount").Msg("error: scanning error")
		return models.Account{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// mapInsertAccountError keeps the single-admin violation recognizable for the
// retry in CreateAccount and collapses every other unique_violation (the
// email index) to [ErrEmailAlreadyExists].
func mapInsertAccountError(err error) error {
	if isSingleAdminViolation(err) {
		return err
	}
	if postgresError(err) == pgerrcode.UniqueViolation {
		return ErrEmailAlreadyExists
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

func isSingleAdminViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == singleAdminIndex
}

// FindAccountByEmail retrieves the account whose email matches the given one
// case-insensitively. A missing row maps to [ErrAccountNotFound].
func (r *accountRepository) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findAccount(ctx, findAccountByEmail, email)
}

// FindAccountByID retrieves the account with the given id. A missing row maps
// to [ErrAccountNotFound].
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (models.Account, error) {
	return r.findAccount(ctx, findAccountByID, accountID)
}

func (r *accountRepository) findAccount(ctx context.Context, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("error: row is nil")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	found, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.findAccount").Msg("error: scanning error")
		return models.Account{}, errors.Join(ErrScanningRow, err)
	}

	return found, nil
}

// IncrementFailedAttempts bumps the failed-login counter in one UPDATE and
// returns the post-increment value via RETURNING, so concurrent failures each
// observe a distinct count.
func (r *accountRepository) IncrementFailedAttempts(ctx context.Context, accountID string) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	row := r.db.QueryRowContext(ctx, incrementFailedAttempts, accountID)
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.IncrementFailedAttempts").Msg("error: scanning error")
		return 0, errors.Join(ErrScanningRow, err)
	}

	return attempts, nil
}

// SetLockout writes the lockout deadline guarded by the attempt count the
// caller observed. Zero affected rows means a concurrent attempt moved the
// counter first; the caller's deadline is stale and is reported as
// [ErrLockoutRaceLost].
func (r *accountRepository) SetLockout(ctx context.Context, accountID string, until time.Time, expectedAttempts int) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setLockout, accountID, until, expectedAttempts)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetLockout").Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrLockoutRaceLost
	}

	return nil
}

// ResetLockout zeroes the counter and clears the deadline.
func (r *accountRepository) ResetLockout(ctx context.Context, accountID string) error {
	return r.execOnAccount(ctx, resetLockout, "ResetLockout", accountID)
}

// SetPendingTwoFactorSecret stores a fresh TOTP secret without enabling it.
// The guard refuses to overwrite the secret of an account that already has
// two-factor active.
func (r *accountRepository) SetPendingTwoFactorSecret(ctx context.Context, accountID, secret string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setPendingTwoFactorSecret, accountID, secret)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetPendingTwoFactorSecret").Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTwoFactorConflict
	}

	return nil
}

// EnableTwoFactor flips the enabled flag iff the stored secret is still the
// one the caller verified a code against.
func (r *accountRepository) EnableTwoFactor(ctx context.Context, accountID, secret string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, enableTwoFactor, accountID, secret)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.EnableTwoFactor").Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTwoFactorConflict
	}

	return nil
}

// DisableTwoFactor clears the secret and the flag and drops every recovery
// code in one transaction.
func (r *accountRepository) DisableTwoFactor(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.DisableTwoFactor").Msg("error beginning transaction")
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx, disableTwoFactor, accountID)
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	if _, err := tx.ExecContext(ctx, deleteRecoveryCodes, accountID); err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

// ReplaceRecoveryCodes swaps the account's recovery-code set for the given
// digests inside one transaction, so a crash can never leave a mix of old and
// new codes.
func (r *accountRepository) ReplaceRecoveryCodes(ctx context.Context, accountID string, codeHashes []string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ReplaceRecoveryCodes").Msg("error beginning transaction")
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, deleteRecoveryCodes, accountID); err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}

	for _, hash := range codeHashes {
		if _, err := tx.ExecContext(ctx, insertRecoveryCode, accountID, hash); err != nil {
			return errors.Join(ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}

	return nil
}

// ConsumeRecoveryCode burns one unused code. The used_at IS NULL guard makes
// the burn single-shot: of any number of concurrent attempts with the same
// code, exactly one sees true.
func (r *accountRepository) ConsumeRecoveryCode(ctx context.Context, accountID, codeHash string) (bool, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, consumeRecoveryCode, accountID, codeHash)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ConsumeRecoveryCode").Msg("error executing update")
		return false, errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Join(ErrExecutingQuery, err)
	}

	return affected == 1, nil
}

func (r *accountRepository) execOnAccount(ctx context.Context, query, funcName, accountID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, accountID)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository."+funcName).Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// scanAccount maps one accounts row onto a [models.Account], converting the
// nullable lockout column.
func scanAccount(row *sql.Row) (models.Account, error) {
	var (
		account      models.Account
		lockoutUntil sql.NullTime
	)

	err := row.Scan(
		&account.AccountID, &account.Email, &account.Name, &account.PasswordHash,
		&account.Role, &account.FailedAttempts, &lockoutUntil,
		&account.TwoFactorSecret, &account.TwoFactorEnabled, &account.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	if lockoutUntil.Valid {
		until := lockoutUntil.Time
		account.LockoutUntil = &until
	}

	return account, nil
}
