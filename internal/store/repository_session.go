// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository], managing the "sessions" table.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row and returns it with the
// server-assigned CreatedAt.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSession,
		session.SessionID, session.AccountID, session.IP, session.UserAgent,
		session.LastActive, session.ExpiresAt)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: row is nil")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanSessionRow(row)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: scanning error")
		return models.Session{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// ValidateSession evaluates revocation and expiry inside the SELECT itself:
// the row is returned only when it is usable at now, so a revocation that
// commits first can never be raced past. Missing, revoked, and expired all
// collapse to [ErrSessionInvalid].
func (r *sessionRepository) ValidateSession(ctx context.Context, sessionID string, now time.Time) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, validateSession, sessionID, now)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.ValidateSession").Msg("error: row is nil")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	session, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionInvalid
		}
		log.Err(err).Str("func", "*sessionRepository.ValidateSession").Msg("error: scanning error")
		return models.Session{}, errors.Join(ErrScanningRow, err)
	}

	return session, nil
}

// TouchSession updates the last-active timestamp. A missing row is not an
// error: the caller has already validated the session.
func (r *sessionRepository) TouchSession(ctx context.Context, sessionID string, now time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, touchSession, sessionID, now); err != nil {
		log.Err(err).Str("func", "*sessionRepository.TouchSession").Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// RevokeSession marks the session revoked. For non-admins the UPDATE carries
// the ownership predicate, so a forged session id belonging to someone else
// matches no row; the follow-up existence probe then distinguishes
// [ErrSessionNotFound] from [ErrNotSessionOwner]. Revoking an already revoked
// session is a no-op success.
func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID, accountID string, isAdmin bool) error {
	log := logger.FromContext(ctx)

	query, args := revokeSessionOwned, []any{sessionID, accountID}
	if isAdmin {
		query, args = revokeSessionAdmin, []any{sessionID}
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeSession").Msg("error executing update")
		return errors.Join(ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingQuery, err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, sessionExists, sessionID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeSession").Msg("error: scanning error")
		return errors.Join(ErrScanningRow, err)
	}
	if exists {
		return ErrNotSessionOwner
	}

	return ErrSessionNotFound
}

// ListActiveSessions returns the account's usable sessions ordered by recency.
// The query is assembled with squirrel so the validity predicate stays in one
// place next to its arguments.
func (r *sessionRepository) ListActiveSessions(ctx context.Context, accountID string, now time.Time) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("session_id", "account_id", "ip", "user_agent", "last_active", "expires_at", "is_revoked", "created_at").
		From(models.Session{}.TableName()).
		Where(sq.Eq{"account_id": accountID, "is_revoked": false}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("last_active DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListActiveSessions").Msg("error building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListActiveSessions").Msg("error executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.SessionID, &s.AccountID, &s.IP, &s.UserAgent,
			&s.LastActive, &s.ExpiresAt, &s.IsRevoked, &s.CreatedAt); err != nil {
			log.Err(err).Str("func", "*sessionRepository.ListActiveSessions").Msg("error: scanning error")
			return nil, errors.Join(ErrScanningRows, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return sessions, nil
}

func scanSessionRow(row *sql.Row) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.SessionID, &s.AccountID, &s.IP, &s.UserAgent,
		&s.LastActive, &s.ExpiresAt, &s.IsRevoked, &s.CreatedAt)
	if err != nil {
		return models.Session{}, err
	}

	return s, nil
}
