// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// shareRepository is the PostgreSQL-backed implementation of
// [ShareRepository], managing the "shares" table.
type shareRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewShareRepository constructs a [ShareRepository] backed by the provided
// database connection and logger.
func NewShareRepository(db *DB, logger *logger.Logger) ShareRepository {
	logger.Debug().Msg("creating share repository")
	return &shareRepository{
		db:     db,
		logger: logger,
	}
}

// CreateShare persists a new share row and returns it with the
// server-assigned CreatedAt.
func (r *shareRepository) CreateShare(ctx context.Context, share models.PublicShare) (models.PublicShare, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createShare,
		share.ShareID, share.Payload, share.Type, share.ExpiresAt, share.ViewsLeft, share.MaxViews)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*shareRepository.CreateShare").Msg("error: row is nil")
		return models.PublicShare{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	saved, err := scanShareRow(row)
	if err != nil {
		log.Err(err).Str("func", "*shareRepository.CreateShare").Msg("error: scanning error")
		return models.PublicShare{}, errors.Join(ErrScanningRow, err)
	}

	return saved, nil
}

// GetShare returns the share row without touching its view budget. A missing
// row maps to [ErrShareNotFound].
func (r *shareRepository) GetShare(ctx context.Context, shareID string) (models.PublicShare, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getShare, shareID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*shareRepository.GetShare").Msg("error: row is nil")
		return models.PublicShare{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	share, err := scanShareRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PublicShare{}, ErrShareNotFound
		}
		log.Err(err).Str("func", "*shareRepository.GetShare").Msg("error: scanning error")
		return models.PublicShare{}, errors.Join(ErrScanningRow, err)
	}

	return share, nil
}

// RedeemShare executes the burn-after-reading decrement. The UPDATE checks
// the view budget and the expiry and consumes one view in a single statement,
// so under any number of concurrent redemptions at most MaxViews of them ever
// receive the payload. Zero affected rows is reported as
// [ErrShareNotRedeemable]; a share id with no row at all as
// [ErrShareNotFound].
func (r *shareRepository) RedeemShare(ctx context.Context, shareID string, now time.Time) (models.PublicShare, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, redeemShare, shareID, now)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*shareRepository.RedeemShare").Msg("error: row is nil")
		return models.PublicShare{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	share, err := scanShareRow(row)
	if err == nil {
		return share, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "*shareRepository.RedeemShare").Msg("error: scanning error")
		return models.PublicShare{}, errors.Join(ErrScanningRow, err)
	}

	// The guarded update matched nothing: tell an exhausted/expired share
	// apart from an unknown id for the audit trail. The redemption outcome
	// is already decided either way.
	var exists bool
	if probeErr := r.db.QueryRowContext(ctx, shareExists, shareID).Scan(&exists); probeErr != nil {
		log.Err(probeErr).Str("func", "*shareRepository.RedeemShare").Msg("error: scanning error")
		return models.PublicShare{}, errors.Join(ErrScanningRow, probeErr)
	}
	if exists {
		return models.PublicShare{}, ErrShareNotRedeemable
	}

	return models.PublicShare{}, ErrShareNotFound
}

func scanShareRow(row *sql.Row) (models.PublicShare, error) {
	var s models.PublicShare
	err := row.Scan(&s.ShareID, &s.Payload, &s.Type, &s.ExpiresAt,
		&s.ViewsLeft, &s.MaxViews, &s.CreatedAt)
	if err != nil {
		return models.PublicShare{}, err
	}

	return s, nil
}
