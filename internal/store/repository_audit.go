package store

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

// auditRepository is the PostgreSQL-backed implementation of
// [AuditRepository], managing the append-only "audit_events" table.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// SaveAuditEvent appends one event row.
func (r *auditRepository) SaveAuditEvent(ctx context.Context, event models.AuditEvent) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, insertAuditEvent,
		event.EventID, event.AccountID, event.Action, event.EntityType, event.EntityID,
		event.Details, event.Client.IP, event.Client.UserAgent, event.CreatedAt)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.SaveAuditEvent").Msg("error executing insert")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// ListRecentEvents returns up to limit newest events. The account filter is
// optional, which is why the query is assembled with squirrel instead of a
// fixed statement.
func (r *auditRepository) ListRecentEvents(ctx context.Context, accountID string, limit int) ([]models.AuditEvent, error) {
	log := logger.FromContext(ctx)

	builder := sq.
		Select("event_id", "account_id", "action", "entity_type", "entity_id", "details", "ip", "user_agent", "created_at").
		From(models.AuditEvent{}.TableName()).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)
	if accountID != "" {
		builder = builder.Where(sq.Eq{"account_id": accountID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListRecentEvents").Msg("error building query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.ListRecentEvents").Msg("error executing query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var events []models.AuditEvent
	for rows.Next() {
		var e models.AuditEvent
		if err := rows.Scan(&e.EventID, &e.AccountID, &e.Action, &e.EntityType, &e.EntityID,
			&e.Details, &e.Client.IP, &e.Client.UserAgent, &e.CreatedAt); err != nil {
			log.Err(err).Str("func", "*auditRepository.ListRecentEvents").Msg("error: scanning error")
			return nil, errors.Join(ErrScanningRows, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRows, err)
	}

	return events, nil
}
