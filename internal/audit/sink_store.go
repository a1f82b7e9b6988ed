package audit

import (
	"context"

	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/models"
)

// storeSink persists audit events into the audit repository, making the
// trail queryable alongside the data it describes.
type storeSink struct {
	repo store.AuditRepository
}

// NewStoreSink constructs a sink backed by the given audit repository.
func NewStoreSink(repo store.AuditRepository) Sink {
	return &storeSink{repo: repo}
}

func (s *storeSink) Name() string { return "store" }

func (s *storeSink) Deliver(ctx context.Context, event models.AuditEvent) error {
	return s.repo.SaveAuditEvent(ctx, event)
}
