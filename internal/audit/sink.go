// Package audit implements the asynchronous audit pipeline of the security
// core. Services emit events fire-and-forget; a background dispatcher fans
// them out to the configured sinks. The pipeline is fail-open by contract:
// a slow or broken sink can drop events but can never block or fail the
// security operation that produced them.
package audit

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

// Sink receives audit events from the dispatcher. Implementations must be
// safe for use from a single dispatcher goroutine; Deliver errors are logged
// and otherwise ignored.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Deliver persists or forwards one event.
	Deliver(ctx context.Context, event models.AuditEvent) error
}
