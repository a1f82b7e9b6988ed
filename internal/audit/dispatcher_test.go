package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures delivered events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []models.AuditEvent
	err    error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Deliver(_ context.Context, event models.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) delivered() []models.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	d := NewDispatcher(8, logger.Nop(), first, second)
	d.Run()

	d.Emit(models.AuditEvent{EventID: "e1", Action: models.AuditLogin})
	d.Emit(models.AuditEvent{EventID: "e2", Action: models.AuditLogout})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	require.Len(t, first.delivered(), 2)
	require.Len(t, second.delivered(), 2)
	assert.Equal(t, "e1", first.delivered()[0].EventID)
}

func TestDispatcher_FailOpen(t *testing.T) {
	broken := &recordingSink{err: errors.New("sink down")}
	healthy := &recordingSink{}
	d := NewDispatcher(8, logger.Nop(), broken, healthy)
	d.Run()

	d.Emit(models.AuditEvent{EventID: "e1", Action: models.AuditShareRedeemed})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	// a failing sink must not prevent delivery to the others
	assert.Len(t, healthy.delivered(), 1)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{}
	// dispatcher not running: the queue fills and stays full
	d := NewDispatcher(2, logger.Nop(), sink)

	for i := 0; i < 5; i++ {
		d.Emit(models.AuditEvent{Action: models.AuditLoginFailed})
	}

	assert.Equal(t, int64(3), d.Dropped())
}

func TestDispatcher_EmitAfterStopDoesNotPanic(t *testing.T) {
	d := NewDispatcher(2, logger.Nop(), &recordingSink{})
	d.Run()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	d.Emit(models.AuditEvent{Action: models.AuditLogin})
	assert.Equal(t, int64(1), d.Dropped())
}

func TestWebhookSink_PostsEventJSON(t *testing.T) {
	received := make(chan models.AuditEvent, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event models.AuditEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL)
	err := sink.Deliver(context.Background(), models.AuditEvent{
		EventID: "e1",
		Action:  models.AuditAccountLocked,
		Client:  models.ClientMeta{IP: "10.0.0.1"},
	})
	require.NoError(t, err)

	event := <-received
	assert.Equal(t, models.AuditAccountLocked, event.Action)
	assert.Equal(t, "10.0.0.1", event.Client.IP)
}

func TestWebhookSink_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL)
	err := sink.Deliver(context.Background(), models.AuditEvent{Action: models.AuditLogin})
	assert.Error(t, err)
}
