package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareFixture struct {
	svc     *shareService
	emitter *capturingEmitter
	now     time.Time
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()

	f := &shareFixture{
		emitter: &capturingEmitter{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	svc := NewShareService(store.NewMemoryStore(), f.emitter, logger.Nop()).(*shareService)
	svc.clock = func() time.Time { return f.now }
	f.svc = svc

	return f
}

func (f *shareFixture) create(t *testing.T, req models.CreateShareRequest) models.ShareCreatedResponse {
	t.Helper()
	created, err := f.svc.CreateShare(context.Background(), req, "acc-1", testClient)
	require.NoError(t, err)
	return created
}

func TestCreateShare_Defaults(t *testing.T) {
	f := newShareFixture(t)

	created := f.create(t, models.CreateShareRequest{
		Payload: "ciphertext", Type: models.SharePassword,
	})

	assert.Equal(t, 1, created.MaxViews)
	assert.Equal(t, f.now.Add(time.Hour), created.ExpiresAt)
	// capability id: long, URL-safe, unguessable
	assert.GreaterOrEqual(t, len(created.ShareID), 43)
	assert.NotContains(t, created.ShareID, "+")
	assert.NotContains(t, created.ShareID, "/")
}

func TestCreateShare_Validation(t *testing.T) {
	f := newShareFixture(t)

	cases := []models.CreateShareRequest{
		{Payload: "", Type: models.SharePassword},
		{Payload: "x", Type: "certificate"},
		{Payload: "x", Type: models.ShareNote, MaxViews: -1},
		{Payload: "x", Type: models.ShareNote, MaxViews: 1000},
		{Payload: "x", Type: models.ShareNote, TTLSeconds: -5},
		{Payload: "x", Type: models.ShareNote, TTLSeconds: int64((8 * 24 * time.Hour).Seconds())},
		{Payload: strings.Repeat("a", 64*1024+1), Type: models.ShareNote},
	}
	for _, req := range cases {
		_, err := f.svc.CreateShare(context.Background(), req, "acc-1", testClient)
		assert.ErrorIs(t, err, ErrInvalidPayload, "req: %+v", req)
	}
}

func TestPeekShare_DoesNotConsume(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	created := f.create(t, models.CreateShareRequest{
		Payload: "ciphertext", Type: models.ShareNote, MaxViews: 2,
	})

	for i := 0; i < 5; i++ {
		meta, err := f.svc.PeekShare(ctx, created.ShareID)
		require.NoError(t, err)
		assert.Equal(t, 2, meta.ViewsLeft)
	}
}

func TestRedeemShare_BurnsExactlyBudget(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	created := f.create(t, models.CreateShareRequest{
		Payload: "ciphertext", Type: models.SharePassword, MaxViews: 2,
	})

	for i := 0; i < 2; i++ {
		redeemed, err := f.svc.RedeemShare(ctx, created.ShareID, testClient)
		require.NoError(t, err)
		assert.Equal(t, "ciphertext", redeemed.Payload)
		assert.Equal(t, models.SharePassword, redeemed.Type)
	}

	_, err := f.svc.RedeemShare(ctx, created.ShareID, testClient)
	assert.ErrorIs(t, err, ErrShareUnavailable)

	// exhausted share still peeks, reporting the spent budget
	meta, err := f.svc.PeekShare(ctx, created.ShareID)
	require.NoError(t, err)
	assert.Equal(t, 0, meta.ViewsLeft)
	assert.Equal(t, 2, meta.MaxViews)

	actions := f.emitter.actions()
	assert.Contains(t, actions, models.AuditShareRedeemed)
	assert.Contains(t, actions, models.AuditShareDenied)
}

func TestRedeemShare_LazyExpiry(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	created := f.create(t, models.CreateShareRequest{
		Payload: "ciphertext", Type: models.ShareNote, TTLSeconds: 60,
	})

	f.now = f.now.Add(2 * time.Minute)

	_, err := f.svc.RedeemShare(ctx, created.ShareID, testClient)
	assert.ErrorIs(t, err, ErrShareUnavailable)

	// metadata stays readable; the past expiry is visible in it
	meta, err := f.svc.PeekShare(ctx, created.ShareID)
	require.NoError(t, err)
	assert.True(t, meta.ExpiresAt.Before(f.now))
	assert.Equal(t, 1, meta.ViewsLeft)
}

func TestRedeemShare_UnknownID(t *testing.T) {
	f := newShareFixture(t)

	_, err := f.svc.RedeemShare(context.Background(), "no-such-share", testClient)
	assert.ErrorIs(t, err, ErrShareNotFound)

	_, err = f.svc.PeekShare(context.Background(), "no-such-share")
	assert.ErrorIs(t, err, ErrShareNotFound)
}
