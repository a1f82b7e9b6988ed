package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/pass-guard/internal/crypto"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/store"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

// Share policy bounds. Values outside them are rejected rather than clamped,
// so a client bug surfaces instead of silently publishing with a different
// policy than intended.
const (
	defaultShareTTL  = time.Hour
	maxShareTTL      = 7 * 24 * time.Hour
	defaultShareView = 1
	maxShareViews    = 100

	// maxSharePayloadBytes bounds the stored ciphertext.
	maxSharePayloadBytes = 64 * 1024
)

// shareService is the concrete implementation of ShareService. Possession of
// the share id is the only access check on the public read side; the id is
// therefore always a fresh CSPRNG capability, never derived from anything.
type shareService struct {
	shares store.ShareRepository
	audit  auditEmitter
	ids    *utils.UUIDGenerator

	clock func() time.Time

	logger *logger.Logger
}

// NewShareService constructs a ShareService backed by the given repository.
func NewShareService(shares store.ShareRepository, auditor auditEmitter, logger *logger.Logger) ShareService {
	return &shareService{
		shares: shares,
		audit:  auditor,
		ids:    utils.NewUUIDGenerator(),
		clock:  time.Now,
		logger: logger,
	}
}

// CreateShare publishes an already-encrypted payload under a fresh
// unguessable id. Zero MaxViews/TTL fall back to single view and one hour.
func (s *shareService) CreateShare(ctx context.Context, req models.CreateShareRequest, accountID string, client models.ClientMeta) (models.ShareCreatedResponse, error) {
	log := logger.FromContext(ctx)

	if err := validateShareRequest(req); err != nil {
		return models.ShareCreatedResponse{}, err
	}

	maxViews := req.MaxViews
	if maxViews == 0 {
		maxViews = defaultShareView
	}
	ttl := time.Duration(req.TTLSeconds) * time.Second
	if ttl == 0 {
		ttl = defaultShareTTL
	}

	shareID, err := crypto.NewSecureID()
	if err != nil {
		log.Err(err).Msg("share id generation failed")
		return models.ShareCreatedResponse{}, fmt.Errorf("share id generation failed: %w", err)
	}

	share, err := s.shares.CreateShare(ctx, models.PublicShare{
		ShareID:   shareID,
		Payload:   req.Payload,
		Type:      req.Type,
		ExpiresAt: s.clock().Add(ttl),
		ViewsLeft: maxViews,
		MaxViews:  maxViews,
	})
	if err != nil {
		log.Err(err).Msg("share creation failed")
		return models.ShareCreatedResponse{}, fmt.Errorf("share creation failed: %w", err)
	}

	s.emit(accountID, models.AuditShareCreated, share.ShareID, "", client)

	return models.ShareCreatedResponse{
		ShareID:   share.ShareID,
		ExpiresAt: share.ExpiresAt,
		MaxViews:  share.MaxViews,
	}, nil
}

// PeekShare returns metadata without consuming a view. An expired or
// exhausted share still reports its metadata (ViewsLeft 0 once burned, the
// past ExpiresAt once lapsed); liveness is only enforced at redemption.
// Expiry is lazy, there is no background sweep.
func (s *shareService) PeekShare(ctx context.Context, shareID string) (models.ShareMetadataResponse, error) {
	log := logger.FromContext(ctx)

	if shareID == "" {
		return models.ShareMetadataResponse{}, ErrShareNotFound
	}

	share, err := s.shares.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, store.ErrShareNotFound) {
			return models.ShareMetadataResponse{}, ErrShareNotFound
		}
		log.Err(err).Msg("share lookup failed")
		return models.ShareMetadataResponse{}, fmt.Errorf("share lookup failed: %w", err)
	}

	return models.ShareMetadataResponse{
		Type:      share.Type,
		CreatedAt: share.CreatedAt,
		ExpiresAt: share.ExpiresAt,
		ViewsLeft: share.ViewsLeft,
		MaxViews:  share.MaxViews,
	}, nil
}

// RedeemShare consumes one view and returns the payload. The decision is
// made entirely by the storage layer's conditional decrement, so concurrent
// redemptions can never exceed the view budget; this method only translates
// the outcome and audits it.
func (s *shareService) RedeemShare(ctx context.Context, shareID string, client models.ClientMeta) (models.ShareRedeemedResponse, error) {
	log := logger.FromContext(ctx)

	if shareID == "" {
		return models.ShareRedeemedResponse{}, ErrShareNotFound
	}

	share, err := s.shares.RedeemShare(ctx, shareID, s.clock())
	switch {
	case errors.Is(err, store.ErrShareNotFound):
		s.emit("", models.AuditShareDenied, shareID, "unknown share id", client)
		return models.ShareRedeemedResponse{}, ErrShareNotFound
	case errors.Is(err, store.ErrShareNotRedeemable):
		s.emit("", models.AuditShareDenied, shareID, "expired or exhausted", client)
		return models.ShareRedeemedResponse{}, ErrShareUnavailable
	case err != nil:
		log.Err(err).Msg("share redemption failed")
		return models.ShareRedeemedResponse{}, fmt.Errorf("share redemption failed: %w", err)
	}

	s.emit("", models.AuditShareRedeemed, share.ShareID, fmt.Sprintf("views left: %d", share.ViewsLeft), client)

	return models.ShareRedeemedResponse{Payload: share.Payload, Type: share.Type}, nil
}

func (s *shareService) emit(accountID string, action models.AuditAction, shareID, details string, client models.ClientMeta) {
	event := models.AuditEvent{
		EventID:    s.ids.Generate(),
		Action:     action,
		EntityType: models.EntityShare,
		EntityID:   shareID,
		Details:    details,
		Client:     client,
		CreatedAt:  s.clock(),
	}
	if accountID != "" {
		event.AccountID = &accountID
	}

	s.audit.Emit(event)
}

func validateShareRequest(req models.CreateShareRequest) error {
	if req.Payload == "" || len(req.Payload) > maxSharePayloadBytes {
		return ErrInvalidPayload
	}
	if req.Type != models.SharePassword && req.Type != models.ShareNote {
		return ErrInvalidPayload
	}
	if req.MaxViews < 0 || req.MaxViews > maxShareViews {
		return ErrInvalidPayload
	}
	if req.TTLSeconds < 0 || time.Duration(req.TTLSeconds)*time.Second > maxShareTTL {
		return ErrInvalidPayload
	}
	return nil
}
