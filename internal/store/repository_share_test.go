package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/models"
)

func newTestShareRepo(t *testing.T) (*shareRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &shareRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func shareColumns() []string {
	return []string{"share_id", "payload", "type", "expires_at", "views_left", "max_views", "created_at"}
}

func TestRedeemShare_Success(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	expires := now.Add(time.Hour)

	rows := sqlmock.NewRows(shareColumns()).
		AddRow("share-1", "ciphertext", "password", expires, 0, 1, now.Add(-time.Minute))

	mock.ExpectQuery("UPDATE shares SET views_left").
		WithArgs("share-1", now).
		WillReturnRows(rows)

	share, err := repo.RedeemShare(ctx, "share-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if share.Payload != "ciphertext" {
		t.Errorf("expected payload to be returned, got %q", share.Payload)
	}
	if share.ViewsLeft != 0 {
		t.Errorf("expected post-decrement ViewsLeft=0, got %d", share.ViewsLeft)
	}
}

func TestRedeemShare_Exhausted(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	// guarded update matches nothing, probe says the row exists
	mock.ExpectQuery("UPDATE shares SET views_left").
		WithArgs("share-1", now).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("share-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.RedeemShare(ctx, "share-1", now)
	if !errors.Is(err, ErrShareNotRedeemable) {
		t.Fatalf("expected ErrShareNotRedeemable, got %v", err)
	}
}

func TestRedeemShare_UnknownID(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery("UPDATE shares SET views_left").
		WithArgs("nope", now).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.RedeemShare(ctx, "nope", now)
	if !errors.Is(err, ErrShareNotFound) {
		t.Fatalf("expected ErrShareNotFound, got %v", err)
	}
}

func TestGetShare_DoesNotTouchBudget(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(shareColumns()).
		AddRow("share-1", "ciphertext", "note", now.Add(time.Hour), 3, 5, now)

	mock.ExpectQuery("SELECT (.+) FROM shares").
		WithArgs("share-1").
		WillReturnRows(rows)

	share, err := repo.GetShare(ctx, "share-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if share.ViewsLeft != 3 {
		t.Errorf("metadata read must not decrement, got ViewsLeft=%d", share.ViewsLeft)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateShare_Success(t *testing.T) {
	repo, mock, db := newTestShareRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	share := models.PublicShare{
		ShareID:   "share-1",
		Payload:   "ciphertext",
		Type:      models.SharePassword,
		ExpiresAt: now.Add(time.Hour),
		ViewsLeft: 1,
		MaxViews:  1,
	}

	rows := sqlmock.NewRows(shareColumns()).
		AddRow(share.ShareID, share.Payload, share.Type, share.ExpiresAt, share.ViewsLeft, share.MaxViews, now)

	mock.ExpectQuery("INSERT INTO shares").
		WithArgs(share.ShareID, share.Payload, share.Type, share.ExpiresAt, share.ViewsLeft, share.MaxViews).
		WillReturnRows(rows)

	created, err := repo.CreateShare(ctx, share)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned CreatedAt")
	}
}
