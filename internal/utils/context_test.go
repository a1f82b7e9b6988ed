// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestGetAccountIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "acc-1")

	accountID, ok := GetAccountIDFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if accountID != "acc-1" {
		t.Errorf("expected accountID='acc-1', got %s", accountID)
	}
}

func TestGetAccountIDFromContext_Missing(t *testing.T) {
	if _, ok := GetAccountIDFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestGetAccountIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, int64(42))

	if _, ok := GetAccountIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetAccountIDFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), AccountIDCtxKey, "")

	if _, ok := GetAccountIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestGetRoleFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), RoleCtxKey, "admin")

	role, ok := GetRoleFromContext(ctx)
	if !ok || role != "admin" {
		t.Errorf("expected role='admin' ok=true, got role=%q ok=%v", role, ok)
	}
}

func TestGetSessionIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), SessionIDCtxKey, "sess-1")

	sessionID, ok := GetSessionIDFromContext(ctx)
	if !ok || sessionID != "sess-1" {
		t.Errorf("expected sessionID='sess-1' ok=true, got sessionID=%q ok=%v", sessionID, ok)
	}
}
