// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, JWT issuance
// and validation, HTTP response writing, and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey stores the authenticated account identifier.
var AccountIDCtxKey = contextKey("accountID")

// RoleCtxKey stores the authenticated account's role.
var RoleCtxKey = contextKey("role")

// SessionIDCtxKey stores the validated session identifier.
var SessionIDCtxKey = contextKey("sessionID")

// GetAccountIDFromContext retrieves the account identifier placed in the
// context by the authentication middleware.
func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(string)
	return accountID, ok && accountID != ""
}

// GetRoleFromContext retrieves the account role placed in the context by the
// authentication middleware.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok && role != ""
}

// GetSessionIDFromContext retrieves the session identifier placed in the
// context by the authentication middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok && sessionID != ""
}
