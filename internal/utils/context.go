// Package utils provides small helpers shared across the application:
// type-safe context keys, JWT generation and validation, label hashing, and
// HMAC signing primitives used by the local attestation scheme.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type prevents
// collisions with other packages using string-based keys.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authenticated account identifier
// is stored in the request context by the auth middleware.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated account identifier from
// ctx. ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
