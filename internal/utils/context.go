// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, JWT token generation and validation,
// identifier generation, and other common operations.
package utils

import (
	"context"

	"github.com/google/uuid"
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

// AccountIDCtxKey is the key used to store the authenticated account
// identifier in the context. Used together with GetAccountIDFromContext
// for type-safe retrieval of the account ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, accountID)
var AccountIDCtxKey = contextKey("accountID")

// RoleCtxKey is the key used to store the authenticated account's role
// in the context, set by the authentication middleware alongside
// AccountIDCtxKey.
var RoleCtxKey = contextKey("accountRole")

// GetAccountIDFromContext retrieves the account identifier from the context.
//
// Returns the account ID as a uuid.UUID and an ok flag:
//   - ok == true  — value is found and has the correct uuid.UUID type
//   - ok == false — value is missing or has an unexpected type
func GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(uuid.UUID)
	return accountID, ok
}

// GetRoleFromContext retrieves the caller's role string from the context.
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok
}
