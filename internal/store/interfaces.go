package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/account_repository_mock.go -package=mock

// AccountRepository is the persistence boundary for account records.
//
// Lookups return [ErrAccountNotFound] when no record matches. Mutations that
// must be race-safe under concurrent logins or verifications
// (RecordFailedLogin, ConsumeVerificationToken) are implemented as single
// atomic statements; callers never need to wrap them in transactions.
type AccountRepository interface {
	// Create persists a new account and returns the canonical stored record
	// with server-assigned timestamps.
	Create(ctx context.Context, account models.Account) (models.Account, error)

	GetByID(ctx context.Context, id uuid.UUID) (models.Account, error)
	GetByEmail(ctx context.Context, email string) (models.Account, error)
	GetByNickname(ctx context.Context, nickname string) (models.Account, error)

	// Count returns the total number of registered accounts.
	Count(ctx context.Context) (int64, error)

	// List returns a page of accounts ordered by creation time, then ID.
	List(ctx context.Context, skip, limit uint64) ([]models.Account, error)

	// UpdateProfile applies the non-nil fields of the patch to the account's
	// self-editable profile columns and returns the updated record.
	UpdateProfile(ctx context.Context, id uuid.UUID, patch models.ProfilePatch) (models.Account, error)

	// SetPassword replaces the stored password hash and clears the lockout
	// state (attempt counter and lock flag).
	SetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// RecordFailedLogin atomically increments the failed-attempt counter and
	// locks the account once the counter reaches maxAttempts. Returns the
	// counter value after the increment and the resulting lock state.
	RecordFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int) (attempts int, locked bool, err error)

	// ResetLoginAttempts zeroes the failed-attempt counter after a
	// successful login.
	ResetLoginAttempts(ctx context.Context, id uuid.UUID) error

	// ConsumeVerificationToken atomically marks the email as verified and
	// clears the stored token, but only if the supplied token matches and
	// the email is not verified yet. Returns true when the row was updated.
	ConsumeVerificationToken(ctx context.Context, id uuid.UUID, token string) (bool, error)

	// Unlock clears the lock flag and the failed-attempt counter.
	Unlock(ctx context.Context, id uuid.UUID) error

	// SetProfessionalStatus flips the professional flag and stamps the time
	// of the change, returning the updated record.
	SetProfessionalStatus(ctx context.Context, id uuid.UUID, isProfessional bool) (models.Account, error)

	// Delete removes the account record.
	Delete(ctx context.Context, id uuid.UUID) error
}
