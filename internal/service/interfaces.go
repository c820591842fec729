package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/savelyev-an/accountd/internal/notify"
	"github.com/savelyev-an/accountd/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AccountService owns the account lifecycle: registration, authentication
// with lockout, email verification, token issuance and the administrative
// operations (list, unlock, password reset, delete).
//
// Expected denials (wrong verification token, unknown account on an admin
// operation) are reported as boolean results; errors are reserved for
// invalid input and infrastructure faults.
type AccountService interface {
	// Register creates an account from the request. The caller-supplied
	// role is ignored: the first registrant becomes ADMIN, everyone else
	// AUTHENTICATED.
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)

	// Authenticate verifies the credentials and applies the lockout policy.
	// Wrong email and wrong password are indistinguishable to the caller.
	Authenticate(ctx context.Context, email, password string) (models.Account, error)

	// CreateToken issues a signed JWT for the account.
	CreateToken(ctx context.Context, account models.Account) (models.Token, error)

	// ParseToken validates a raw JWT string and resolves its account ID.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// VerifyEmail consumes the verification token. Returns false when the
	// token does not match or the email is already verified.
	VerifyEmail(ctx context.Context, accountID uuid.UUID, token string) (bool, error)

	// ResetPassword replaces the account password with a new one chosen by
	// an administrator. Returns false when the account does not exist.
	ResetPassword(ctx context.Context, accountID uuid.UUID, newPassword string) (bool, error)

	// Unlock clears the lockout state. Returns false when the account does
	// not exist.
	Unlock(ctx context.Context, accountID uuid.UUID) (bool, error)

	// Delete removes the account. Returns false when it does not exist.
	Delete(ctx context.Context, accountID uuid.UUID) (bool, error)

	GetByID(ctx context.Context, accountID uuid.UUID) (models.Account, error)

	// List returns one page of accounts plus the total count.
	List(ctx context.Context, skip, limit uint64) ([]models.Account, int64, error)
}

// ProfileService owns the self-service profile edits and the role-gated
// professional upgrade.
type ProfileService interface {
	// UpdateProfile applies the patch to the caller's own profile fields.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, patch models.ProfilePatch) (models.Account, error)

	// UpgradeProfessionalStatus marks the target account professional.
	// The allowed result is false when the actor's role does not permit
	// upgrading others or when the target does not exist; both are
	// denials, not errors.
	UpgradeProfessionalStatus(ctx context.Context, actorRole models.Role, targetID uuid.UUID) (account models.Account, allowed bool, err error)
}

// NotificationEnqueuer hands a notification to the asynchronous dispatch
// worker. A false result means the message was dropped; account operations
// proceed regardless.
type NotificationEnqueuer interface {
	Enqueue(msg notify.Message) bool
}
