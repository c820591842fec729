package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of authorization levels an account can hold.
// Roles gate privileged operations such as listing accounts or upgrading
// another account's professional status.
type Role string

const (
	// RoleAnonymous marks an unauthenticated caller. It is never persisted
	// on a registered account; it exists so authorization checks have a
	// well-defined zero state.
	RoleAnonymous Role = "ANONYMOUS"

	// RoleAuthenticated is the default role for every registered account
	// except the very first one.
	RoleAuthenticated Role = "AUTHENTICATED"

	// RoleManager can upgrade other accounts to professional status.
	RoleManager Role = "MANAGER"

	// RoleAdmin has the full privilege set: manager powers plus the admin
	// account operations (list, unlock, reset password).
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether the role is one of the predefined values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanUpgradeOthers reports whether an account with this role may flip
// another account's professional status.
func (r Role) CanUpgradeOthers() bool {
	return r == RoleManager || r == RoleAdmin
}

// Account represents a registered user entity with credentials, role and
// profile data. Sensitive fields must never be exposed outside trusted
// boundaries.
type Account struct {
	// ID is the immutable unique identifier assigned at creation.
	ID uuid.UUID `json:"id"`

	// Email is the unique login identifier. Stored lowercased; comparisons
	// are case-insensitive.
	Email string `json:"email"`

	// Nickname is the unique human-readable handle. Auto-generated at
	// registration when the caller did not supply one.
	Nickname string `json:"nickname"`

	// HashedPassword is the bcrypt hash of the account password.
	// Never serialized and never stored in plaintext form.
	HashedPassword string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// EmailVerified is set to true exactly once, by successful
	// verification-token consumption.
	EmailVerified bool `json:"email_verified"`

	// VerificationToken is present if and only if the email has not been
	// verified yet. Cleared atomically on successful verification.
	// Never serialized: it is delivered to the owner by email only.
	VerificationToken *string `json:"-"`

	// FailedLoginAttempts counts consecutive bad-password logins.
	// Reset to zero on a successful login, an explicit unlock, or a
	// password reset.
	FailedLoginAttempts int `json:"-"`

	// IsLocked denies login regardless of password correctness.
	// Set when FailedLoginAttempts crosses the configured threshold.
	IsLocked bool `json:"is_locked"`

	// IsProfessional marks accounts upgraded via the privileged path.
	IsProfessional bool `json:"is_professional"`

	// ProfessionalStatusUpdatedAt records when IsProfessional last changed.
	ProfessionalStatusUpdatedAt *time.Time `json:"professional_status_updated_at,omitempty"`

	// Self-editable profile fields. All independently optional.
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	LinkedinURL       *string `json:"linkedin_profile_url,omitempty"`
	GithubURL         *string `json:"github_profile_url,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	// Used for stable list ordering and auditing.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// DisplayName returns the best human-readable name for outbound
// notifications: the first name when present, otherwise the nickname.
func (a Account) DisplayName() string {
	if a.FirstName != nil && *a.FirstName != "" {
		return *a.FirstName
	}
	return a.Nickname
}
