package models

// RegisterRequest is the inbound payload for account registration.
//
// Role is accepted for schema compatibility but never honored: the server
// decides the role (first registrant becomes ADMIN, everyone else
// AUTHENTICATED). Privilege cannot be self-granted at registration.
type RegisterRequest struct {
	// Email is the unique login identifier. Required.
	Email string `json:"email"`

	// Password is the plaintext password. Required; hashed before storage
	// and never persisted or logged as-is.
	Password string `json:"password"`

	// Nickname is an optional handle. Generated server-side when empty.
	Nickname string `json:"nickname,omitempty"`

	// Role is ignored (see type comment). Kept so that clients sending it
	// do not fail decoding.
	Role Role `json:"role,omitempty"`

	// Optional profile fields accepted at registration time.
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	LinkedinURL       *string `json:"linkedin_profile_url,omitempty"`
	GithubURL         *string `json:"github_profile_url,omitempty"`
}

// LoginRequest is the inbound payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest is the inbound payload for the admin password-reset
// operation.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ProfilePatch enumerates the self-editable profile fields.
//
// Only the six fields below can ever be patched: role, credentials and
// lifecycle flags are not reachable through this structure. A nil field
// means "leave unchanged"; at least one field must be non-nil.
type ProfilePatch struct {
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	LinkedinURL       *string `json:"linkedin_profile_url,omitempty"`
	GithubURL         *string `json:"github_profile_url,omitempty"`
}

// IsEmpty reports whether the patch carries no changes at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.FirstName == nil &&
		p.LastName == nil &&
		p.Bio == nil &&
		p.ProfilePictureURL == nil &&
		p.LinkedinURL == nil &&
		p.GithubURL == nil
}
