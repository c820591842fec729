package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields or carries malformed values (e.g. an unparseable email).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthenticationFailed is the single error for every login failure.
	// It deliberately does not distinguish an unknown email, a wrong
	// password or a locked account; the cause is logged server-side only.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrWeakPassword is returned when the password does not reach the
	// configured entropy minimum.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrNicknameExhausted is returned when nickname auto-generation keeps
	// colliding after the bounded number of retries.
	ErrNicknameExhausted = errors.New("could not generate a unique nickname")

	// ErrTokenCreationFailed wraps JWT signing failures.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the normalised result of any token
	// validation failure (expired, wrong issuer, malformed, bad signature).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
