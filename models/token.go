package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// AccountID is a cached, parsed copy of the "sub" (subject) claim converted
// to a UUID. It is populated during token construction or parsing and avoids
// repeated string-to-UUID conversion.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	// Excluded from JSON serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`

	// AccountID is the owner identifier extracted from the "sub" claim.
	// Excluded from JSON serialization; it is an internal server-side cache.
	AccountID uuid.UUID `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim and parses it as a UUID.
//
// Returns an error if the subject claim is missing, empty, or is not a
// well-formed UUID.
func (t *Token) GetAccountID() (uuid.UUID, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("error extracting account ID from token: %w", err)
	}

	accountID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error converting token subject to UUID: %w", err)
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
