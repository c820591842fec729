package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes account passwords for storage and verifies login
// attempts against the stored hash. It knows nothing about accounts or
// persistence.
//
// Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// Hash derives a one-way hash from a plaintext password. The returned
	// string is self-describing and safe to persist as-is.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the stored
	// hash. A malformed or truncated hash verifies as false, never as an
	// error: callers treat any mismatch as a failed login.
	Verify(password, hash string) bool
}
