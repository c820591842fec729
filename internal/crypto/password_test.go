package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NotEqual(t, "correct horse battery staple", hash, "hash must not be the plaintext")
	assert.True(t, h.Verify("correct horse battery staple", hash))
	assert.False(t, h.Verify("wrong password", hash))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must differ")
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestBcryptHasher_VerifyMalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("whatever", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("whatever", ""))
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	h := NewBcryptHasher(100)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	h = NewBcryptHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
