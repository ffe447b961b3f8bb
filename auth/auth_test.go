package auth

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Compare(hash, "correct horse"))
	assert.False(t, h.Compare(hash, "wrong horse"))

	// Each hash carries its own salt.
	again, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestBcryptHasherCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).Cost())
}

func TestBcryptHasherRejectsLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestBcryptHasherCompareGarbage(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	assert.False(t, h.Compare("not-a-hash", "password"))
}

func TestNewAccessToken(t *testing.T) {
	token, err := NewAccessToken()
	require.NoError(t, err)
	assert.Len(t, token, 2*AccessTokenBytes)

	raw, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, AccessTokenBytes)

	other, err := NewAccessToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
