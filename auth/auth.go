// Package auth holds the credential primitives: password hashing and
// access token generation.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AccessTokenBytes is the amount of randomness behind every access token.
// Tokens are hex encoded, so they are twice as long.
const AccessTokenBytes = 128

// PasswordHasher hashes passwords and checks candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches hash.
	Compare(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt is generated
// per hash and stored inside the encoded result.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher returns a hasher using cost, falling back to
// bcrypt.DefaultCost when cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost returns the work factor in use.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt encoding of password. Passwords longer than 72
// bytes fail with bcrypt.ErrPasswordTooLong.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash.
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewAccessToken returns a fresh random access token of
// 2*AccessTokenBytes hex characters.
func NewAccessToken() (string, error) {
	buf := make([]byte, AccessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
