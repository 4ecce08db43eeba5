package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/randtoken/internal/errors"
)

type argon2idHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewTokenHasher creates an Argon2id TokenHasher using the interactive policy, which
// keeps batch hashing affordable for high-entropy tokens.
func NewTokenHasher() (TokenHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create token hasher")
	}
	return &argon2idHasher{hasher: hasher}, nil
}

// Hash returns the encoded Argon2id digest of token.
func (a *argon2idHasher) Hash(token string) (string, error) {
	hash, err := a.hasher.Hash([]byte(token))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return hash, nil
}

// Verify compares token against an encoded digest in constant time. Malformed digests
// never match.
func (a *argon2idHasher) Verify(token, hash string) bool {
	ok, err := a.hasher.Verify([]byte(token), hash)
	if err != nil {
		return false
	}
	return ok
}
