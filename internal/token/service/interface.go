// Package service implements arbitrary-base random token generation: entropy
// sourcing, byte-to-digit base conversion and fixed-width rendering.
package service

import "github.com/allisson/randtoken/internal/token/domain"

// TokenGenerator defines the interface for token generation.
type TokenGenerator interface {
	Generate() (string, error)
	Validate(token string) error
	Config() domain.Config
}

// EntropySource supplies uniformly random bytes. Fill is always called with a buffer
// whose length is a multiple of 16 and must fill it completely or return an error.
type EntropySource interface {
	Fill(buf []byte) error
}

// TokenHasher derives a storable one-way digest of a token and checks tokens against it.
type TokenHasher interface {
	Hash(token string) (string, error)
	Verify(token, hash string) bool
}
