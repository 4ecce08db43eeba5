// Package usecase orchestrates token generation for the HTTP API and the CLI: it
// resolves request parameters, enforces service limits, caches generators and fans
// batch generation out over a bounded worker group.
package usecase

import (
	"context"

	"github.com/allisson/randtoken/internal/token/domain"
)

// GenerateParams are the loosely typed inputs of a generation request. BitSize and
// Alphabet accept whatever domain.ParseConfig accepts; nil selects the configured
// default. Preset names a built-in alphabet and cannot be combined with Alphabet.
type GenerateParams struct {
	BitSize  any
	Alphabet any
	Preset   string
	Hash     bool
}

// TokenUseCase defines token generation operations.
type TokenUseCase interface {
	// Generate draws a single token. When params.Hash is set the token carries its
	// Argon2id digest.
	Generate(ctx context.Context, params GenerateParams) (*domain.Token, error)

	// GenerateBatch draws count tokens from the same generator. The first failure
	// cancels the remaining work and no partial batch is returned.
	GenerateBatch(ctx context.Context, params GenerateParams, count int) (*domain.Batch, error)

	// Describe validates params and returns the derived configuration without
	// consuming entropy.
	Describe(ctx context.Context, params GenerateParams) (*domain.Config, error)

	// Validate reports whether token has the shape of a token produced with params.
	// Invalid params are returned as errors, a malformed token is not.
	Validate(ctx context.Context, token string, params GenerateParams) (bool, error)

	// Verify reports whether token matches a digest previously returned by Generate.
	Verify(ctx context.Context, token, hash string) bool

	// Presets lists the built-in alphabets.
	Presets(ctx context.Context) []domain.Preset
}
