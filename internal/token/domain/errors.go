package domain

import (
	"github.com/allisson/randtoken/internal/errors"
)

var (
	// ErrInvalidBitSize indicates the bit size is not a non-negative integer multiple of 128.
	ErrInvalidBitSize = errors.Wrap(
		errors.ErrInvalidInput,
		"bit size must be a non-negative integer that is a multiple of 128",
	)

	// ErrInvalidAlphabet indicates the alphabet is not a usable character sequence.
	ErrInvalidAlphabet = errors.Wrap(
		errors.ErrInvalidInput,
		"alphabet must be a string of at least two distinct characters",
	)

	// ErrDuplicateAlphabetChar indicates the alphabet repeats a character, which would make
	// tokens ambiguous.
	ErrDuplicateAlphabetChar = errors.Wrap(ErrInvalidAlphabet, "alphabet characters must be unique")

	// ErrPresetNotFound indicates no preset is registered under the requested name.
	ErrPresetNotFound = errors.Wrap(errors.ErrNotFound, "alphabet preset not found")

	// ErrEntropySource indicates the randomness source failed to produce bytes.
	ErrEntropySource = errors.Wrap(errors.ErrUnavailable, "entropy source failure")

	// ErrInvalidCount indicates the number of requested tokens is out of range.
	ErrInvalidCount = errors.Wrap(errors.ErrInvalidInput, "invalid token count")

	// ErrInvalidToken indicates a token does not have the shape produced by a generator.
	ErrInvalidToken = errors.Wrap(errors.ErrInvalidInput, "invalid token")
)
