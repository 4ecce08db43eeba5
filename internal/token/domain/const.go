// Package domain defines the core random-token domain model: alphabet presets, the
// immutable generator configuration and the errors raised while building it.
package domain

import (
	"unicode/utf8"

	apperrors "github.com/allisson/randtoken/internal/errors"
)

// Named alphabets. Order is significant: the character at index 0 is the zero-digit
// used for leading padding.
const (
	Base16 = "0123456789abcdef"
	Base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Base58 = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	Base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	Base66 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-._~"
	Base71 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz!'()*-._~"
)

// Generator defaults.
const (
	// DefaultBitSize is the entropy used when no bit size is given.
	DefaultBitSize = 128

	// DefaultAlphabet is the alphabet used when no alphabet is given.
	DefaultAlphabet = Base58

	// BlockBits is the granularity of the entropy source. Bit sizes must be a
	// multiple of it so entropy is always drawn in whole blocks.
	BlockBits = 128

	// BlockSize is BlockBits expressed in bytes.
	BlockSize = BlockBits / 8

	// MaxBitSize bounds a single token's entropy (128 KiB of random bytes).
	MaxBitSize = 1 << 20

	// MaxAlphabetLength bounds the number of characters in an alphabet.
	MaxAlphabetLength = 1 << 16
)

// Preset is a named alphabet.
type Preset struct {
	Name     string
	Alphabet string
}

// Base returns the radix of the preset alphabet.
func (p Preset) Base() int {
	return utf8.RuneCountInString(p.Alphabet)
}

var presets = []Preset{
	{Name: "base16", Alphabet: Base16},
	{Name: "base36", Alphabet: Base36},
	{Name: "base58", Alphabet: Base58},
	{Name: "base62", Alphabet: Base62},
	{Name: "base66", Alphabet: Base66},
	{Name: "base71", Alphabet: Base71},
}

// Presets returns the named alphabets ordered by base.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset returns the alphabet registered under name.
func LookupPreset(name string) (string, error) {
	for _, p := range presets {
		if p.Name == name {
			return p.Alphabet, nil
		}
	}
	return "", apperrors.Wrapf(ErrPresetNotFound, "preset %q", name)
}

// ResolveAlphabet maps a preset name to its alphabet. Any other value is returned
// unchanged and treated as a literal alphabet.
func ResolveAlphabet(nameOrAlphabet string) string {
	if alphabet, err := LookupPreset(nameOrAlphabet); err == nil {
		return alphabet
	}
	return nameOrAlphabet
}
