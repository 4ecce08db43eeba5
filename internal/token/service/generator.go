package service

import (
	"unicode/utf8"

	"github.com/allisson/randtoken/internal/errors"
	"github.com/allisson/randtoken/internal/token/domain"
)

// Generator produces random tokens for one immutable Config. It holds no mutable
// state, so Generate may be called concurrently as long as the EntropySource allows it.
type Generator struct {
	cfg     domain.Config
	source  EntropySource
	members map[rune]struct{}
}

// NewGenerator creates a generator for cfg. A nil source selects NewCryptoSource(nil).
// The Config is copied, so later changes to cfg do not affect the generator.
func NewGenerator(cfg *domain.Config, source EntropySource) *Generator {
	if source == nil {
		source = NewCryptoSource(nil)
	}

	g := &Generator{
		cfg:     *cfg,
		source:  source,
		members: make(map[rune]struct{}, len(cfg.Symbols)),
	}
	for _, r := range cfg.Symbols {
		g.members[r] = struct{}{}
	}

	return g
}

// BitSize returns the entropy drawn per token.
func (g *Generator) BitSize() int { return g.cfg.BitSize }

// Alphabet returns the digit alphabet.
func (g *Generator) Alphabet() string { return g.cfg.Alphabet }

// Base returns the radix, the number of characters in Alphabet().
func (g *Generator) Base() int { return g.cfg.Base }

// TokenLength returns the fixed length of every generated token.
func (g *Generator) TokenLength() int { return g.cfg.TokenLength }

// Config returns a copy of the generator configuration.
func (g *Generator) Config() domain.Config { return g.cfg }

// Generate draws ByteLength bytes from the entropy source and renders them as a
// TokenLength-character string over the alphabet. The only possible error is the
// entropy source's own, returned unmodified.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.cfg.ByteLength)
	if err := g.source.Fill(buf); err != nil {
		return "", err
	}
	return g.encode(buf), nil
}

// Validate reports whether token has the shape this generator produces: exactly
// TokenLength characters, all taken from the alphabet.
func (g *Generator) Validate(token string) error {
	if !utf8.ValidString(token) {
		return errors.Wrap(domain.ErrInvalidToken, "token is not valid UTF-8")
	}

	if n := utf8.RuneCountInString(token); n != g.cfg.TokenLength {
		return errors.Wrapf(domain.ErrInvalidToken, "expected %d characters, got %d", g.cfg.TokenLength, n)
	}

	i := 0
	for _, r := range token {
		if _, ok := g.members[r]; !ok {
			return errors.Wrapf(domain.ErrInvalidToken, "character %q at index %d is not in the alphabet", r, i)
		}
		i++
	}

	return nil
}

func (g *Generator) encode(buf []byte) string {
	if g.cfg.IsHex() {
		return formatHex(buf)
	}

	digits := toDigits(buf, g.cfg.Base, make([]int, 0, g.cfg.TokenLength))
	return formatDigits(digits, g.cfg.Symbols, g.cfg.TokenLength)
}
