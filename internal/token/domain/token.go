package domain

import "time"

// Token is a freshly generated random token. Hash is only set when the caller asked for
// an Argon2id digest to persist on their side; the plain value is never stored here.
type Token struct {
	Value     string
	Hash      *string
	BitSize   int
	Base      int
	CreatedAt time.Time
}

// HasHash reports whether a digest was computed for the token.
func (t *Token) HasHash() bool {
	return t.Hash != nil && *t.Hash != ""
}

// Batch is a set of tokens drawn from one generator, in generation order.
type Batch struct {
	Config Config
	Tokens []*Token
}
