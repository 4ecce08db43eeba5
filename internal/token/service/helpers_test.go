package service

import (
	"math/big"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allisson/randtoken/internal/token/domain"
)

// fixedSource fills every buffer with a copy of data.
type fixedSource struct {
	data  []byte
	calls atomic.Int32
}

func (s *fixedSource) Fill(buf []byte) error {
	s.calls.Add(1)
	copy(buf, s.data)
	return nil
}

// failingSource always returns err.
type failingSource struct {
	err error
}

func (s *failingSource) Fill(buf []byte) error {
	return s.err
}

// decodeToken maps each character back to its alphabet index, accumulates the digits
// as a big-endian base-ary number and returns it as byteLength big-endian bytes.
func decodeToken(t *testing.T, token string, cfg *domain.Config) []byte {
	t.Helper()

	value := new(big.Int)
	base := big.NewInt(int64(cfg.Base))
	for _, c := range token {
		idx := slices.Index(cfg.Symbols, c)
		require.GreaterOrEqual(t, idx, 0, "character %q not in alphabet", c)
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(idx)))
	}

	require.LessOrEqual(t, value.BitLen(), cfg.BitSize, "decoded value exceeds bit size")
	return value.FillBytes(make([]byte, cfg.ByteLength))
}

func mustConfig(t *testing.T, bitSize int, alphabet string) *domain.Config {
	t.Helper()
	cfg, err := domain.NewConfig(bitSize, alphabet)
	require.NoError(t, err)
	return cfg
}
