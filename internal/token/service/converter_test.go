package service

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDigits(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		base     int
		expected []int
	}{
		{name: "Empty", buf: nil, base: 10, expected: []int{0}},
		{name: "AllZero", buf: []byte{0, 0, 0, 0}, base: 58, expected: []int{0}},
		{name: "One", buf: []byte{0, 0, 0, 1}, base: 58, expected: []int{1}},
		{name: "Decimal255", buf: []byte{0xff}, base: 10, expected: []int{5, 5, 2}},
		{name: "Decimal256", buf: []byte{0x01, 0x00}, base: 10, expected: []int{6, 5, 2}},
		{name: "Binary5", buf: []byte{0x05}, base: 2, expected: []int{1, 0, 1}},
		{name: "Base256Identity", buf: []byte{0x12, 0x34}, base: 256, expected: []int{0x34, 0x12}},
		{name: "Base58_57", buf: []byte{57}, base: 58, expected: []int{57}},
		{name: "Base58_58", buf: []byte{58}, base: 58, expected: []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toDigits(tt.buf, tt.base, nil))
		})
	}
}

func TestToDigits_MatchesBigInt(t *testing.T) {
	buf := []byte{
		0xde, 0xad, 0xbe, 0xef, 0x00, 0x01, 0x02, 0x03,
		0xfe, 0xdc, 0xba, 0x98, 0x76, 0x54, 0x32, 0x10,
	}
	value := new(big.Int).SetBytes(buf)

	for _, base := range []int{2, 3, 10, 16, 36, 58, 62, 66, 71, 255, 256} {
		digits := toDigits(buf, base, nil)

		expected := new(big.Int)
		b := big.NewInt(int64(base))
		for i := len(digits) - 1; i >= 0; i-- {
			assert.Less(t, digits[i], base)
			expected.Mul(expected, b)
			expected.Add(expected, big.NewInt(int64(digits[i])))
		}

		assert.Equal(t, 0, value.Cmp(expected), "base %d", base)
		assert.NotZero(t, digits[len(digits)-1], "base %d has a leading zero digit", base)
	}
}

func TestToDigits_ReusesCapacity(t *testing.T) {
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xff
	}

	scratch := make([]int, 0, 22)
	digits := toDigits(buf, 58, scratch)

	assert.Len(t, digits, 22)
	assert.Equal(t, 22, cap(digits), "digit buffer grew past its preallocated width")
}
