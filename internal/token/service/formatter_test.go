package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/randtoken/internal/token/domain"
)

func TestFormatDigits(t *testing.T) {
	tests := []struct {
		name     string
		digits   []int
		alphabet string
		width    int
		expected string
	}{
		{name: "ExactWidth", digits: []int{3, 2, 1}, alphabet: "0123456789", width: 3, expected: "123"},
		{name: "LeftPadded", digits: []int{7}, alphabet: "0123456789", width: 3, expected: "007"},
		{name: "ZeroValue", digits: []int{0}, alphabet: "01", width: 4, expected: "0000"},
		{name: "Base58ZeroDigitIsOne", digits: []int{0}, alphabet: domain.Base58, width: 3, expected: "111"},
		{name: "CustomAlphabet", digits: []int{1, 0, 1}, alphabet: "xy", width: 5, expected: "xxyxy"},
		{name: "MultiByteAlphabet", digits: []int{2, 0}, alphabet: "αβγ", width: 4, expected: "αααγ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDigits(tt.digits, []rune(tt.alphabet), tt.width))
		})
	}
}

// Padding only prepends zero-digits; the characters for computed digits are the same
// whatever the width.
func TestFormatDigits_PaddingPreservesDigits(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	digits := toDigits(buf, 62, nil)

	unpadded := formatDigits(digits, []rune(domain.Base62), len(digits))
	for _, width := range []int{len(digits), len(digits) + 1, 22, 40} {
		padded := formatDigits(digits, []rune(domain.Base62), width)

		assert.Len(t, padded, width)
		assert.True(t, strings.HasSuffix(padded, unpadded))
		assert.Equal(t, strings.Repeat("0", width-len(digits)), padded[:width-len(digits)])
	}
}

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "00ff10ab", formatHex([]byte{0x00, 0xff, 0x10, 0xab}))
}

func TestFormatHex_MatchesGeneralPath(t *testing.T) {
	bufs := [][]byte{
		make([]byte, 16),
		{0x00, 0x00, 0x00, 0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0x0f, 0xee, 0xdd, 0xcc, 0xbb, 0xaa, 0x99, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11, 0x00},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}

	for _, buf := range bufs {
		general := formatDigits(toDigits(buf, 16, nil), []rune(domain.Base16), 2*len(buf))
		assert.Equal(t, general, formatHex(buf))
	}
}
