package service

import (
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// formatDigits renders little-endian digits most significant first as exactly width
// characters. Missing high-order positions are filled with symbols[0], the way a
// decimal number keeps leading zeros, so padding never changes the encoded value.
func formatDigits(digits []int, symbols []rune, width int) string {
	var sb strings.Builder
	sb.Grow(width * utf8.RuneLen(symbols[0]))

	for i := len(digits); i < width; i++ {
		sb.WriteRune(symbols[0])
	}

	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteRune(symbols[digits[i]])
	}

	return sb.String()
}

// formatHex renders buf with the lowercase hexadecimal alphabet. Every byte maps to
// exactly two digits, so the result equals formatDigits over the base-16 expansion.
func formatHex(buf []byte) string {
	return hex.EncodeToString(buf)
}
