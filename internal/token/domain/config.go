package domain

import (
	"encoding/json"
	"math"
	"math/big"
	"unicode/utf8"

	apperrors "github.com/allisson/randtoken/internal/errors"
)

// Config holds the validated parameters of a token generator. It is created once by
// NewConfig or ParseConfig and must not be modified afterwards.
type Config struct {
	// BitSize is the amount of entropy drawn per token, a positive multiple of 128.
	BitSize int
	// Alphabet is the ordered digit set.
	Alphabet string
	// Symbols is Alphabet split into characters; Symbols[d] renders digit d.
	Symbols []rune
	// Base is len(Symbols).
	Base int
	// ByteLength is BitSize/8, the size of the entropy buffer.
	ByteLength int
	// TokenLength is the fixed output width in characters: the smallest n with
	// Base^n >= 2^BitSize.
	TokenLength int
}

// NewConfig validates bitSize and alphabet and derives the remaining parameters.
// A zero bitSize selects DefaultBitSize and an empty alphabet selects DefaultAlphabet.
func NewConfig(bitSize int, alphabet string) (*Config, error) {
	if bitSize == 0 {
		bitSize = DefaultBitSize
	}
	if bitSize < 0 || bitSize%BlockBits != 0 {
		return nil, apperrors.Wrapf(ErrInvalidBitSize, "got %d", bitSize)
	}
	if bitSize > MaxBitSize {
		return nil, apperrors.Wrapf(ErrInvalidBitSize, "got %d, limit is %d", bitSize, MaxBitSize)
	}

	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	symbols, err := splitAlphabet(alphabet)
	if err != nil {
		return nil, err
	}

	base := len(symbols)
	return &Config{
		BitSize:     bitSize,
		Alphabet:    alphabet,
		Symbols:     symbols,
		Base:        base,
		ByteLength:  bitSize / 8,
		TokenLength: tokenLength(bitSize, base),
	}, nil
}

// ParseConfig builds a Config from loosely typed arguments, as received from JSON
// bodies or command lines. Accepted forms:
//
//	ParseConfig()                   // defaults
//	ParseConfig(alphabet)           // string first: alphabet, default bit size
//	ParseConfig(bitSize)            // default alphabet
//	ParseConfig(bitSize, alphabet)
//
// nil in either position selects the default. bitSize may be any Go integer, an
// integral finite float or a json.Number; alphabet must be a string.
func ParseConfig(args ...any) (*Config, error) {
	var bitArg, alphabetArg any

	switch {
	case len(args) > 2:
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "expected at most 2 arguments, got %d", len(args))
	case len(args) == 0:
	case isString(args[0]):
		if len(args) > 1 {
			return nil, apperrors.Wrap(ErrInvalidBitSize, "bit size cannot follow the alphabet")
		}
		alphabetArg = args[0]
	default:
		bitArg = args[0]
		if len(args) > 1 {
			alphabetArg = args[1]
		}
	}

	bitSize, err := parseBitSize(bitArg)
	if err != nil {
		return nil, err
	}

	alphabet, err := parseAlphabet(alphabetArg)
	if err != nil {
		return nil, err
	}

	return NewConfig(bitSize, alphabet)
}

// IsHex reports whether the alphabet is the lowercase hexadecimal preset, for which
// the raw entropy buffer can be hex-encoded directly.
func (c *Config) IsHex() bool {
	return c.Alphabet == Base16
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func parseBitSize(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return intFromInt64(n)
	case uint:
		return intFromUint64(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return intFromUint64(uint64(n))
	case uint64:
		return intFromUint64(n)
	case float32:
		return intFromFloat64(float64(n))
	case float64:
		return intFromFloat64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %q", n.String())
		}
		return intFromFloat64(f)
	default:
		return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %T", v)
	}
}

func intFromInt64(n int64) (int, error) {
	if n > math.MaxInt || n < math.MinInt {
		return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %d", n)
	}
	return int(n), nil
}

func intFromUint64(n uint64) (int, error) {
	if n > math.MaxInt {
		return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %d", n)
	}
	return int(n), nil
}

func intFromFloat64(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %v", f)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, apperrors.Wrapf(ErrInvalidBitSize, "got %v", f)
	}
	return int(f), nil
}

func parseAlphabet(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", apperrors.Wrapf(ErrInvalidAlphabet, "got %T", v)
	}
}

// splitAlphabet requires valid UTF-8 with at least two distinct characters and
// returns the characters in order.
func splitAlphabet(alphabet string) ([]rune, error) {
	if !utf8.ValidString(alphabet) {
		return nil, apperrors.Wrap(ErrInvalidAlphabet, "alphabet is not valid UTF-8")
	}

	symbols := []rune(alphabet)
	if len(symbols) < 2 {
		return nil, apperrors.Wrap(ErrInvalidAlphabet, "alphabet needs at least 2 characters")
	}
	if len(symbols) > MaxAlphabetLength {
		return nil, apperrors.Wrapf(ErrInvalidAlphabet, "alphabet exceeds %d characters", MaxAlphabetLength)
	}

	seen := make(map[rune]struct{}, len(symbols))
	for i, r := range symbols {
		if _, dup := seen[r]; dup {
			return nil, apperrors.Wrapf(ErrDuplicateAlphabetChar, "%q repeated at index %d", r, i)
		}
		seen[r] = struct{}{}
	}

	return symbols, nil
}

// tokenLength returns ceil(bitSize / log2(base)). The floating-point estimate is
// corrected with exact integer arithmetic so that base^n >= 2^bitSize always holds
// and n is minimal.
func tokenLength(bitSize, base int) int {
	n := int(math.Ceil(float64(bitSize) / math.Log2(float64(base))))

	limit := new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
	b := big.NewInt(int64(base))
	pow := func(k int) *big.Int {
		return new(big.Int).Exp(b, big.NewInt(int64(k)), nil)
	}

	for pow(n).Cmp(limit) < 0 {
		n++
	}
	for n > 1 && pow(n-1).Cmp(limit) >= 0 {
		n--
	}

	return n
}
