package dto

import (
	"time"
	"unicode/utf8"

	"github.com/allisson/randtoken/internal/token/domain"
)

// TokenResponse represents a generated token in API responses.
type TokenResponse struct {
	Token     string    `json:"token"`
	Hash      *string   `json:"hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateTokensResponse represents the result of a generation request.
type GenerateTokensResponse struct {
	Tokens      []TokenResponse `json:"tokens"`
	BitSize     int             `json:"bit_size"`
	Base        int             `json:"base"`
	TokenLength int             `json:"token_length"`
}

// ConfigResponse represents derived generator parameters.
type ConfigResponse struct {
	BitSize     int    `json:"bit_size"`
	Alphabet    string `json:"alphabet"`
	Base        int    `json:"base"`
	ByteLength  int    `json:"byte_length"`
	TokenLength int    `json:"token_length"`
}

// PresetResponse represents a built-in alphabet.
type PresetResponse struct {
	Name           string `json:"name"`
	Alphabet       string `json:"alphabet"`
	Base           int    `json:"base"`
	TokenLength128 int    `json:"token_length_128"`
}

// ListPresetsResponse represents the response for listing presets.
type ListPresetsResponse struct {
	Data []PresetResponse `json:"data"`
}

// ValidateTokenResponse reports whether a token has the expected shape.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// VerifyTokenResponse reports whether a token matches a digest.
type VerifyTokenResponse struct {
	Match bool `json:"match"`
}

func mapToken(token *domain.Token) TokenResponse {
	return TokenResponse{
		Token:     token.Value,
		Hash:      token.Hash,
		CreatedAt: token.CreatedAt,
	}
}

// MapTokenToResponse maps a single token onto a generation response.
func MapTokenToResponse(token *domain.Token) GenerateTokensResponse {
	return GenerateTokensResponse{
		Tokens:      []TokenResponse{mapToken(token)},
		BitSize:     token.BitSize,
		Base:        token.Base,
		TokenLength: utf8.RuneCountInString(token.Value),
	}
}

// MapBatchToResponse maps a batch onto a generation response, preserving token order.
func MapBatchToResponse(batch *domain.Batch) GenerateTokensResponse {
	tokens := make([]TokenResponse, 0, len(batch.Tokens))
	for _, token := range batch.Tokens {
		tokens = append(tokens, mapToken(token))
	}

	return GenerateTokensResponse{
		Tokens:      tokens,
		BitSize:     batch.Config.BitSize,
		Base:        batch.Config.Base,
		TokenLength: batch.Config.TokenLength,
	}
}

// MapConfigToResponse maps derived parameters onto a response.
func MapConfigToResponse(cfg *domain.Config) ConfigResponse {
	return ConfigResponse{
		BitSize:     cfg.BitSize,
		Alphabet:    cfg.Alphabet,
		Base:        cfg.Base,
		ByteLength:  cfg.ByteLength,
		TokenLength: cfg.TokenLength,
	}
}

// MapPresetsToListResponse maps presets onto a list response. Token lengths are
// reported for the default 128-bit size.
func MapPresetsToListResponse(presets []domain.Preset) ListPresetsResponse {
	items := make([]PresetResponse, 0, len(presets))
	for _, preset := range presets {
		item := PresetResponse{
			Name:     preset.Name,
			Alphabet: preset.Alphabet,
			Base:     preset.Base(),
		}
		if cfg, err := domain.NewConfig(domain.DefaultBitSize, preset.Alphabet); err == nil {
			item.TokenLength128 = cfg.TokenLength
		}
		items = append(items, item)
	}

	return ListPresetsResponse{
		Data: items,
	}
}
