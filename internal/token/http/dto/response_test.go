package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/randtoken/internal/token/domain"
)

func TestMapTokenToResponse(t *testing.T) {
	now := time.Now().UTC()
	digest := "$argon2id$digest"
	token := &domain.Token{Value: "0123456789abcdef0123456789abcdef", Hash: &digest, BitSize: 128, Base: 16, CreatedAt: now}

	resp := MapTokenToResponse(token)

	require.Len(t, resp.Tokens, 1)
	assert.Equal(t, token.Value, resp.Tokens[0].Token)
	assert.Equal(t, &digest, resp.Tokens[0].Hash)
	assert.Equal(t, now, resp.Tokens[0].CreatedAt)
	assert.Equal(t, 128, resp.BitSize)
	assert.Equal(t, 16, resp.Base)
	assert.Equal(t, 32, resp.TokenLength)
}

func TestMapTokenToResponse_MultiByteToken(t *testing.T) {
	token := &domain.Token{Value: "αβγδ", BitSize: 8, Base: 8}

	resp := MapTokenToResponse(token)

	assert.Equal(t, 4, resp.TokenLength)
}

func TestMapBatchToResponse(t *testing.T) {
	batch := &domain.Batch{
		Config: domain.Config{BitSize: 256, Base: 62, TokenLength: 43},
		Tokens: []*domain.Token{{Value: "first"}, {Value: "second"}},
	}

	resp := MapBatchToResponse(batch)

	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, "first", resp.Tokens[0].Token)
	assert.Equal(t, "second", resp.Tokens[1].Token)
	assert.Nil(t, resp.Tokens[0].Hash)
	assert.Equal(t, 256, resp.BitSize)
	assert.Equal(t, 62, resp.Base)
	assert.Equal(t, 43, resp.TokenLength)
}

func TestMapConfigToResponse(t *testing.T) {
	cfg, err := domain.NewConfig(512, domain.Base36)
	require.NoError(t, err)

	assert.Equal(t, ConfigResponse{
		BitSize:     512,
		Alphabet:    domain.Base36,
		Base:        36,
		ByteLength:  64,
		TokenLength: 100,
	}, MapConfigToResponse(cfg))
}

func TestMapPresetsToListResponse(t *testing.T) {
	resp := MapPresetsToListResponse(domain.Presets())

	require.Len(t, resp.Data, 6)
	expected := map[string]int{
		"base16": 32,
		"base36": 25,
		"base58": 22,
		"base62": 22,
		"base66": 22,
		"base71": 21,
	}
	for _, item := range resp.Data {
		assert.Equal(t, expected[item.Name], item.TokenLength128, item.Name)
		assert.Equal(t, len(item.Alphabet), item.Base)
	}
}

func TestMapPresetsToListResponse_Empty(t *testing.T) {
	resp := MapPresetsToListResponse(nil)

	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}
