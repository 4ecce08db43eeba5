// Package dto provides data transfer objects for the token HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
	customValidation "github.com/allisson/randtoken/internal/validation"
)

// GenerateTokenRequest contains the parameters for generating one or more tokens.
// BitSize and Alphabet are left untyped so the token configuration can report precise
// errors for values such as 127 or a one-character alphabet.
type GenerateTokenRequest struct {
	BitSize  any    `json:"bit_size"`
	Alphabet any    `json:"alphabet"`
	Preset   string `json:"preset"`
	Count    *int   `json:"count"` // Omitted means a single token
	Hash     bool   `json:"hash"`  // Also return an Argon2id digest of each token
}

// Validate checks if the generate token request is valid.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BitSize, customValidation.OptionalNumber),
		validation.Field(&r.Alphabet, customValidation.OptionalString),
		validation.Field(&r.Preset, customValidation.PresetName),
		validation.Field(&r.Count, validation.Min(1)),
	)
}

// Params maps the request onto use case parameters.
func (r *GenerateTokenRequest) Params() tokenUseCase.GenerateParams {
	return tokenUseCase.GenerateParams{
		BitSize:  r.BitSize,
		Alphabet: r.Alphabet,
		Preset:   r.Preset,
		Hash:     r.Hash,
	}
}

// DescribeRequest contains the parameters whose derived configuration is requested.
type DescribeRequest struct {
	BitSize  any    `json:"bit_size"`
	Alphabet any    `json:"alphabet"`
	Preset   string `json:"preset"`
}

// Validate checks if the describe request is valid.
func (r *DescribeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BitSize, customValidation.OptionalNumber),
		validation.Field(&r.Alphabet, customValidation.OptionalString),
		validation.Field(&r.Preset, customValidation.PresetName),
	)
}

// Params maps the request onto use case parameters.
func (r *DescribeRequest) Params() tokenUseCase.GenerateParams {
	return tokenUseCase.GenerateParams{
		BitSize:  r.BitSize,
		Alphabet: r.Alphabet,
		Preset:   r.Preset,
	}
}

// ValidateTokenRequest contains a token and the parameters it is expected to match.
type ValidateTokenRequest struct {
	Token    string `json:"token"`
	BitSize  any    `json:"bit_size"`
	Alphabet any    `json:"alphabet"`
	Preset   string `json:"preset"`
}

// Validate checks if the validate token request is valid.
func (r *ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.BitSize, customValidation.OptionalNumber),
		validation.Field(&r.Alphabet, customValidation.OptionalString),
		validation.Field(&r.Preset, customValidation.PresetName),
	)
}

// Params maps the request onto use case parameters.
func (r *ValidateTokenRequest) Params() tokenUseCase.GenerateParams {
	return tokenUseCase.GenerateParams{
		BitSize:  r.BitSize,
		Alphabet: r.Alphabet,
		Preset:   r.Preset,
	}
}

// VerifyTokenRequest contains a token and the digest returned when it was generated.
type VerifyTokenRequest struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

// Validate checks if the verify token request is valid.
func (r *VerifyTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
		validation.Field(
			&r.Hash,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Argon2idDigest,
		),
	)
}
