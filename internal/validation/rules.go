// Package validation provides custom validation rules for request DTOs and CLI flags.
package validation

import (
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/randtoken/internal/errors"
	"github.com/allisson/randtoken/internal/token/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PresetName validates that a string names a built-in alphabet preset.
var PresetName = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := domain.LookupPreset(s)
		return err == nil
	},
	validation.NewError("validation_preset_name", "must be one of base16, base36, base58, base62, base66, base71"),
)

// Argon2idDigest validates the PHC string prefix of an Argon2id digest.
var Argon2idDigest = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.HasPrefix(s, "$argon2id$")
	},
	validation.NewError("validation_argon2id_digest", "must be an argon2id digest"),
)

// OptionalNumber accepts an absent value or a decoded JSON number. Range and
// granularity checks are left to the token configuration.
var OptionalNumber = validation.By(func(value interface{}) error {
	switch value.(type) {
	case nil, float64, json.Number:
		return nil
	default:
		return validation.NewError("validation_number_type", "must be a number")
	}
})

// OptionalString accepts an absent value or a string.
var OptionalString = validation.By(func(value interface{}) error {
	switch value.(type) {
	case nil, string:
		return nil
	default:
		return validation.NewError("validation_string_type", "must be a string")
	}
})
