package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/allisson/randtoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
)

// ErrTokenMismatch is returned by RunVerify when the token does not match the digest,
// so the process exits non-zero.
var ErrTokenMismatch = errors.New("token does not match hash")

// RunVerify checks a token against an Argon2id digest produced by generate --hash.
func RunVerify(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	io IOTuple,
	token string,
	hash string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	req := dto.VerifyTokenRequest{Token: token, Hash: hash}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	match := useCase.Verify(ctx, token, hash)

	if format == "json" {
		if err := outputJSON(dto.VerifyTokenResponse{Match: match}, io.Writer); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "match: %t\n", match)
	}

	if !match {
		return ErrTokenMismatch
	}
	return nil
}
