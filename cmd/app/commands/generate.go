package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/randtoken/internal/token/domain"
	"github.com/allisson/randtoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
)

// GenerateOptions carries the flags shared by generate and describe.
// A zero BitSize and an empty Alphabet select the configured defaults.
type GenerateOptions struct {
	BitSize  int
	Alphabet string
	Preset   string
	Count    int
	Hash     bool
	Format   string
}

// Params converts the flags into use case parameters.
func (o GenerateOptions) Params() tokenUseCase.GenerateParams {
	params := tokenUseCase.GenerateParams{
		Preset: o.Preset,
		Hash:   o.Hash,
	}
	if o.BitSize != 0 {
		params.BitSize = o.BitSize
	}
	if o.Alphabet != "" {
		params.Alphabet = o.Alphabet
	}
	return params
}

// RunGenerate draws one or more tokens and writes them to io.Writer. Text output
// prints one token per line, followed by a tab and its digest when hashing is on.
func RunGenerate(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	io IOTuple,
	opts GenerateOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	if opts.Count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.Count)
	}

	batch, err := useCase.GenerateBatch(ctx, opts.Params(), opts.Count)
	if err != nil {
		return fmt.Errorf("failed to generate tokens: %w", err)
	}

	logger.Debug("tokens generated",
		slog.Int("count", len(batch.Tokens)),
		slog.Int("bit_size", batch.Config.BitSize),
		slog.Int("base", batch.Config.Base),
	)

	if opts.Format == "json" {
		return outputJSON(dto.MapBatchToResponse(batch), io.Writer)
	}
	return outputTokensText(batch, io.Writer)
}

func outputTokensText(batch *domain.Batch, writer io.Writer) error {
	for _, token := range batch.Tokens {
		var err error
		if token.HasHash() {
			_, err = fmt.Fprintf(writer, "%s\t%s\n", token.Value, *token.Hash)
		} else {
			_, err = fmt.Fprintln(writer, token.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RunDescribe prints the derived configuration for the given flags without drawing entropy.
func RunDescribe(
	ctx context.Context,
	useCase tokenUseCase.TokenUseCase,
	io IOTuple,
	opts GenerateOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	cfg, err := useCase.Describe(ctx, opts.Params())
	if err != nil {
		return fmt.Errorf("failed to describe configuration: %w", err)
	}

	if opts.Format == "json" {
		return outputJSON(dto.MapConfigToResponse(cfg), io.Writer)
	}

	_, _ = fmt.Fprintf(io.Writer, "Bit size:     %d\n", cfg.BitSize)
	_, _ = fmt.Fprintf(io.Writer, "Alphabet:     %s\n", cfg.Alphabet)
	_, _ = fmt.Fprintf(io.Writer, "Base:         %d\n", cfg.Base)
	_, _ = fmt.Fprintf(io.Writer, "Byte length:  %d\n", cfg.ByteLength)
	_, err = fmt.Fprintf(io.Writer, "Token length: %d\n", cfg.TokenLength)
	return err
}
