// Package commands contains CLI command implementations for the application.
package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	validation "github.com/jellydator/validation"

	"github.com/allisson/randtoken/internal/app"
	"github.com/allisson/randtoken/internal/token/service"
	customValidation "github.com/allisson/randtoken/internal/validation"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// ParseSeed decodes a hex seed into a deterministic entropy source.
// An empty seed returns a nil source so the container falls back to crypto/rand.
func ParseSeed(seedHex string) (service.EntropySource, error) {
	if seedHex == "" {
		return nil, nil
	}
	if err := validation.Validate(seedHex, customValidation.Hex); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return service.NewSeededSource(seed)
}

// validateFormat rejects output formats other than text and json.
func validateFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	return nil
}

// outputJSON writes value as indented JSON for machine consumption.
func outputJSON(value any, writer io.Writer) error {
	jsonBytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(writer, string(jsonBytes))
	return err
}
