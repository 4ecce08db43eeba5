package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/allisson/randtoken/internal/token/http/dto"
	tokenUseCase "github.com/allisson/randtoken/internal/token/usecase"
)

// RunListPresets prints the built-in alphabets.
func RunListPresets(ctx context.Context, useCase tokenUseCase.TokenUseCase, io IOTuple, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	response := dto.MapPresetsToListResponse(useCase.Presets(ctx))
	if format == "json" {
		return outputJSON(response, io.Writer)
	}

	w := tabwriter.NewWriter(io.Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tBASE\tLENGTH@128\tALPHABET")
	for _, preset := range response.Data {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", preset.Name, preset.Base, preset.TokenLength128, preset.Alphabet)
	}
	return w.Flush()
}
