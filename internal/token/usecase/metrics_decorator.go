package usecase

import (
	"context"
	"time"

	"github.com/allisson/randtoken/internal/metrics"
	"github.com/allisson/randtoken/internal/token/domain"
)

const metricsDomain = "token"

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	t.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	t.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Generate records metrics for single token generation.
func (t *tokenUseCaseWithMetrics) Generate(ctx context.Context, params GenerateParams) (*domain.Token, error) {
	start := time.Now()
	token, err := t.next.Generate(ctx, params)
	t.record(ctx, "generate", start, err)

	if err == nil {
		t.metrics.RecordTokens(ctx, token.Base, token.BitSize, 1)
	}

	return token, err
}

// GenerateBatch records metrics for batch generation.
func (t *tokenUseCaseWithMetrics) GenerateBatch(
	ctx context.Context,
	params GenerateParams,
	count int,
) (*domain.Batch, error) {
	start := time.Now()
	batch, err := t.next.GenerateBatch(ctx, params, count)
	t.record(ctx, "generate_batch", start, err)

	if err == nil {
		t.metrics.RecordTokens(ctx, batch.Config.Base, batch.Config.BitSize, len(batch.Tokens))
	}

	return batch, err
}

// Describe records metrics for configuration lookups.
func (t *tokenUseCaseWithMetrics) Describe(ctx context.Context, params GenerateParams) (*domain.Config, error) {
	start := time.Now()
	cfg, err := t.next.Describe(ctx, params)
	t.record(ctx, "describe", start, err)
	return cfg, err
}

// Validate records metrics for token shape checks.
func (t *tokenUseCaseWithMetrics) Validate(ctx context.Context, token string, params GenerateParams) (bool, error) {
	start := time.Now()
	valid, err := t.next.Validate(ctx, token, params)
	t.record(ctx, "validate", start, err)
	return valid, err
}

// Verify records metrics for digest comparisons.
func (t *tokenUseCaseWithMetrics) Verify(ctx context.Context, token, hash string) bool {
	start := time.Now()
	ok := t.next.Verify(ctx, token, hash)
	t.record(ctx, "verify", start, nil)
	return ok
}

// Presets is not instrumented.
func (t *tokenUseCaseWithMetrics) Presets(ctx context.Context) []domain.Preset {
	return t.next.Presets(ctx)
}
