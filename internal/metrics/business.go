package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Operation outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// BusinessMetrics records use case outcomes.
type BusinessMetrics interface {
	// RecordOperation counts one operation, e.g. ("token", "generate", "success").
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration observes the latency of one operation in seconds.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordTokens counts tokens handed out and the entropy drawn for them.
	RecordTokens(ctx context.Context, base, bitSize, count int)
}

type businessMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	tokenCounter     metric.Int64Counter
	entropyCounter   metric.Int64Counter
}

// NewBusinessMetrics registers the use case instruments on meterProvider.
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of token operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of token operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	tokenCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_tokens_generated_total", namespace),
		metric.WithDescription("Total number of generated tokens"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	entropyCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_entropy_bits_total", namespace),
		metric.WithDescription("Total number of random bits consumed"),
		metric.WithUnit("{bit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create entropy counter: %w", err)
	}

	return &businessMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		tokenCounter:     tokenCounter,
		entropyCounter:   entropyCounter,
	}, nil
}

func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1, metric.WithAttributes(operationAttrs(domain, operation, status)...))
}

func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(), metric.WithAttributes(operationAttrs(domain, operation, status)...))
}

func (b *businessMetrics) RecordTokens(ctx context.Context, base, bitSize, count int) {
	if count <= 0 {
		return
	}
	attrs := metric.WithAttributes(attribute.String("base", strconv.Itoa(base)))
	b.tokenCounter.Add(ctx, int64(count), attrs)
	b.entropyCounter.Add(ctx, int64(bitSize)*int64(count), attrs)
}

func operationAttrs(domain, operation, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("domain", domain),
		attribute.String("operation", operation),
		attribute.String("status", status),
	}
}

// NoOpBusinessMetrics discards everything; used when METRICS_ENABLED is false.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

func (n *NoOpBusinessMetrics) RecordTokens(ctx context.Context, base, bitSize, count int) {}
