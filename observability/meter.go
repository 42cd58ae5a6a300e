package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/servicekit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds metric instruments for outbound service calls.
type Metrics struct {
	callTotal       metric.Int64Counter
	callDuration    metric.Float64Histogram
	retryTotal      metric.Int64Counter
	breakerRejected metric.Int64Counter
	breakerState    metric.Int64Counter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	callTotal, err := meter.Int64Counter("client.call.total",
		metric.WithDescription("Total number of outbound service calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.call.total counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram("client.call.duration",
		metric.WithDescription("Duration of outbound service calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.call.duration histogram: %w", err)
	}

	retryTotal, err := meter.Int64Counter("client.retry.total",
		metric.WithDescription("Total retry attempts by service and operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.retry.total counter: %w", err)
	}

	breakerRejected, err := meter.Int64Counter("client.breaker.rejected.total",
		metric.WithDescription("Calls rejected by an open circuit breaker"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.breaker.rejected.total counter: %w", err)
	}

	breakerState, err := meter.Int64Counter("client.breaker.transitions.total",
		metric.WithDescription("Circuit breaker state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.breaker.transitions.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("client.error.total",
		metric.WithDescription("Total errors by type and service"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating client.error.total counter: %w", err)
	}

	return &Metrics{
		callTotal:       callTotal,
		callDuration:    callDuration,
		retryTotal:      retryTotal,
		breakerRejected: breakerRejected,
		breakerState:    breakerState,
		errorTotal:      errorTotal,
	}, nil
}

// RecordCall records a completed outbound call.
func (m *Metrics) RecordCall(ctx context.Context, service, operation, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("status", status),
	)
	m.callTotal.Add(ctx, 1, attrs)
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordRetry records a retry attempt.
func (m *Metrics) RecordRetry(ctx context.Context, service, operation string, attempt int) {
	m.retryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.Int("attempt", attempt),
	))
}

// RecordBreakerRejection records a call rejected by an open breaker.
func (m *Metrics) RecordBreakerRejection(ctx context.Context, service string) {
	m.breakerRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
	))
}

// RecordBreakerTransition records a circuit breaker state transition.
func (m *Metrics) RecordBreakerTransition(ctx context.Context, service, from, to string) {
	m.breakerState.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

// RecordError records an error by type and service.
func (m *Metrics) RecordError(ctx context.Context, errType, service string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("service", service),
	))
}
