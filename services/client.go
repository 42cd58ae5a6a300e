package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/httpclient"
	"github.com/kbukum/servicekit/httpclient/rest"
	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/observability"
	"github.com/kbukum/servicekit/resilience"
)

// Option configures a service client.
type Option func(*options)

type options struct {
	log     *logger.Logger
	metrics *observability.Metrics
}

// WithLogger sets the logger for the client. Defaults to the global logger
// tagged with the service name.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics enables metric recording for the client.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// client is the shared plumbing for all service clients: a REST client with
// retry and breaker wired, plus logging and optional metrics.
type client struct {
	name    string
	rest    *rest.Client
	log     *logger.Logger
	metrics *observability.Metrics
}

// newClient builds the shared client for a service, wiring breaker state
// transitions and retry attempts into logs and metrics.
func newClient(cfg config.ClientConfig, service string, opts ...Option) (*client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent(service)
	}
	log := o.log
	metrics := o.metrics

	hcCfg := cfg.HTTPClientConfig(service)

	hcCfg.CircuitBreaker.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("circuit breaker state changed", logger.Fields(
			logger.FieldBreakerState, to.String(),
			"from", from.String(),
		))
		if metrics != nil {
			metrics.RecordBreakerTransition(context.Background(), name, from.String(), to.String())
		}
	}

	maxAttempts := hcCfg.Retry.MaxAttempts
	hcCfg.Retry.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warn("retrying request",
			logger.RetryFields("call", attempt, maxAttempts, delay),
			logger.Fields(logger.FieldError, err.Error()),
		)
		if metrics != nil {
			metrics.RecordRetry(context.Background(), service, "call", attempt)
		}
	}

	restClient, err := rest.New(hcCfg)
	if err != nil {
		return nil, err
	}

	return &client{
		name:    service,
		rest:    restClient,
		log:     log,
		metrics: metrics,
	}, nil
}

// BreakerState exposes the client's circuit breaker state for health checks.
func (c *client) BreakerState() resilience.State {
	return c.rest.HTTP().BreakerState()
}

// CheckHealth reports the client's health based on its breaker state.
func (c *client) CheckHealth(ctx context.Context) observability.Health {
	return observability.BreakerHealth(c.name, c.BreakerState())
}

// finish records the outcome of a completed call: span error, metrics, and a
// log line at the appropriate level.
func (c *client) finish(ctx context.Context, operation string, start time.Time, err error) {
	duration := time.Since(start)

	if c.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordCall(ctx, c.name, operation, status, duration)
		if err != nil {
			if httpclient.IsCircuitOpen(err) {
				c.metrics.RecordBreakerRejection(ctx, c.name)
			}
			c.metrics.RecordError(ctx, errType(err), c.name)
		}
	}

	if err != nil {
		observability.SetSpanError(ctx, err)
		c.log.Warn("call failed", logger.MergeWithError(
			logger.DurationFields(operation, duration), err,
		))
		return
	}
	c.log.Debug("call completed", logger.DurationFields(operation, duration))
}

// tagError attaches the service and operation to transport errors and
// translates them into the application error taxonomy. The typed transport
// error stays in the chain as the cause, so errors.Is/As classification
// still sees it.
func (c *client) tagError(operation string, err error) error {
	var herr *httpclient.Error
	if !stderrors.As(err, &herr) {
		return errors.Internal(err)
	}
	herr.WithContext(c.name, operation)

	switch {
	case httpclient.IsCircuitOpen(herr):
		return errors.CircuitOpen(c.name).WithCause(herr)
	case httpclient.IsTimeout(herr):
		return errors.Timeout(operation).WithCause(herr)
	case httpclient.IsConnection(herr):
		return errors.ConnectionFailed(c.name).WithCause(herr)
	case httpclient.IsSaturated(herr):
		return errors.ServiceUnavailable(c.name).WithCause(herr)
	case httpclient.IsNotFound(herr):
		return errors.NotFound(c.name, "").WithCause(herr)
	case herr.StatusCode == http.StatusTooManyRequests:
		return errors.RateLimited().WithCause(herr)
	case httpclient.IsRequestFailed(herr):
		return errors.ExternalServiceError(c.name, herr)
	default:
		return herr
	}
}

// errType maps an error to its taxonomy name for metrics.
func errType(err error) string {
	switch {
	case httpclient.IsCircuitOpen(err):
		return "circuit_open"
	case httpclient.IsTimeout(err):
		return "timeout"
	case httpclient.IsConnection(err):
		return "connection"
	case httpclient.IsNotFound(err):
		return "not_found"
	case httpclient.IsSaturated(err):
		return "saturated"
	case httpclient.IsValidation(err):
		return "validation"
	case httpclient.IsRequestFailed(err):
		return "request_failed"
	default:
		return "validation"
	}
}
