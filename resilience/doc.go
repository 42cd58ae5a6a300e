// Package resilience provides patterns for building fault-tolerant service
// integrations.
//
// This package includes:
//   - CircuitBreaker: Stops calling a failing dependency for a cooldown period
//   - Retry: Retries failed operations with capped exponential backoff
//   - Bulkhead: Limits concurrent access to isolate failures
//   - RateLimiter: Controls request rate with a token bucket
//
// Retry and circuit breaking are independent layers composed at client
// construction time:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("payments"))
//
//	status, err := resilience.Retry(ctx, retryCfg, func() (PaymentStatus, error) {
//	    var s PaymentStatus
//	    err := cb.Execute(func() error {
//	        var callErr error
//	        s, callErr = fetchStatus()
//	        return callErr
//	    })
//	    return s, err
//	})
package resilience
