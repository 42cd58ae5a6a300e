// Package httpclient provides a configurable HTTP client for outbound
// service calls with built-in authentication, TLS, and resilience
// (retry, circuit breaker, bulkhead, rate limiting).
//
// Transport failures are always mapped to a typed *Error so callers never
// see a raw net/http error:
//
//   - timeouts            -> ErrCodeTimeout (retryable)
//   - connection failures -> ErrCodeConnection (retryable)
//   - HTTP 404            -> ErrCodeNotFound (terminal)
//   - other non-2xx       -> ErrCodeRequestFailed (terminal by default)
//   - invalid payloads    -> ErrCodeValidation (terminal)
//   - open breaker        -> ErrCodeCircuitOpen (terminal, fails fast)
//   - full bulkhead       -> ErrCodeSaturated (terminal, local to the caller)
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/123",
//	})
//
// # With Resilience
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL:        "https://api.example.com",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("my-api"),
//	})
//
// The subpackage rest provides a JSON-focused layer with generic typed
// methods on top of this client.
package httpclient
