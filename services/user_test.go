package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/servicekit/config"
	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/httpclient"
	"github.com/kbukum/servicekit/observability"
	"github.com/kbukum/servicekit/resilience"
)

// testClientConfig returns a client config pointed at a test server, with
// retry delays shrunk so tests run fast.
func testClientConfig(baseURL string) config.ClientConfig {
	cfg := config.ClientConfig{BaseURL: baseURL, Timeout: 2 * time.Second}
	cfg.ApplyDefaults()
	cfg.Retry.InitialDelay = time.Millisecond
	cfg.Retry.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestUserClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/123" {
			t.Errorf("expected /users/123, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(User{ID: 123, Name: "Alice", Email: "alice@example.com", Age: 30})
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := c.GetUser(context.Background(), 123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 123 || user.Name != "Alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("unexpected email: %s", user.Email)
	}
}

func TestUserClient_GetUser_InvalidID(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []int{0, -5} {
		_, err := c.GetUser(context.Background(), id)
		if err == nil {
			t.Errorf("expected error for user id %d", id)
		}
		appErr, ok := errors.AsAppError(err)
		if !ok || appErr.Code != errors.ErrCodeInvalidInput {
			t.Errorf("expected invalid input error, got %v", err)
		}
	}
	if got := atomic.LoadInt32(&requests); got != 0 {
		t.Errorf("invalid input should not reach the network, got %d requests", got)
	}
}

func TestUserClient_GetUser_NotFound_NotRetried(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(404)
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.GetUser(context.Background(), 999)
	if !httpclient.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND app error, got %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 1 {
		t.Errorf("404 should be invoked exactly once, got %d", got)
	}
}

func TestUserClient_GetUser_ErrorCarriesContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.GetUser(context.Background(), 999)
	var herr *httpclient.Error
	if !stderrors.As(err, &herr) {
		t.Fatalf("expected httpclient error, got %v", err)
	}
	if herr.Service != "user" {
		t.Errorf("Service = %q, want user", herr.Service)
	}
	if herr.Operation != "get_user" {
		t.Errorf("Operation = %q, want get_user", herr.Operation)
	}
}

func TestUserClient_GetUser_InvalidResponseSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing email, invalid shape
		w.Write([]byte(`{"id": 1, "name": "Bob", "age": 30}`))
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = c.GetUser(context.Background(), 1)
	if err == nil {
		t.Fatal("expected schema validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidResponse {
		t.Errorf("expected invalid response error, got %v", err)
	}
}

func TestUserClient_GetUser_RetriesConnectionFailures(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			hj, _ := w.(http.Hijacker)
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		json.NewEncoder(w).Encode(User{ID: 1, Name: "Alice", Email: "a@b.co", Age: 1})
	}))
	defer srv.Close()

	c, err := NewUserClient(testClientConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := c.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("unexpected user: %+v", user)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestUserClient_GetUser_BreakerOpensAndFailsFast(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(500)
	}))
	defer srv.Close()

	cfg := testClientConfig(srv.URL)
	cfg.CircuitBreaker.FailureThreshold = 3
	cfg.CircuitBreaker.SuccessThreshold = 1

	c, err := NewUserClient(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := c.GetUser(ctx, 1); !httpclient.IsRequestFailed(err) {
			t.Fatalf("expected request-failed error, got %v", err)
		}
	}

	if c.BreakerState() != resilience.StateOpen {
		t.Fatalf("breaker state = %v, want open", c.BreakerState())
	}

	before := atomic.LoadInt32(&requests)
	_, err = c.GetUser(ctx, 1)
	if !httpclient.IsCircuitOpen(err) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeCircuitOpen {
		t.Errorf("expected CIRCUIT_OPEN app error, got %v", err)
	}
	if atomic.LoadInt32(&requests) != before {
		t.Error("open breaker must not invoke the operation")
	}
}

func TestUserClient_GetUser_RecordsBreakerRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := testClientConfig(srv.URL)
	cfg.CircuitBreaker.FailureThreshold = 1

	c, err := NewUserClient(cfg, WithMetrics(metrics))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	c.GetUser(ctx, 1) // trips the breaker
	if _, err := c.GetUser(ctx, 1); !httpclient.IsCircuitOpen(err) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}

	var rejected int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "client.breaker.rejected.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				rejected += dp.Value
			}
		}
	}
	if rejected != 1 {
		t.Errorf("breaker rejections recorded = %d, want 1", rejected)
	}
}

func TestUserClient_CheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	cfg := testClientConfig(srv.URL)
	cfg.CircuitBreaker.FailureThreshold = 1

	c, err := NewUserClient(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if h := c.CheckHealth(ctx); h.Status != observability.HealthStatusUp {
		t.Errorf("expected up before failures, got %s", h.Status)
	}

	c.GetUser(ctx, 1)
	if h := c.CheckHealth(ctx); h.Status != observability.HealthStatusDown {
		t.Errorf("expected down with open breaker, got %s", h.Status)
	}
	if h := c.CheckHealth(ctx); h.Name != "user" {
		t.Errorf("expected component name 'user', got %s", h.Name)
	}
}

func TestNewUserClient_InvalidConfig(t *testing.T) {
	_, err := NewUserClient(config.ClientConfig{})
	if err == nil {
		t.Fatal("expected error for missing base_url")
	}
}
