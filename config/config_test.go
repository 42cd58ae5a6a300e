package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, false, ""},
		{"valid staging", ServiceConfig{Name: "svc", Environment: "staging"}, false, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
clients:
  user:
    base_url: http://users.internal
    retry:
      max_attempts: 5
      initial_delay: 500ms
  payment:
    base_url: http://payments.internal
    circuit_breaker:
      failure_threshold: 3
      success_threshold: 1
      timeout: 60s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
		Clients       ClientsConfig `yaml:"clients" mapstructure:"clients"`
	}

	var cfg TestConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Name)
	}
	if cfg.Clients.User.BaseURL != "http://users.internal" {
		t.Errorf("expected user base_url, got %q", cfg.Clients.User.BaseURL)
	}
	if cfg.Clients.User.Retry.MaxAttempts != 5 {
		t.Errorf("expected max_attempts=5, got %d", cfg.Clients.User.Retry.MaxAttempts)
	}
	if cfg.Clients.Payment.CircuitBreaker.FailureThreshold != 3 {
		t.Errorf("expected failure_threshold=3, got %d", cfg.Clients.Payment.CircuitBreaker.FailureThreshold)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type TestConfig struct {
		ServiceConfig `yaml:",inline" mapstructure:",squash"`
	}

	var cfg TestConfig
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{}}

	type TestConfig struct {
		Name string `mapstructure:"name"`
	}
	var cfg TestConfig
	if err := LoadConfig("my-svc", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error {
	return nil
}

func TestClientConfigApplyDefaults(t *testing.T) {
	cfg := ClientConfig{BaseURL: "http://example.com"}
	cfg.ApplyDefaults()

	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.InitialDelay != time.Second {
		t.Errorf("InitialDelay = %v, want 1s", cfg.Retry.InitialDelay)
	}
	if cfg.Retry.MaxDelay != 10*time.Second {
		t.Errorf("MaxDelay = %v, want 10s", cfg.Retry.MaxDelay)
	}
	if cfg.Retry.ExponentialBase != 2.0 {
		t.Errorf("ExponentialBase = %g, want 2.0", cfg.Retry.ExponentialBase)
	}
	if cfg.CircuitBreaker.FailureThreshold != 5 {
		t.Errorf("FailureThreshold = %d, want 5", cfg.CircuitBreaker.FailureThreshold)
	}
	if cfg.CircuitBreaker.SuccessThreshold != 2 {
		t.Errorf("SuccessThreshold = %d, want 2", cfg.CircuitBreaker.SuccessThreshold)
	}
	if cfg.CircuitBreaker.Timeout != 60*time.Second {
		t.Errorf("Breaker timeout = %v, want 60s", cfg.CircuitBreaker.Timeout)
	}
}

func TestClientConfigValidate(t *testing.T) {
	valid := ClientConfig{BaseURL: "http://example.com"}
	valid.ApplyDefaults()
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	missing := ClientConfig{}
	missing.ApplyDefaults()
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing base_url")
	}

	badBase := ClientConfig{BaseURL: "http://example.com"}
	badBase.ApplyDefaults()
	badBase.Retry.ExponentialBase = 0.5
	if err := badBase.Validate(); err == nil {
		t.Error("expected error for exponential_base < 1")
	}

	// Base 1 never grows the delay, so it is rejected too.
	flatBase := ClientConfig{BaseURL: "http://example.com"}
	flatBase.ApplyDefaults()
	flatBase.Retry.ExponentialBase = 1.0
	if err := flatBase.Validate(); err == nil {
		t.Error("expected error for exponential_base == 1")
	}

	badDelay := ClientConfig{BaseURL: "http://example.com"}
	badDelay.ApplyDefaults()
	badDelay.Retry.MaxDelay = 100 * time.Millisecond
	if err := badDelay.Validate(); err == nil {
		t.Error("expected error for max_delay < initial_delay")
	}

	badJitter := ClientConfig{BaseURL: "http://example.com"}
	badJitter.ApplyDefaults()
	badJitter.Retry.Jitter = 1.5
	if err := badJitter.Validate(); err == nil {
		t.Error("expected error for jitter > 1")
	}
}

func TestClientConfigHTTPClientConfig(t *testing.T) {
	cfg := ClientConfig{
		BaseURL: "http://payments.internal",
		Token:   "secret",
	}
	cfg.ApplyDefaults()

	hc := cfg.HTTPClientConfig("payment")
	if hc.BaseURL != "http://payments.internal" {
		t.Errorf("BaseURL = %q", hc.BaseURL)
	}
	if hc.Retry == nil || hc.Retry.MaxAttempts != 3 {
		t.Error("expected retry config with 3 attempts")
	}
	if hc.Retry.RetryIf == nil {
		t.Error("expected RetryIf to be wired")
	}
	if hc.CircuitBreaker == nil || hc.CircuitBreaker.Name != "payment" {
		t.Error("expected breaker named after the service")
	}
	if hc.Auth == nil {
		t.Error("expected bearer auth from token")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("CLIENTS_USER_BASE_URL")

	want := map[string]bool{
		"clients_user_base_url": false,
		"clients.user.base.url": false,
		"clients.user_base_url": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("missing variant %q in %v", k, variants)
		}
	}
}

func TestEnvKeyVariants_SinglePart(t *testing.T) {
	variants := envKeyVariants("DEBUG")
	if len(variants) != 1 || variants[0] != "debug" {
		t.Errorf("expected [debug], got %v", variants)
	}
}
