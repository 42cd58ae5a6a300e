package config

import (
	"fmt"
	"time"

	"github.com/kbukum/servicekit/httpclient"
	"github.com/kbukum/servicekit/resilience"
)

// ClientsConfig groups the outbound client settings for the external
// services this application talks to.
type ClientsConfig struct {
	User         ClientConfig `yaml:"user" mapstructure:"user"`
	Notification ClientConfig `yaml:"notification" mapstructure:"notification"`
	Payment      ClientConfig `yaml:"payment" mapstructure:"payment"`
}

// ApplyDefaults applies defaults to all client sections.
func (c *ClientsConfig) ApplyDefaults() {
	c.User.ApplyDefaults()
	c.Notification.ApplyDefaults()
	c.Payment.ApplyDefaults()
}

// Validate validates all client sections.
func (c *ClientsConfig) Validate() error {
	if err := c.User.Validate(); err != nil {
		return fmt.Errorf("clients.user: %w", err)
	}
	if err := c.Notification.Validate(); err != nil {
		return fmt.Errorf("clients.notification: %w", err)
	}
	if err := c.Payment.Validate(); err != nil {
		return fmt.Errorf("clients.payment: %w", err)
	}
	return nil
}

// ClientConfig configures a single outbound service client.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Token   string        `yaml:"token" mapstructure:"token"`

	Retry          RetrySettings   `yaml:"retry" mapstructure:"retry"`
	CircuitBreaker BreakerSettings `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// RetrySettings is the file representation of a retry policy.
type RetrySettings struct {
	MaxAttempts     int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialDelay    time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	MaxDelay        time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
	ExponentialBase float64       `yaml:"exponential_base" mapstructure:"exponential_base"`
	Jitter          float64       `yaml:"jitter" mapstructure:"jitter"`
}

// BreakerSettings is the file representation of a circuit breaker policy.
type BreakerSettings struct {
	FailureThreshold int           `yaml:"failure_threshold" mapstructure:"failure_threshold"`
	SuccessThreshold int           `yaml:"success_threshold" mapstructure:"success_threshold"`
	Timeout          time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *ClientConfig) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialDelay <= 0 {
		c.Retry.InitialDelay = time.Second
	}
	if c.Retry.MaxDelay <= 0 {
		c.Retry.MaxDelay = 10 * time.Second
	}
	if c.Retry.ExponentialBase <= 0 {
		c.Retry.ExponentialBase = 2.0
	}
	if c.CircuitBreaker.FailureThreshold <= 0 {
		c.CircuitBreaker.FailureThreshold = 5
	}
	if c.CircuitBreaker.SuccessThreshold <= 0 {
		c.CircuitBreaker.SuccessThreshold = 2
	}
	if c.CircuitBreaker.Timeout <= 0 {
		c.CircuitBreaker.Timeout = 60 * time.Second
	}
}

// Validate checks that the client configuration is usable.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Retry.ExponentialBase <= 1 {
		return fmt.Errorf("retry.exponential_base must be > 1 (got: %g)", c.Retry.ExponentialBase)
	}
	if c.Retry.MaxDelay < c.Retry.InitialDelay {
		return fmt.Errorf("retry.max_delay must be >= retry.initial_delay")
	}
	if c.Retry.Jitter < 0 || c.Retry.Jitter > 1 {
		return fmt.Errorf("retry.jitter must be between 0 and 1 (got: %g)", c.Retry.Jitter)
	}
	return nil
}

// HTTPClientConfig converts the file settings into an httpclient.Config
// with retry and circuit breaker wired in. The breaker is named after the
// given service so state transitions are attributable in logs.
func (c *ClientConfig) HTTPClientConfig(service string) httpclient.Config {
	retry := resilience.RetryConfig{
		MaxAttempts:     c.Retry.MaxAttempts,
		InitialDelay:    c.Retry.InitialDelay,
		MaxDelay:        c.Retry.MaxDelay,
		ExponentialBase: c.Retry.ExponentialBase,
		Jitter:          c.Retry.Jitter,
		RetryIf:         httpclient.IsRetryable,
	}

	breaker := resilience.CircuitBreakerConfig{
		Name:             service,
		FailureThreshold: c.CircuitBreaker.FailureThreshold,
		SuccessThreshold: c.CircuitBreaker.SuccessThreshold,
		Timeout:          c.CircuitBreaker.Timeout,
	}

	cfg := httpclient.Config{
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		Retry:          &retry,
		CircuitBreaker: &breaker,
	}
	if c.Token != "" {
		cfg.Auth = httpclient.BearerAuth(c.Token)
	}
	return cfg
}
