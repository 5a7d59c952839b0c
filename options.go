// Package softovault provides functional options for configuring the SoftoVault client.
package softovault

import (
	"log/slog"
	"time"
)

// clientOptions holds the explicit overrides given to a constructor.
// Pointer fields are nil when the caller did not set them, so the
// environment and defaults can fill the gap.
type clientOptions struct {
	baseURL      *string
	timeout      *time.Duration
	retries      *int
	cacheEnabled *bool
	cacheTTL     *time.Duration

	logger      *slog.Logger
	httpClient  Doer
	retryer     Retryer
	backoffBase time.Duration

	maxConcurrency int
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

// WithBaseURL sets the service base URL, e.g. "https://vault.internal/v1".
func WithBaseURL(baseURL string) Option {
	return func(opts *clientOptions) {
		opts.baseURL = &baseURL
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *clientOptions) {
		opts.timeout = &timeout
	}
}

// WithRetries sets how many times a retryable failure is retried.
// Zero disables retries.
func WithRetries(retries int) Option {
	return func(opts *clientOptions) {
		opts.retries = &retries
	}
}

// WithCache enables or disables the read cache.
func WithCache(enabled bool) Option {
	return func(opts *clientOptions) {
		opts.cacheEnabled = &enabled
	}
}

// WithCacheTTL sets how long cached values stay valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(opts *clientOptions) {
		opts.cacheTTL = &ttl
	}
}

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithHTTPClient replaces the transport used to reach the service.
// *http.Client satisfies Doer.
func WithHTTPClient(client Doer) Option {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// WithRetryer replaces the retry policy. When set, the retries option only
// affects the resolved Config, not the attempt count.
func WithRetryer(retryer Retryer) Option {
	return func(opts *clientOptions) {
		opts.retryer = retryer
	}
}

// WithBackoffBase sets the delay unit of the default exponential retryer
// (one second unless overridden).
func WithBackoffBase(base time.Duration) Option {
	return func(opts *clientOptions) {
		opts.backoffBase = base
	}
}

// WithMaxConcurrency bounds how many requests GetMany runs at once.
// Zero or less means one request per key, all at once.
func WithMaxConcurrency(n int) Option {
	return func(opts *clientOptions) {
		opts.maxConcurrency = n
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *clientOptions {
	return &clientOptions{
		logger:      nil, // No default logger
		httpClient:  nil, // newHTTPClient
		retryer:     nil, // ExponentialRetryer from the resolved retries
		backoffBase: time.Second,
	}
}

// applyOptions applies the given options to the client options.
func applyOptions(opts *clientOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
