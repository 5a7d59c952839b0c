package softovault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// Cache keys. Single-secret and all-secrets reads are cached independently,
// so a stale GetAll result can coexist with a fresher Get for the same key.
const (
	cacheKeyAll          = "secrets:all"
	cacheKeySecretPrefix = "secret:"
)

// Service paths, relative to the base URL.
const (
	pathSecret = "/key/"
	pathAll    = "/all"
	pathInfo   = "/info"
)

// Client reads secrets from a SoftoVault service.
//
// Thread Safety: This struct is thread-safe for concurrent use.
// - config and the executor are immutable after construction
// - the cache is protected by its own mutex
// - the logger field is typically thread-safe (slog.Logger)
type Client struct {
	// config is the resolved configuration
	config Config

	// exec performs requests with timeout and retry
	exec *executor

	// cache holds previously fetched values
	cache *TTLCache

	// logger is used for structured logging of operations (nil disables logging)
	logger *slog.Logger

	// maxConcurrency bounds GetMany fan-out (0 = unbounded)
	maxConcurrency int
}

// New creates a client. An empty token falls back to the environment, see
// Env. Options take precedence over the environment, which takes precedence
// over the package defaults.
//
// Example usage:
//
//	client, err := softovault.New(token,
//	    softovault.WithTimeout(10*time.Second),
//	    softovault.WithLogger(slog.Default()),
//	)
func New(token string, opts ...Option) (*Client, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return NewWithEnv(token, env, opts...)
}

// NewFromEnv creates a client whose token comes purely from the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	return New("", opts...)
}

// NewWithEnv creates a client from an explicit environment snapshot instead
// of the process environment.
func NewWithEnv(token string, env Env, opts ...Option) (*Client, error) {
	options := defaultOptions()
	applyOptions(options, opts)

	cfg, err := resolveConfig(token, options, env)
	if err != nil {
		return nil, err
	}

	doer := options.httpClient
	if doer == nil {
		doer = newHTTPClient(options.logger)
	}

	retryer := options.retryer
	if retryer == nil {
		retryer = NewExponentialRetryer(cfg.Retries, options.backoffBase)
	}

	return &Client{
		config:         cfg,
		exec:           newExecutor(cfg, doer, retryer, options.logger),
		cache:          NewTTLCache(cfg.CacheTTL, cfg.CacheEnabled),
		logger:         options.logger,
		maxConcurrency: options.maxConcurrency,
	}, nil
}

// Config returns the resolved configuration.
func (c *Client) Config() Config {
	return c.config
}

type callOptions struct {
	skipCache     bool
	failOnMissing bool
	header        http.Header
}

// CallOption adjusts a single client call.
type CallOption func(*callOptions)

// SkipCache bypasses the cache for this call: nothing is read from it and
// the fetched value is not stored.
func SkipCache() CallOption {
	return func(o *callOptions) {
		o.skipCache = true
	}
}

// FailOnMissing makes GetMany return an *AggregateError when any key fails,
// instead of recording nil for it.
func FailOnMissing() CallOption {
	return func(o *callOptions) {
		o.failOnMissing = true
	}
}

// WithHeader adds a request header to this call, overriding the client's
// default of the same name. An empty Authorization value is ignored.
func WithHeader(name, value string) CallOption {
	return func(o *callOptions) {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Set(name, value)
	}
}

func (o callOptions) request() requestOptions {
	return requestOptions{Header: o.header}
}

func newCallOptions(opts []CallOption) callOptions {
	var call callOptions
	for _, opt := range opts {
		opt(&call)
	}
	return call
}

// Get retrieves the value of a single secret. The value is returned as raw
// JSON, exactly as the service sent it.
//
// A 404 from the service is reported as an *Error with KindNotFound, which
// matches ErrSecretNotFound.
func (c *Client) Get(ctx context.Context, key string, opts ...CallOption) (json.RawMessage, error) {
	if ctx == nil {
		return nil, invalidArgument("Get", key, "context cannot be nil")
	}
	if key == "" {
		return nil, invalidArgument("Get", key, "secret key cannot be empty")
	}

	call := newCallOptions(opts)
	cacheKey := cacheKeySecretPrefix + key

	if !call.skipCache {
		if cached, found := c.cache.Get(cacheKey); found {
			if value, ok := cached.(json.RawMessage); ok {
				if c.logger != nil {
					c.logger.DebugContext(ctx, "cache hit for secret",
						"secret_key", key)
				}
				return bytes.Clone(value), nil
			}
		}
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "retrieving secret",
			"secret_key", key)
	}

	payload, err := c.exec.Execute(ctx, pathSecret+url.PathEscape(key), call.request())
	if err != nil {
		var httpErr *Error
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return nil, &Error{
				Kind:       KindNotFound,
				Op:         "Get",
				Key:        key,
				Status:     httpErr.Status,
				StatusText: httpErr.StatusText,
				Message:    httpErr.Message,
				Body:       httpErr.Body,
			}
		}
		return nil, err
	}

	var resp struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil || resp.Value == nil {
		return nil, &Error{
			Kind: KindMalformedResponse,
			Op:   "Get",
			Key:  key,
			Err:  fmt.Errorf("%w: expected an object with a value field", ErrMalformedResponse),
		}
	}

	if !call.skipCache {
		c.cache.Put(cacheKey, json.RawMessage(bytes.Clone(resp.Value)))
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "secret retrieved successfully",
			"secret_key", key)
	}

	return resp.Value, nil
}

// GetString retrieves a secret whose value is a JSON string.
func (c *Client) GetString(ctx context.Context, key string, opts ...CallOption) (string, error) {
	raw, err := c.Get(ctx, key, opts...)
	if err != nil {
		return "", err
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &Error{
			Kind: KindMalformedResponse,
			Op:   "GetString",
			Key:  key,
			Err:  fmt.Errorf("%w: secret value is not a string", ErrMalformedResponse),
		}
	}

	return value, nil
}

// GetAll retrieves every secret visible to the token. A response without a
// secrets field yields an empty map.
func (c *Client) GetAll(ctx context.Context, opts ...CallOption) (map[string]json.RawMessage, error) {
	if ctx == nil {
		return nil, invalidArgument("GetAll", "", "context cannot be nil")
	}

	call := newCallOptions(opts)

	if !call.skipCache {
		if cached, found := c.cache.Get(cacheKeyAll); found {
			if secrets, ok := cached.(map[string]json.RawMessage); ok {
				if c.logger != nil {
					c.logger.DebugContext(ctx, "cache hit for all secrets")
				}
				return cloneSecrets(secrets), nil
			}
		}
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "retrieving all secrets")
	}

	payload, err := c.exec.Execute(ctx, pathAll, call.request())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Secrets map[string]json.RawMessage `json:"secrets"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, &Error{
			Kind: KindMalformedResponse,
			Op:   "GetAll",
			Err:  fmt.Errorf("%w: expected an object with a secrets map: %w", ErrMalformedResponse, err),
		}
	}
	if resp.Secrets == nil {
		resp.Secrets = map[string]json.RawMessage{}
	}

	if !call.skipCache {
		c.cache.Put(cacheKeyAll, cloneSecrets(resp.Secrets))
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "all secrets retrieved successfully",
			"count", len(resp.Secrets))
	}

	return resp.Secrets, nil
}

// GetMany retrieves several secrets concurrently. Every requested key is
// present in the result. By default a key that fails maps to nil; with
// FailOnMissing the call waits for every key and then returns an
// *AggregateError listing all failures.
func (c *Client) GetMany(ctx context.Context, keys []string, opts ...CallOption) (map[string]json.RawMessage, error) {
	if ctx == nil {
		return nil, invalidArgument("GetMany", "", "context cannot be nil")
	}
	if keys == nil {
		return nil, invalidArgument("GetMany", "", "keys must be a list of secret keys")
	}

	call := newCallOptions(opts)

	type result struct {
		value json.RawMessage
		err   error
	}
	results := make([]result, len(keys))

	var g errgroup.Group
	if c.maxConcurrency > 0 {
		g.SetLimit(c.maxConcurrency)
	}
	for i, key := range keys {
		g.Go(func() error {
			value, err := c.Get(ctx, key, opts...)
			results[i] = result{value: value, err: err}
			return nil
		})
	}
	_ = g.Wait() // per-key errors live in results

	values := make(map[string]json.RawMessage, len(keys))
	var failures []KeyFailure
	for i, key := range keys {
		r := results[i]
		if r.err != nil {
			values[key] = nil
			failures = append(failures, KeyFailure{Key: key, Err: r.err})
			continue
		}
		values[key] = r.value
	}

	if len(failures) > 0 && c.logger != nil {
		c.logger.WarnContext(ctx, "some secrets could not be retrieved",
			"requested", len(keys),
			"failed", len(failures))
	}

	if call.failOnMissing && len(failures) > 0 {
		return nil, &AggregateError{Failures: failures}
	}

	return values, nil
}

// Exists reports whether a secret exists. A NotFound failure yields false
// with no error; any other failure is returned.
func (c *Client) Exists(ctx context.Context, key string, opts ...CallOption) (bool, error) {
	_, err := c.Get(ctx, key, opts...)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// VaultInfo returns the service metadata document. It is never cached.
func (c *Client) VaultInfo(ctx context.Context, opts ...CallOption) (json.RawMessage, error) {
	if ctx == nil {
		return nil, invalidArgument("VaultInfo", "", "context cannot be nil")
	}
	return c.exec.Execute(ctx, pathInfo, newCallOptions(opts).request())
}

// InvalidateCache removes a single secret from the cache. The all-secrets
// entry is left alone.
func (c *Client) InvalidateCache(key string) {
	if key == "" {
		return
	}

	c.cache.Delete(cacheKeySecretPrefix + key)

	if c.logger != nil {
		c.logger.InfoContext(context.Background(), "cache invalidated for secret",
			"secret_key", key)
	}
}

// ClearCache removes every cached value.
func (c *Client) ClearCache() {
	c.cache.InvalidateAll()

	if c.logger != nil {
		c.logger.InfoContext(context.Background(), "entire cache cleared")
	}
}

// CacheStats reports the cache state.
func (c *Client) CacheStats() CacheStats {
	return c.cache.Stats()
}

// cloneSecrets copies the map and every value in it.
func cloneSecrets(secrets map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(secrets))
	for k, v := range secrets {
		out[k] = bytes.Clone(v)
	}
	return out
}
