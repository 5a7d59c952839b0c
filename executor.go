package softovault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header names and the fixed client identifier sent with every request.
const (
	HeaderClientName = "X-Client-Name"
	HeaderRequestID  = "X-Request-ID"
	ClientIdentifier = "softovault-go/1.0"
)

// requestOptions customizes a single logical request.
type requestOptions struct {
	// Method defaults to GET.
	Method string

	// Header entries override the defaults. An empty Authorization value is
	// ignored so the credential cannot be removed.
	Header http.Header

	// Body is re-sent on every attempt.
	Body []byte
}

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeRetryable
	outcomeTerminal
)

// outcome is the result of one network attempt.
type outcome struct {
	kind    outcomeKind
	payload json.RawMessage
	err     error
}

// executor issues one logical request with per-attempt timeouts and the
// retry policy of its Retryer.
type executor struct {
	baseURL string
	token   string
	timeout time.Duration
	doer    Doer
	retryer Retryer
	logger  *slog.Logger
}

func newExecutor(cfg Config, doer Doer, retryer Retryer, logger *slog.Logger) *executor {
	return &executor{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		timeout: cfg.Timeout,
		doer:    doer,
		retryer: retryer,
		logger:  logger,
	}
}

// Execute performs the request at path and returns the JSON response body.
// Attempts never overlap: each one is finished and its context cancelled
// before the next starts. The returned error is always the last attempt's.
func (e *executor) Execute(ctx context.Context, path string, opts requestOptions) (json.RawMessage, error) {
	if opts.Method == "" {
		opts.Method = http.MethodGet
	}
	op := opts.Method + " " + path
	requestID := uuid.NewString()

	maxAttempts := e.retryer.MaxAttempts()
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if e.logger != nil {
			e.logger.DebugContext(ctx, "sending request",
				"path", path,
				"attempt", attempt,
				"request_id", requestID)
		}

		out := e.attempt(ctx, op, path, opts, requestID)
		if out.kind == outcomeSuccess {
			return out.payload, nil
		}
		lastErr = out.err

		if ctx.Err() != nil || out.kind == outcomeTerminal || attempt == maxAttempts-1 {
			break
		}

		delay, err := e.retryer.RetryDelay(attempt, out.err)
		if err != nil {
			break
		}

		if e.logger != nil {
			e.logger.WarnContext(ctx, "request failed, retrying",
				"path", path,
				"attempt", attempt,
				"request_id", requestID,
				"delay", delay,
				"error", out.err)
		}

		if err := sleepContext(ctx, delay); err != nil {
			return nil, &Error{
				Kind: KindNetwork,
				Op:   op,
				Err:  fmt.Errorf("retry aborted: %w", err),
			}
		}
	}

	if e.logger != nil {
		e.logger.ErrorContext(ctx, "request failed",
			"path", path,
			"request_id", requestID,
			"error", lastErr)
	}

	return nil, lastErr
}

// attempt runs one request under its own timeout.
func (e *executor) attempt(ctx context.Context, op, path string, opts requestOptions, requestID string) outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := e.newRequest(attemptCtx, path, opts, requestID)
	if err != nil {
		return outcome{kind: outcomeTerminal, err: &Error{
			Kind: KindInvalidArgument,
			Op:   op,
			Err:  fmt.Errorf("failed to build request: %w", err),
		}}
	}

	resp, err := e.doer.Do(req)
	if err != nil {
		return e.classify(e.transportError(ctx, attemptCtx, op, err))
	}
	defer resp.Body.Close()

	// The body is read inside the attempt so the timeout covers it too.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return e.classify(e.transportError(ctx, attemptCtx, op, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return e.classify(newHTTPError(op, resp.StatusCode, body))
	}

	if !json.Valid(body) {
		return outcome{kind: outcomeTerminal, err: &Error{
			Kind:       KindMalformedResponse,
			Op:         op,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Err:        fmt.Errorf("%w: response body is not valid JSON", ErrMalformedResponse),
		}}
	}

	return outcome{kind: outcomeSuccess, payload: json.RawMessage(body)}
}

func (e *executor) newRequest(ctx context.Context, path string, opts requestOptions, requestID string) (*http.Request, error) {
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, e.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderClientName, ClientIdentifier)
	req.Header.Set(HeaderRequestID, requestID)

	for name, values := range opts.Header {
		name = http.CanonicalHeaderKey(name)
		if name == "Authorization" && (len(values) == 0 || strings.TrimSpace(values[0]) == "") {
			continue
		}
		req.Header[name] = append([]string(nil), values...)
	}

	return req, nil
}

// transportError maps a failure to get or read a response. A deadline on the
// attempt context is a timeout; the caller's own cancellation is reported
// as a network failure carrying the context error.
func (e *executor) transportError(ctx, attemptCtx context.Context, op string, err error) *Error {
	if ctx.Err() != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: ctx.Err()}
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &Error{
			Kind: KindTimeout,
			Op:   op,
			Err:  fmt.Errorf("no response within %s: %w", e.timeout, err),
		}
	}
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func (e *executor) classify(err *Error) outcome {
	if e.retryer.IsErrorRetryable(err) {
		return outcome{kind: outcomeRetryable, err: err}
	}
	return outcome{kind: outcomeTerminal, err: err}
}

// newHTTPError builds the error for a non-2xx response. An unparseable body
// becomes an empty map.
func newHTTPError(op string, status int, body []byte) *Error {
	parsed := map[string]any{}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		parsed = map[string]any{}
	}

	message, _ := parsed["message"].(string)

	return &Error{
		Kind:       kindForStatus(status),
		Op:         op,
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    message,
		Body:       parsed,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
