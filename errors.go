// Package softovault provides typed errors for SoftoVault operations.
//
// # Error Handling
//
// Every failure produced by the client is either an *Error carrying an
// ErrorKind or an *AggregateError returned by GetMany. Use errors.Is with the
// sentinel values below to branch on the kind, or errors.As to reach the HTTP
// status and parsed error body.
//
// Error messages never contain secret values or the access token.
package softovault

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failure. Kinds are string-based for debuggability
// and natural JSON serialization.
type ErrorKind string

const (
	// KindInvalidArgument indicates bad caller input. No request was sent.
	KindInvalidArgument ErrorKind = "INVALID_INPUT"

	// KindNotFound indicates the remote store answered 404 for a secret.
	KindNotFound ErrorKind = "NOT_FOUND"

	// KindTerminalHTTP indicates a 4xx response other than 429.
	KindTerminalHTTP ErrorKind = "HTTP_CLIENT_ERROR"

	// KindRetryableHTTP indicates a 429 or 5xx response that persisted
	// through every retry.
	KindRetryableHTTP ErrorKind = "HTTP_SERVER_ERROR"

	// KindNetwork indicates a transport-level failure.
	KindNetwork ErrorKind = "NETWORK_ERROR"

	// KindTimeout indicates an attempt exceeded the configured timeout.
	KindTimeout ErrorKind = "TIMEOUT"

	// KindMalformedResponse indicates a success response whose body was not
	// valid JSON or did not have the expected shape.
	KindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"

	// KindAggregate indicates one or more keys of a batch request failed.
	KindAggregate ErrorKind = "AGGREGATE_FAILURE"

	// KindInvalidConfig indicates the client could not be configured.
	KindInvalidConfig ErrorKind = "INVALID_CONFIGURATION"
)

var (
	// ErrInvalidArgument is matched by errors carrying KindInvalidArgument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSecretNotFound is matched by errors carrying KindNotFound.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrTerminalHTTP is matched by errors carrying KindTerminalHTTP.
	ErrTerminalHTTP = errors.New("request rejected")

	// ErrRetryableHTTP is matched by errors carrying KindRetryableHTTP.
	ErrRetryableHTTP = errors.New("service unavailable")

	// ErrNetwork is matched by errors carrying KindNetwork.
	ErrNetwork = errors.New("network failure")

	// ErrTimeout is matched by errors carrying KindTimeout.
	ErrTimeout = errors.New("request timed out")

	// ErrMalformedResponse is matched by errors carrying KindMalformedResponse.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrAggregate is matched by *AggregateError.
	ErrAggregate = errors.New("one or more secrets failed")

	// ErrInvalidConfig is matched by errors carrying KindInvalidConfig.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingToken is returned when no access token could be resolved
	// from the explicit parameter or the environment.
	ErrMissingToken = errors.New("access token is required")
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidArgument:   ErrInvalidArgument,
	KindNotFound:          ErrSecretNotFound,
	KindTerminalHTTP:      ErrTerminalHTTP,
	KindRetryableHTTP:     ErrRetryableHTTP,
	KindNetwork:           ErrNetwork,
	KindTimeout:           ErrTimeout,
	KindMalformedResponse: ErrMalformedResponse,
	KindAggregate:         ErrAggregate,
	KindInvalidConfig:     ErrInvalidConfig,
}

// Error is the tagged error type returned by every client operation.
type Error struct {
	Kind ErrorKind

	// Op names the operation that failed, e.g. "Get" or "GET /all".
	Op string

	// Key is the secret key involved, if any.
	Key string

	// Status and StatusText are set for HTTP failures.
	Status     int
	StatusText string

	// Message is the "message" field of the error body, when present.
	Message string

	// Body is the parsed JSON error body. Empty when the body could not be parsed.
	Body map[string]any

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	switch {
	case e.Kind == KindNotFound && e.Key != "":
		fmt.Fprintf(&b, "secret %q not found", e.Key)
	case e.Status != 0:
		fmt.Fprintf(&b, "HTTP %d %s", e.Status, e.StatusText)
		if e.Message != "" {
			fmt.Fprintf(&b, ": %s", e.Message)
		}
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(string(e.Kind))
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// KeyFailure records why a single key of a batch request failed.
type KeyFailure struct {
	Key string
	Err error
}

// AggregateError is returned by GetMany with FailOnMissing when at least one
// key failed. Failures are listed in request order.
type AggregateError struct {
	Failures []KeyFailure
}

// Error implements the error interface.
func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Key, f.Err))
	}
	return fmt.Sprintf("failed to retrieve %d secret(s): %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap returns every per-key failure.
func (e *AggregateError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Is matches ErrAggregate.
func (e *AggregateError) Is(target error) bool {
	return target == ErrAggregate
}

// Keys returns the failed keys in request order.
func (e *AggregateError) Keys() []string {
	keys := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		keys = append(keys, f.Key)
	}
	return keys
}

// IsNotFound reports whether err means the secret does not exist: either a
// NotFound kind, an HTTP 404, or a message mentioning "not found".
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSecretNotFound) {
		return true
	}

	var e *Error
	if errors.As(err, &e) && e.Status == http.StatusNotFound {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

func invalidArgument(op, key, msg string) *Error {
	return &Error{
		Kind: KindInvalidArgument,
		Op:   op,
		Key:  key,
		Err:  fmt.Errorf("%w: %s", ErrInvalidArgument, msg),
	}
}
