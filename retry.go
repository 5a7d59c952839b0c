// Package softovault provides retry logic for SoftoVault requests.
package softovault

import (
	"errors"
	"math"
	"time"
)

// maxBackoffShift bounds the exponent; RetryDelay also saturates the product.
const maxBackoffShift = 30

// ExponentialRetryer implements Retryer with a doubling delay and no jitter:
// base, 2*base, 4*base, ... after attempts 0, 1, 2, ...
//
// Thread Safety: This struct is thread-safe for concurrent use.
// All fields are immutable configuration values set at creation time.
type ExponentialRetryer struct {
	maxAttempts int
	baseDelay   time.Duration
}

// NewExponentialRetryer creates a retryer allowing retries extra attempts
// after the first. A base of zero or less means one second.
func NewExponentialRetryer(retries int, base time.Duration) *ExponentialRetryer {
	if retries < 0 {
		retries = 0
	}
	if base <= 0 {
		base = time.Second
	}
	return &ExponentialRetryer{
		maxAttempts: retries + 1,
		baseDelay:   base,
	}
}

// MaxAttempts returns the maximum number of attempts.
func (r *ExponentialRetryer) MaxAttempts() int {
	return r.maxAttempts
}

// RetryDelay returns 2^attempt * base, saturating at the largest
// representable duration.
func (r *ExponentialRetryer) RetryDelay(attempt int, _ error) (time.Duration, error) {
	switch {
	case attempt < 0:
		attempt = 0
	case attempt > maxBackoffShift:
		attempt = maxBackoffShift
	}
	shift := uint(attempt)
	if r.baseDelay > time.Duration(math.MaxInt64>>shift) {
		return time.Duration(math.MaxInt64), nil
	}
	return r.baseDelay << shift, nil
}

// IsErrorRetryable reports whether err is a 429, a 5xx, a transport failure
// or a timeout. Everything else, including 4xx responses and malformed
// bodies, is terminal.
func (r *ExponentialRetryer) IsErrorRetryable(err error) bool {
	if err == nil {
		return false
	}

	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Kind {
	case KindRetryableHTTP, KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

// kindForStatus classifies a non-2xx status code.
func kindForStatus(status int) ErrorKind {
	switch {
	case status == 429, status >= 500:
		return KindRetryableHTTP
	default:
		return KindTerminalHTTP
	}
}
