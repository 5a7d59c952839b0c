// Package softovault defines interfaces for SoftoVault operations.
package softovault

import (
	"net/http"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=interfaces.go -destination=mocks/interfaces_mock.go -package=mocks

// Doer performs a single HTTP request. *http.Client satisfies it.
// Implementations must honor the request context for cancellation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Retryer decides how many attempts a request gets, how long to wait between
// them, and which failures deserve another attempt.
type Retryer interface {
	// MaxAttempts returns the total number of attempts, including the first.
	MaxAttempts() int

	// RetryDelay returns the delay after the given 0-indexed failed attempt.
	RetryDelay(attempt int, err error) (time.Duration, error)

	// IsErrorRetryable determines if the given error should be retried.
	IsErrorRetryable(err error) bool
}
