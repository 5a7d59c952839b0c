package softovault

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs request metadata around another RoundTripper.
// It never reads or logs bodies or headers, which carry secrets and the token.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	elapsed := time.Since(start)
	if err != nil {
		t.logger.DebugContext(req.Context(), "http request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get(HeaderRequestID),
			"elapsed_time", elapsed,
			"error", err)
		return nil, err
	}

	t.logger.DebugContext(req.Context(), "http request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(HeaderRequestID),
		"status", resp.StatusCode,
		"elapsed_time", elapsed)

	return resp, nil
}

// newHTTPClient builds the default transport. Timeouts are enforced per
// attempt through the request context, so the client itself has none.
func newHTTPClient(logger *slog.Logger) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if logger != nil {
		transport = &loggingTransport{next: transport, logger: logger}
	}
	return &http.Client{Transport: transport}
}
