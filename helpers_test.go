package softovault

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// fakeVault is an httptest-backed SoftoVault service.
type fakeVault struct {
	t      *testing.T
	server *httptest.Server

	mu      sync.Mutex
	secrets map[string]any
	info    map[string]any
	// override, when set, answers every request instead of the routes below
	override http.HandlerFunc

	calls     atomic.Int64
	pathCalls sync.Map // path -> *atomic.Int64
}

func newFakeVault(t *testing.T, secrets map[string]any) *fakeVault {
	t.Helper()

	v := &fakeVault{
		t:       t,
		secrets: secrets,
		info:    map[string]any{"name": "test-vault", "version": "1.2.3"},
	}
	v.server = httptest.NewServer(http.HandlerFunc(v.handle))
	t.Cleanup(v.server.Close)

	return v
}

func (v *fakeVault) handle(w http.ResponseWriter, r *http.Request) {
	v.calls.Add(1)
	counter, _ := v.pathCalls.LoadOrStore(r.URL.EscapedPath(), &atomic.Int64{})
	counter.(*atomic.Int64).Add(1)

	v.mu.Lock()
	override := v.override
	v.mu.Unlock()
	if override != nil {
		override(w, r)
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+testToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid token"})
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case r.URL.Path == pathAll:
		writeJSON(w, http.StatusOK, map[string]any{"secrets": v.secrets})
	case r.URL.Path == pathInfo:
		writeJSON(w, http.StatusOK, v.info)
	case strings.HasPrefix(r.URL.Path, pathSecret):
		key := strings.TrimPrefix(r.URL.Path, pathSecret)
		value, ok := v.secrets[key]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Secret not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "no route"})
	}
}

func (v *fakeVault) setSecret(key string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.secrets[key] = value
}

func (v *fakeVault) setOverride(h http.HandlerFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.override = h
}

func (v *fakeVault) callsTo(path string) int64 {
	counter, ok := v.pathCalls.Load(path)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int64).Load()
}

func (v *fakeVault) client(opts ...Option) *Client {
	v.t.Helper()

	base := []Option{
		WithBaseURL(v.server.URL),
		WithBackoffBase(time.Millisecond),
		WithTimeout(2 * time.Second),
	}
	client, err := NewWithEnv(testToken, Env{}, append(base, opts...)...)
	require.NoError(v.t, err)

	return client
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// recordingRetryer wraps a Retryer and records every delay it hands out.
type recordingRetryer struct {
	Retryer

	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingRetryer) RetryDelay(attempt int, err error) (time.Duration, error) {
	d, derr := r.Retryer.RetryDelay(attempt, err)
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	return d, derr
}

func (r *recordingRetryer) recorded() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// Helper types and functions for capturing log output
type logEntry struct {
	level string
	msg   string
	attrs map[string]string
}

type testLogHandler struct {
	mu   sync.Mutex
	logs []logEntry
}

func (h *testLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *testLogHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := logEntry{
		level: r.Level.String(),
		msg:   r.Message,
		attrs: map[string]string{},
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.attrs[a.Key] = a.Value.String()
		return true
	})

	h.mu.Lock()
	h.logs = append(h.logs, entry)
	h.mu.Unlock()
	return nil
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *testLogHandler) entries() []logEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]logEntry(nil), h.logs...)
}
