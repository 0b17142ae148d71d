package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:               ":0",
		LogFormat:          "text",
		LogLevel:           "error",
		SessionSecret:      "a-very-secret-key-for-testing-!",
		Backend:            config.BackendMemory,
		TranscriptCapacity: 20,
		PageSize:           10,
		RateLimitPerSecond: 1000,
	}
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	ts := httptest.NewServer(s.E)
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, s.Shutdown(ctx))
	})
	return s, ts
}

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	// --- Setup ---
	e := echo.New()

	// Capture log output
	var logBuffer bytes.Buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{
		AddSource: true,
	})
	logger := slog.New(handler)
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	// --- Act ---
	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// --- Assert ---
	require.Equal(t, http.StatusInternalServerError, rec.Code, "Expected a 500 Internal Server Error response")

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)", "Log message should indicate an unhandled error")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"", "Log should contain the original error message")
	assert.Contains(t, logOutput, "stack_trace=", "Log must contain the stack_trace field")
	assert.Contains(t, logOutput, "runtime/debug/stack.go", "Stack trace should originate from the debug package")
	assert.Contains(t, logOutput, "internal/server/server_test.go", "Stack trace should point back to this test file")
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	e := echo.New()
	setupErrorHandling(e)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrEmptyContent, http.StatusBadRequest},
		{fmt.Errorf("parse: %w", domain.ErrInvalidRole), http.StatusBadRequest},
		{echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
	}
	for i, tt := range tests {
		path := fmt.Sprintf("/err/%d", i)
		err := tt.err
		e.GET(path, func(c echo.Context) error { return err })

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = "paper"

	_, err := New(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown transcript backend")
}

func TestNew_SQLiteBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Backend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "parley.db")

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Shutdown(context.Background())) })

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"role":"user","content":"persisted"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	msgs, err := s.store.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "persisted", msgs[0].Content)
}

func TestNew_Seed(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("messages:\n  - role: assistant\n    content: Welcome to Parley\n"), 0o644))
	cfg := testConfig()
	cfg.SeedPath = seed

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Shutdown(context.Background())) })

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "Welcome to Parley")
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_PostAndList(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/messages", echo.MIMEApplicationJSON,
		strings.NewReader(`{"role":"user","content":"Hello, Parley"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body.String(), "Hello, Parley")
	assert.Contains(t, body.String(), `ws-connect="/ws"`)
}

func TestServer_StreamsNewMessages(t *testing.T) {
	_, ts := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	// The socket registers with the hub asynchronously, so keep posting until
	// a fragment arrives.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				resp, err := http.Post(ts.URL+"/messages", echo.MIMEApplicationJSON,
					strings.NewReader(`{"role":"assistant","content":"streamed reply"}`))
				if err == nil {
					resp.Body.Close()
				}
			}
		}
	}()

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.Contains(t, string(data), `hx-swap-oob="beforeend:#transcript"`)
	assert.Contains(t, string(data), "streamed reply")
	assert.Contains(t, string(data), "is-assistant")
}

func TestServer_ShutdownIsIdempotent(t *testing.T) {
	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, s.Shutdown(ctx))
}
