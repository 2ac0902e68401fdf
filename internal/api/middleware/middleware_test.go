package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasksum-api/internal/api/shared"
	"github.com/phrazzld/tasksum-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestTrace(t *testing.T) {
	t.Parallel()

	base, buf := newBufferLogger()
	var seenTraceID string
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	require.NotEmpty(t, seenTraceID)
	_, err := uuid.Parse(seenTraceID)
	assert.NoError(t, err)
	assert.Equal(t, seenTraceID, w.Header().Get(TraceIDHeader))
	assert.Contains(t, buf.String(), `"msg":"inside handler"`)
	assert.Contains(t, buf.String(), `"trace_id":"`+seenTraceID+`"`)
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	base, buf := newBufferLogger()
	handler := NewTraceMiddleware(base)(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/tasks", nil))

	var entry map[string]interface{}
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, float64(len("short and stout")), entry["bytes"])
	assert.Equal(t, "/tasks", entry["path"])
	assert.NotEmpty(t, entry["trace_id"])
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	base, buf := newBufferLogger()
	handler := NewTraceMiddleware(base)(Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("connecting to postgres://app:hunter2@db/tasks")
	})))

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/1", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, InternalErrorMessage, resp.Error)
	assert.Equal(t, w.Header().Get(TraceIDHeader), resp.TraceID)
	assert.NotContains(t, w.Body.String(), "hunter2")

	assert.Contains(t, buf.String(), "panic recovered")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestRecovererRepanicsAbortHandler(t *testing.T) {
	t.Parallel()

	handler := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
