package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	logger := SetupLogging()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestSetupLogging_LevelKey(t *testing.T) {
	logger, buf := newBufferedLogger()

	logger.Info("hello")

	entry := lastLine(t, buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestSetLevel(t *testing.T) {
	logger := SetupLogging()

	require.NoError(t, SetLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	assert.Error(t, SetLevel(logger, "chatty"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestLogData(t *testing.T) {
	logger, buf := newBufferedLogger()
	logData := NewLogData(logger)

	done := logData.AddTiming("storeMs")
	done()
	logData.AddData("userID", "user-1")
	logData.Log().Info("Handler.test.Complete")

	entry := lastLine(t, buf)
	assert.Equal(t, "user-1", entry["userID"])
	assert.Contains(t, entry, "storeMs")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(SetupLogging())
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestMiddleware_Complete(t *testing.T) {
	logger, buf := newBufferedLogger()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(Middleware(logger))
	router.Get("/api/v1/deleteTransaction/{id}", func(w http.ResponseWriter, r *http.Request) {
		GetLogData(r.Context()).AddData("transactionID", chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deleteTransaction/abc", nil))

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.GET /api/v1/deleteTransaction/{id}.Complete", entry["msg"])
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "abc", entry["transactionID"])
	assert.NotEmpty(t, entry["requestID"])
}

func TestMiddleware_ServerErrorLoggedAsError(t *testing.T) {
	logger, buf := newBufferedLogger()

	handler := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))

	entry := lastLine(t, buf)
	assert.Equal(t, "Handler.GET /ready.Error", entry["msg"])
	assert.Equal(t, "error", entry["loglevel"])
}
