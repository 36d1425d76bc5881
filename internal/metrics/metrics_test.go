package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New()
	router := chi.NewRouter()
	router.Use(m.Middleware)
	router.Delete("/api/v1/deleteTransaction/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/deleteTransaction/"+id, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	count := testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/deleteTransaction/{id}", http.MethodDelete, "404"))
	assert.Equal(t, float64(3), count)
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `expense_tracker_http_requests_total{code="200",method="GET",route="unmatched"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
