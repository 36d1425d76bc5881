package origins

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPolicy(t *testing.T) *Policy {
	t.Helper()
	policy, err := NewPolicy(
		[]string{"http://localhost:3000", " https://app.example.com/ "},
		[]string{`https://[a-z0-9-]+\.preview\.example\.com`},
	)
	require.NoError(t, err)
	return policy
}

func TestNewPolicy_InvalidPattern(t *testing.T) {
	policy, err := NewPolicy(nil, []string{"https://(unclosed"})
	assert.Error(t, err)
	assert.Nil(t, policy)
}

func TestPolicy_Allowed(t *testing.T) {
	policy := newTestPolicy(t)

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"https://app.example.com", true},
		{"https://feature-42.preview.example.com", true},
		{"https://evil.com", false},
		{"https://feature-42.preview.example.com.evil.com", false},
		{"http://localhost:3001", false},
		{"", false},
	}
	for _, tc := range tests {
		t.Run(tc.origin, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Allowed(tc.origin))
		})
	}
}

func newTestHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return newTestPolicy(t).Handler(logger)(next), &called
}

func TestHandler_AllowedOrigin(t *testing.T) {
	handler, called := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/getTransaction", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, *called)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHandler_DisallowedOrigin(t *testing.T) {
	handler, called := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/getTransaction", nil)
	req.Header.Set("Origin", "https://evil.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, *called, "the request itself is still served, the browser enforces the block")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_NoOrigin(t *testing.T) {
	handler, called := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, *called)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandler_PreflightAllowed(t *testing.T) {
	handler, called := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/addTransaction", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPost, w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestHandler_PreflightDisallowed(t *testing.T) {
	handler, called := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/addTransaction", nil)
	req.Header.Set("Origin", "https://evil.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.False(t, *called)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
