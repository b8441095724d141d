package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestLoggingMiddleware_SetsRequestID(t *testing.T) {
	var loggerInContext bool
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loggerInContext = zerolog.Ctx(r.Context()).GetLevel() != zerolog.Disabled
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rr.Header().Get(RequestIDHeader), 36)
	assert.True(t, loggerInContext)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	handler := CORSMiddleware(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/search-form", nil)
	req.Header.Set("Origin", "https://www.clarat.org")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestCORSMiddleware_AllowList(t *testing.T) {
	handler := CORSMiddleware([]string{"https://www.clarat.org"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/search-form", nil)
	req.Header.Set("Origin", "https://www.clarat.org")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "https://www.clarat.org", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/api/search-form", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	handler := CORSMiddleware(nil)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/search-form", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestObservabilityMiddleware_NilMetrics(t *testing.T) {
	handler := ObservabilityMiddleware(nil)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
