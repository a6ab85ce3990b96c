package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lovico/lovico-server/internal/api/middleware"
	"github.com/lovico/lovico-server/internal/config"
	"github.com/stretchr/testify/assert"
)

func corsHandler(cfg *config.Config) http.Handler {
	return middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func allowOriginFor(t *testing.T, cfg *config.Config, origin string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/featured", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rec, req)

	return rec.Header().Get("Access-Control-Allow-Origin")
}

func TestCORS_ProductionWithoutOriginsDeniesAll(t *testing.T) {
	cfg := &config.Config{Environment: "production"}

	assert.Empty(t, allowOriginFor(t, cfg, "https://evil.example.com"))
	assert.Empty(t, allowOriginFor(t, cfg, "https://lovi.co"))
}

func TestCORS_ProductionWithoutOriginsDeniesPreflight(t *testing.T) {
	cfg := &config.Config{Environment: "production"}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	corsHandler(cfg).ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORS_DevelopmentWithoutOriginsAllowsAll(t *testing.T) {
	cfg := &config.Config{Environment: "development"}

	assert.Equal(t, "*", allowOriginFor(t, cfg, "http://localhost:3000"))
}

func TestCORS_AllowListIsAuthoritative(t *testing.T) {
	cfg := &config.Config{
		Environment:    "production",
		AllowedOrigins: []string{"https://lovi.co"},
	}

	assert.Equal(t, "https://lovi.co", allowOriginFor(t, cfg, "https://lovi.co"))
	assert.Empty(t, allowOriginFor(t, cfg, "https://evil.example.com"))
}
