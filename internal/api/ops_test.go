package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedbacklens/domain/feedback"
	"feedbacklens/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "8080", OpsPort: "8081", GinMode: "test"},
		Data:    config.DataConfig{MaxUploadBytes: 1024, QueryBackend: "memory"},
		Insight: feedback.DefaultInsightConfig(),
	}
}

func TestOpsEndpoints(t *testing.T) {
	srv := NewOpsServer(testConfig(), "test")

	for _, path := range []string{"/healthz", "/readyz", "/info"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestOpsInfoReportsBackend(t *testing.T) {
	srv := NewOpsServer(testConfig(), "v1")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "memory", body["query_backend"])
	assert.Equal(t, "v1", body["version"])
}
