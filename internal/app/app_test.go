package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatcli/internal/config"
	"estatcli/internal/infrastructure"
	"estatcli/internal/operations"
	"estatcli/internal/services"
	"estatcli/internal/websocket"
)

func testApplication(t *testing.T) (*Application, *services.DatasetService) {
	t.Helper()
	base := t.TempDir()
	paths, err := config.NewPaths(base, config.PathsConfig{})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = time.Minute
	cfg.Security.EnableCORS = true
	cfg.Security.AllowedOrigins = []string{"http://localhost:8080"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers := &infrastructure.OTelProviders{Logger: logger}
	metrics, err := providers.BusinessMetrics()
	require.NoError(t, err)

	hub := websocket.NewHub(logger)
	tracer := operations.NewPipelineTracer(providers, metrics)
	svc := services.NewDatasetService(cfg, paths, logger, hub, tracer)

	return &Application{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		providers: providers,
		metrics:   metrics,
		hub:       hub,
	}, svc
}

func TestRouterHealth(t *testing.T) {
	app, svc := testApplication(t)
	router := app.router(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterSecurityHeaders(t *testing.T) {
	app, svc := testApplication(t)
	router := app.router(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterCORSPreflight(t *testing.T) {
	app, svc := testApplication(t)
	router := app.router(svc)

	req := httptest.NewRequest(http.MethodOptions, "/api/datasets", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterUnknownRoute(t *testing.T) {
	app, svc := testApplication(t)
	router := app.router(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
