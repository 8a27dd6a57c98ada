package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"estatcli/internal/config"
	"estatcli/internal/infrastructure"
	"estatcli/internal/middleware"
	"estatcli/internal/operations"
	"estatcli/internal/services"
	transporthttp "estatcli/internal/transport/http"
	"estatcli/internal/websocket"
)

// Application bundles everything the web server needs.
type Application struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	providers *infrastructure.OTelProviders
	metrics   *infrastructure.BusinessMetrics
	hub       *websocket.Hub
	server    *http.Server
}

// New builds the application from configuration. It initializes logging,
// telemetry, the WebSocket hub and the HTTP server, but does not start
// listening.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	paths, err := config.NewPaths("", cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	metrics, err := providers.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	hub := websocket.NewHub(logger)
	tracer := operations.NewPipelineTracer(providers, metrics)
	service := services.NewDatasetService(cfg, paths, logger, hub, tracer)

	app := &Application{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		providers: providers,
		metrics:   metrics,
		hub:       hub,
	}
	app.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.router(service),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) router(service *services.DatasetService) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewObservability(a.providers, a.metrics).Handler)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.logger))
	r.Use(middleware.Recoverer(a.logger))
	r.Use(middleware.SecurityHeaders)
	if a.cfg.Security.EnableCORS {
		r.Use(middleware.CORS(a.cfg.Security.AllowedOrigins))
	}
	if a.cfg.Security.RateLimit.Enabled {
		r.Use(middleware.RateLimiter(a.cfg.Security.RateLimit.RPS, a.cfg.Security.RateLimit.Burst, a.logger))
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(a.cfg.Server.RequestTimeout))
		api.Mount("/health", transporthttp.NewHealthHandler().Routes())
		api.Mount("/datasets", transporthttp.NewDatasetHandler(service, a.logger).Routes())
	})

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		if err := websocket.ServeWS(a.hub, w, req); err != nil {
			a.logger.ErrorContext(req.Context(), "websocket upgrade failed", "error", err)
		}
	})

	if a.providers.PrometheusHTTP != nil {
		r.Handle("/metrics", a.providers.PrometheusHTTP)
	}

	return r
}

// Run starts the hub and the HTTP server, then blocks until SIGINT/SIGTERM
// and shuts both down gracefully.
func (a *Application) Run() error {
	a.hub.Start()
	defer a.hub.Stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		a.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := a.providers.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", "error", err)
	}
	infrastructure.CloseLogFile()
	return nil
}
