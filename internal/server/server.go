package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/config"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
	httpserver "github.com/preston-bernstein/pyramid-service/internal/http"
	"github.com/preston-bernstein/pyramid-service/internal/http/handlers"
	"github.com/preston-bernstein/pyramid-service/internal/http/middleware"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
	"github.com/preston-bernstein/pyramid-service/internal/metrics"
	"github.com/preston-bernstein/pyramid-service/internal/poller"
	"github.com/preston-bernstein/pyramid-service/internal/snapshots"
	"github.com/preston-bernstein/pyramid-service/internal/store"
	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	service       *pyramids.Service
	library       *snapshots.Library
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server from configuration. Only a bad theme file can make it fail.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	registry, err := themes.Build(cfg.ThemesFile)
	if err != nil {
		return nil, err
	}
	return newServerWithMetrics(cfg, logger, registry, nil), nil
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, registry *themes.Registry, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	library := buildLibrary(cfg)
	memoryStore, svc := buildServices(cfg, registry, library, recorder, logger)

	var plr Poller
	if library != nil && cfg.Library.SyncEnabled {
		plr = poller.New(library, logger, recorder, cfg.Library.SyncInterval)
	}
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		service:       svc,
		library:       library,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *pyramids.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildLibrary(cfg config.Config) *snapshots.Library {
	if cfg.Library.Dir == "" {
		return nil
	}
	return snapshots.NewLibrary(cfg.Library.Dir, cfg.Library.MaxPyramids)
}

func buildServices(cfg config.Config, registry *themes.Registry, library *snapshots.Library, recorder *metrics.Recorder, logger *slog.Logger) (*store.MemoryStore, *pyramids.Service) {
	memoryStore := store.NewMemoryStore(store.WithMaxPyramids(cfg.Library.MaxPyramids))
	opts := []pyramids.Option{
		pyramids.WithStore(memoryStore),
		pyramids.WithRecorder(recorder),
		pyramids.WithLogger(logger),
		pyramids.WithDefaultTheme(cfg.DefaultTheme),
	}
	if library != nil {
		library.SetLogger(logger)
		library.OnPrune(memoryStore.DeletePyramid)
		opts = append(opts, pyramids.WithLibrary(library))
	}
	return memoryStore, pyramids.NewService(generator.New(registry), opts...)
}

func buildHTTPServer(cfg config.Config, svc *pyramids.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	limits := handlers.Limits{
		MaxLevels:        cfg.Limits.MaxLevels,
		MaxTeamsPerLevel: cfg.Limits.MaxTeamsPerLevel,
	}
	router := httpserver.NewRouter(handlers.NewHandler(svc, logger, limits, statusFn))
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the library poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop library poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
