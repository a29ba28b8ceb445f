package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/season-dashboard-service/internal/app/activities"
	"github.com/preston-bernstein/season-dashboard-service/internal/config"
	httpserver "github.com/preston-bernstein/season-dashboard-service/internal/http"
	"github.com/preston-bernstein/season-dashboard-service/internal/http/handlers"
	"github.com/preston-bernstein/season-dashboard-service/internal/http/middleware"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/poller"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *activities.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	scheduler     jobScheduler
	metricsStop   func(context.Context) error
	closers       []func() error
}

// New constructs a server with the live provider, poller, scheduler and HTTP wiring described
// by cfg.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.RecordProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.RecordProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	stopLimiter := func() {}
	if provider == nil {
		provider, stopLimiter = factory.build(cfg)
	} else {
		provider = factory.wrap(provider)
	}

	resolver := buildResolver(cfg, logger)
	snaps := buildSnapshots(cfg)
	svc := activities.NewService(activities.Options{
		Resolver:    resolver,
		Live:        provider,
		Snapshots:   snaps.store,
		LiveTimeout: cfg.Live.Timeout,
		Logger:      logger,
		Metrics:     recorder,
	})

	var (
		plr       Poller
		refresher handlers.Refresher
	)
	if provider != nil {
		p := poller.New(provider, snaps.writer, logger, recorder, cfg.Live.PollInterval)
		plr, refresher = p, p
	}

	sc := buildScraper(cfg, snaps.writer, logger, recorder)
	notifier, closeMarkers := buildNotifier(context.Background(), cfg, svc, logger, recorder)

	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    buildHTTPServer(cfg, svc, plr, refresher, logger, recorder),
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		closers: []func() error{
			func() error { stopLimiter(); return nil },
			closeMarkers,
		},
	}
	if s := buildScheduler(cfg, sc, notifier, logger); s != nil {
		srv.scheduler = s
	}
	return srv
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *activities.Service, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildResolver(cfg config.Config, logger *slog.Logger) season.Resolver {
	store := season.NewStore(logger, timeutil.ResolveLocation(cfg.Season.Timezone))
	ctx, cancel := context.WithTimeout(context.Background(), seasonLoadTimeout)
	defer cancel()
	return season.NewResolver(store.Load(ctx, cfg.Season.Resource))
}

func buildHTTPServer(cfg config.Config, svc *activities.Service, plr Poller, refresher handlers.Refresher, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(svc, logger, statusFn, cfg.Live.PreferLive)
	var admin *handlers.AdminHandler
	// The refresh endpoint is only mounted when a token is set.
	if cfg.Snapshots.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresher, cfg.Snapshots.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
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

// Run starts the poller, scheduler and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}
	if s.scheduler != nil {
		logging.Info(s.logger, "scheduler starting", slog.Any("jobs", s.scheduler.Jobs()))
		s.scheduler.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("err", err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("err", err))
		}
	}

	if s.scheduler != nil {
		if err := s.scheduler.Stop(); err != nil {
			logging.Error(s.logger, "failed to stop scheduler", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "close failed", slog.Any("err", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("err", err))
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any("err", err))
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

// Service exposes the orchestrator for the CLI.
func (s *Server) Service() *activities.Service {
	return s.service
}
