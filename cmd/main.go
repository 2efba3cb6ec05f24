package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/pacetrend/internal/adapters/http/api"
	"github.com/okian/pacetrend/internal/adapters/http/swagger"
	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/adapters/source/csvfile"
	"github.com/okian/pacetrend/internal/adapters/source/strava"
	app "github.com/okian/pacetrend/internal/app"
	"github.com/okian/pacetrend/internal/config"
	"github.com/okian/pacetrend/pkg/logger"
	"github.com/okian/pacetrend/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			_, _ = os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithPaceWindow(cfg.PaceWindow),
		app.WithCategories(cfg.Categories),
		app.WithMaxTopRuns(cfg.MaxTopRuns),
		app.WithMaxActivities(cfg.MaxActivities),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Startup imports are best effort; the API still accepts records over HTTP.
	importSources(ctx, svc, sources(cfg, loggerInstance))

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	mux := http.NewServeMux()

	// API documentation under /api-docs
	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, cfg.MaxTopRuns, cfg.MaxIngestBatch)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// sources returns the activity sources enabled by the configuration.
func sources(cfg *config.Config, l logger.Logger) []source.Source {
	var out []source.Source
	if cfg.CSVPath != "" {
		out = append(out, csvfile.New(cfg.CSVPath))
	}
	if cfg.Strava.Enabled {
		out = append(out, strava.New(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.TokenFile,
			strava.WithBaseURL(cfg.Strava.BaseURL),
			strava.WithTokenURL(cfg.Strava.TokenURL),
			strava.WithPerPage(cfg.Strava.PerPage),
			strava.WithLogger(l),
		))
	}
	return out
}

func importSources(ctx context.Context, svc *app.Service, srcs []source.Source) {
	for _, src := range srcs {
		res, err := svc.Import(ctx, src)
		if err != nil {
			logger.Get().Warn(ctx, "activity import failed", logger.String("source", src.Name()), logger.Error(err))
			continue
		}
		logger.Get().Info(ctx, "activities imported",
			logger.String("source", src.Name()),
			logger.Int("accepted", res.Accepted),
			logger.Int("rejected", len(res.Rejected)),
		)
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics refreshes the stored activity gauge.
func updateServiceMetrics(svc *app.Service) {
	if stored, ok := svc.GetStats()["storedActivities"].(int); ok {
		metrics.UpdateStoredActivities(stored)
	}
}
