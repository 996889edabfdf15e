package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/velocitymart/internal/app"
	"github.com/mamadbah2/velocitymart/internal/config"
	"github.com/mamadbah2/velocitymart/internal/metrics"
	"github.com/mamadbah2/velocitymart/internal/scheduler"
	"github.com/mamadbah2/velocitymart/internal/server/handlers"
	"github.com/mamadbah2/velocitymart/internal/server/router"
	"github.com/mamadbah2/velocitymart/internal/service/reporting"
	"github.com/mamadbah2/velocitymart/internal/watcher"
	"github.com/mamadbah2/velocitymart/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var (
		recorder reporting.Recorder
		opts     router.Options
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.New(reg)
		opts.Gatherer = reg
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, recorder, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init data source", zap.Error(err), zap.String("source", cfg.Data.Source))
	}
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close data source", zap.Error(err))
		}
	}()

	// Warm the cache so broken inputs surface at startup.
	if _, err := application.Reports.BuildDashboard(ctx); err != nil {
		baseLogger.Error("initial dashboard build failed", zap.Error(err))
	}

	dashboardHandler := handlers.NewDashboardHandler(application.Reports, application.Narrative, application.Cache, baseLogger.Named("handlers.dashboard"))
	exportHandler := handlers.NewExportHandler(application.Reports, baseLogger.Named("handlers.export"))
	engine := router.New(dashboardHandler, exportHandler, opts, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, application.Reports, application.Narrative, application.Publisher, application.Cache, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("source", cfg.Data.Source))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Data.Source == config.SourceCSV && cfg.Data.Watch {
		w := watcher.New(cfg.Data.Dir, application.Cache, baseLogger.Named("watcher"))
		g.Go(func() error {
			if err := w.Run(gctx); err != nil {
				// The server keeps serving without it; POST /api/cache/clear still works.
				baseLogger.Warn("data directory watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		baseLogger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		baseLogger.Error("server stopped with error", zap.Error(err))
	}
}
