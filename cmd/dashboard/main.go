// Package main provides the entry point for the signal dashboard service.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/database"
	"github.com/yourusername/signal-desk/internal/health"
	"github.com/yourusername/signal-desk/internal/logger"
	"github.com/yourusername/signal-desk/internal/marketdata"
	"github.com/yourusername/signal-desk/internal/metrics"
	"github.com/yourusername/signal-desk/internal/repository"
	"github.com/yourusername/signal-desk/internal/scheduler"
	"github.com/yourusername/signal-desk/internal/service"
)

const signalRetentionAge = 30 * 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	auditLog := logger.NewAuditLogger(appLog)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"watchlist":   len(cfg.Dashboard.Watchlist),
	}).Info("Signal Desk dashboard starting")

	registry := metrics.InitRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection when persistence is on
	var (
		db         *database.DB
		signalRepo repository.SignalRepository
	)
	if cfg.Features.PersistenceEnabled {
		db, err = database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
		signalRepo = repos.Signal

		appLog.Info("Database connection established")
	} else {
		appLog.Info("Persistence disabled; signals will not be stored")
	}

	// Initialize market data source with caching
	httpLogger := log.New(os.Stdout, "market-data: ", log.LstdFlags)
	httpClient := marketdata.NewRateLimitedHTTPClient(marketdata.HTTPClientConfig{
		Timeout:           cfg.MarketData.RequestTimeout(),
		MaxRetries:        cfg.MarketData.RetryAttempts,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         cfg.MarketData.RateLimitPerSecond,
		CircuitBreakerMax: 5,
	}, httpLogger)
	defer httpClient.Close()

	restClient := marketdata.NewRESTClient(httpClient, cfg.MarketData.APIURL, cfg.MarketData.APIKey, true, httpLogger)
	seriesCache := marketdata.NewSeriesCache(cfg.MarketData.CacheTTL())
	source := marketdata.NewCachedSource(restClient, seriesCache)

	appLog.WithFields(logrus.Fields{
		"api_url":   cfg.MarketData.APIURL,
		"interval":  cfg.MarketData.Interval,
		"cache_ttl": cfg.MarketData.CacheTTL().String(),
	}).Info("Market data source initialized")

	// Initialize evaluator and scheduler
	evaluator := service.NewEvaluatorService(source, signalRepo, cfg, appLog)

	sched := scheduler.NewScheduler(evaluator, appLog)
	if err := sched.ScheduleEvaluations(cfg.Dashboard.EvaluationSchedule); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule watchlist evaluations")
	}
	if cfg.Features.PersistenceEnabled && signalRepo != nil {
		if err := sched.ScheduleSignalRetention("0 3 * * *", signalRetentionAge, signalRepo.DeleteOlderThan); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule signal retention")
		}
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	auditLog.LogSchedulerEvent("started", cfg.Dashboard.EvaluationSchedule, len(cfg.Dashboard.Watchlist))

	// Start live feed when enabled
	var liveFeed *service.LiveFeedService
	if cfg.Features.LiveStreamEnabled {
		streamLogger := log.New(os.Stdout, "market-stream: ", log.LstdFlags)
		stream := marketdata.NewStreamClient(cfg.MarketData.StreamURL, cfg.MarketData.APIKey, streamLogger)
		liveFeed = service.NewLiveFeedService(stream, seriesCache, evaluator, cfg, appLog)

		if err := liveFeed.Start(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to start live feed")
		}
	} else {
		appLog.Info("Live stream disabled; running on schedule only")
	}

	// Start health check server
	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Logger:      appLog,
	}
	if db != nil {
		healthCfg.DB = db
	}
	healthServer := health.NewServer(healthCfg)
	healthServer.AddCheck("scheduler", func(context.Context) error {
		if !sched.IsRunning() {
			return fmt.Errorf("scheduler not running")
		}
		return nil
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Expose Prometheus metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			appLog.WithFields(logrus.Fields{
				"port": cfg.Metrics.Port,
				"path": cfg.Metrics.Path,
			}).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server failed")
			}
		}()
	}

	healthServer.SetReady(true)
	appLog.WithFields(logrus.Fields{
		"live_stream": cfg.Features.LiveStreamEnabled,
		"persistence": cfg.Features.PersistenceEnabled,
		"alerts":      cfg.Features.AlertsEnabled,
		"next_run":    sched.GetNextRun(),
	}).Info("Dashboard is running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	appLog.WithField("signal", sig).Info("Shutdown signal received")
	auditLog.LogShutdown(sig.String(), map[string]interface{}{
		"scheduler_running": sched.IsRunning(),
		"watchlist_size":    len(cfg.Dashboard.Watchlist),
	})

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	if liveFeed != nil {
		if err := liveFeed.Stop(); err != nil {
			appLog.WithError(err).Error("Error stopping live feed")
		}
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error stopping metrics server")
		}
		shutdownCancel()
	}
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error stopping health server")
	}

	appLog.Info("Signal Desk dashboard shut down successfully")
}
