// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/signal-desk/internal/backtest"
	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/database"
	"github.com/yourusername/signal-desk/internal/logger"
	"github.com/yourusername/signal-desk/internal/marketdata"
	"github.com/yourusername/signal-desk/internal/metrics"
	"github.com/yourusername/signal-desk/internal/models"
	"github.com/yourusername/signal-desk/internal/repository"
	"github.com/yourusername/signal-desk/internal/strategy"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		symbol       = flag.String("symbol", "", "Override symbol to backtest")
		strategyName = flag.String("strategy", "", "Override strategy name")
		mode         = flag.String("mode", "all", "Backtest mode: historical, monte-carlo, walk-forward, all")
		output       = flag.String("output", "", "Override output path for results")
		bars         = flag.Int("bars", 500, "Number of historical bars to fetch")
	)
	flag.Parse()

	bootstrap := logrus.New()
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, bootstrap)
	log := logger.NewLogger(cfg.App.LogLevel)
	metrics.InitRegistry()

	btConfig := buildBacktestConfig(cfg, *symbol, *strategyName, *output, log)
	strat := resolveStrategy(btConfig.Strategy, log)

	engine, err := backtest.NewEngine(btConfig, strat, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	series := fetchSeries(ctx, cfg, btConfig.Symbol, *bars, log)

	log.WithFields(logrus.Fields{
		"mode":     *mode,
		"symbol":   btConfig.Symbol,
		"strategy": strat.Name(),
		"bars":     len(series),
	}).Info("Starting backtest")

	runMode(ctx, cfg, engine, btConfig, series, *mode, log)
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
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
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildBacktestConfig(cfg *config.Config, symbol, strategyName, output string, log *logrus.Logger) backtest.Config {
	section := cfg.Backtest
	if symbol != "" {
		section.Symbol = symbol
	}
	if strategyName != "" {
		section.Strategy = strategyName
	}
	if output != "" {
		section.OutputPath = output
	}

	btConfig, err := backtest.FromConfig(&section, cfg.Indicators.ToIndicatorConfig())
	if err != nil {
		log.Fatalf("Invalid backtest config: %v", err)
	}
	return btConfig
}

func resolveStrategy(name string, log *logrus.Logger) strategy.Strategy {
	strat, err := strategy.New(name)
	if err != nil {
		log.Fatalf("Unknown strategy %q, available: %v", name, strategy.Names())
	}
	return strat
}

func fetchSeries(ctx context.Context, cfg *config.Config, symbol string, bars int, log *logrus.Logger) models.PriceSeries {
	httpClient := marketdata.NewRateLimitedHTTPClient(marketdata.HTTPClientConfig{
		Timeout:           cfg.MarketData.RequestTimeout(),
		MaxRetries:        cfg.MarketData.RetryAttempts,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      5 * time.Second,
		RateLimit:         cfg.MarketData.RateLimitPerSecond,
		CircuitBreakerMax: 5,
	}, nil)
	defer httpClient.Close()

	source := marketdata.NewRESTClient(httpClient, cfg.MarketData.APIURL, cfg.MarketData.APIKey, true, nil)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.MarketData.RequestTimeout())
	defer cancel()

	series, err := source.FetchBars(fetchCtx, symbol, cfg.MarketData.Interval, bars)
	if err != nil {
		log.Fatalf("Failed to fetch history for %s: %v", symbol, err)
	}
	return series
}

func runMode(ctx context.Context, cfg *config.Config, engine *backtest.Engine, btConfig backtest.Config, series models.PriceSeries, mode string, log *logrus.Logger) {
	switch mode {
	case "historical":
		runHistorical(ctx, engine, btConfig, series, log)
	case "monte-carlo":
		runMonteCarlo(ctx, engine, btConfig, series, log)
	case "walk-forward":
		runWalkForward(ctx, engine, btConfig, series, log)
	case "all":
		runAllMethods(ctx, cfg, engine, btConfig, series, log)
	default:
		log.Fatalf("Unknown mode %q, expected historical, monte-carlo, walk-forward or all", mode)
	}
}

func runHistorical(ctx context.Context, engine *backtest.Engine, btConfig backtest.Config, series models.PriceSeries, log *logrus.Logger) {
	btLog := logger.NewBacktestLogger(log)
	start := time.Now()

	btLog.LogRunStarted(btConfig.Symbol, btConfig.Strategy, len(series), btConfig.InitialCapital)

	_, report, err := engine.Run(ctx, series)
	if err != nil {
		metrics.RecordBacktestRun("historical", "failure")
		log.Fatalf("Backtest failed: %v", err)
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	btLog.LogRunCompleted(btConfig.Symbol, btConfig.Strategy, report.TotalTrades, report.TotalReturn, report.SharpeRatio, report.MaxDrawdown, durationMs)
	metrics.RecordBacktestRun("historical", "success")
	metrics.RecordBacktestDuration(time.Since(start).Seconds())

	out, err := report.ToJSON()
	if err != nil {
		log.Fatalf("Failed to serialize report: %v", err)
	}
	fmt.Println(out)
}

func runMonteCarlo(ctx context.Context, engine *backtest.Engine, btConfig backtest.Config, series models.PriceSeries, log *logrus.Logger) {
	btLog := logger.NewBacktestLogger(log)

	state, _, err := engine.Run(ctx, series)
	if err != nil {
		metrics.RecordBacktestRun("monte_carlo", "failure")
		log.Fatalf("Backtest failed: %v", err)
	}

	mcResult, err := backtest.RunMonteCarlo(ctx, state.Trades, backtest.MonteCarloConfig{
		Iterations:     btConfig.MonteCarloIterations,
		InitialCapital: btConfig.InitialCapital,
	})
	if err != nil {
		metrics.RecordBacktestRun("monte_carlo", "failure")
		log.Fatalf("Monte Carlo simulation failed: %v", err)
	}

	btLog.LogMonteCarlo(btConfig.Symbol, btConfig.Strategy, mcResult.Iterations, mcResult.MeanReturn*100, mcResult.VaR95*100, mcResult.VaR99*100)
	metrics.RecordBacktestRun("monte_carlo", "success")
	fmt.Println(mcResult.ToJSON())
}

func runWalkForward(ctx context.Context, engine *backtest.Engine, btConfig backtest.Config, series models.PriceSeries, log *logrus.Logger) {
	btLog := logger.NewBacktestLogger(log)

	wfResult, err := backtest.RunWalkForward(ctx, engine, series, backtest.WalkForwardConfig{
		Windows: btConfig.WalkForwardWindows,
	})
	if err != nil {
		metrics.RecordBacktestRun("walk_forward", "failure")
		log.Fatalf("Walk-forward validation failed: %v", err)
	}

	btLog.LogWalkForward(btConfig.Symbol, btConfig.Strategy, len(wfResult.Windows), wfResult.ConsistencyScore)
	metrics.RecordBacktestRun("walk_forward", "success")
	fmt.Println(wfResult.ToJSON())
}

func runAllMethods(ctx context.Context, cfg *config.Config, engine *backtest.Engine, btConfig backtest.Config, series models.PriceSeries, log *logrus.Logger) {
	btLog := logger.NewBacktestLogger(log)
	start := time.Now()

	btLog.LogRunStarted(btConfig.Symbol, btConfig.Strategy, len(series), btConfig.InitialCapital)

	state, report, err := engine.Run(ctx, series)
	if err != nil {
		metrics.RecordBacktestRun("all", "failure")
		log.Fatalf("Backtest failed: %v", err)
	}

	mcResult, err := backtest.RunMonteCarlo(ctx, state.Trades, backtest.MonteCarloConfig{
		Iterations:     btConfig.MonteCarloIterations,
		InitialCapital: btConfig.InitialCapital,
	})
	if err != nil {
		metrics.RecordBacktestRun("all", "failure")
		log.Fatalf("Monte Carlo simulation failed: %v", err)
	}
	btLog.LogMonteCarlo(btConfig.Symbol, btConfig.Strategy, mcResult.Iterations, mcResult.MeanReturn*100, mcResult.VaR95*100, mcResult.VaR99*100)

	wfResult, err := backtest.RunWalkForward(ctx, engine, series, backtest.WalkForwardConfig{
		Windows: btConfig.WalkForwardWindows,
	})
	if err != nil {
		metrics.RecordBacktestRun("all", "failure")
		log.Fatalf("Walk-forward validation failed: %v", err)
	}
	btLog.LogWalkForward(btConfig.Symbol, btConfig.Strategy, len(wfResult.Windows), wfResult.ConsistencyScore)

	aggregated := backtest.AggregateResults(report, mcResult, wfResult, backtest.DefaultWeights())
	btLog.LogAggregation(btConfig.Symbol, btConfig.Strategy, aggregated.CompositeScore, aggregated.Recommendation)

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	btLog.LogRunCompleted(btConfig.Symbol, btConfig.Strategy, report.TotalTrades, report.TotalReturn, report.SharpeRatio, report.MaxDrawdown, durationMs)
	metrics.RecordBacktestRun("all", "success")
	metrics.RecordBacktestDuration(time.Since(start).Seconds())
	metrics.RecordCompositeScore(btConfig.Strategy, "all", aggregated.CompositeScore)
	metrics.UpdateAggregatedScore(btConfig.Strategy, aggregated.CompositeScore)

	fmt.Println(backtest.GenerateConsoleReport(aggregated))

	export := backtest.RunExport{
		Result:      aggregated,
		Trades:      state.Trades,
		EquityCurve: state.EquityCurve,
	}
	if err := backtest.ExportToJSON(export, btConfig.OutputPath); err != nil {
		log.WithError(err).Error("Failed to export results to JSON")
	} else {
		log.WithField("path", btConfig.OutputPath).Info("Results exported")
	}

	if cfg.Features.PersistenceEnabled {
		persistResult(ctx, cfg, aggregated, log)
	}
}

func persistResult(ctx context.Context, cfg *config.Config, result backtest.AggregatedResult, log *logrus.Logger) {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database, skipping result persistence")
		return
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.WithError(err).Error("Failed to initialize repositories")
		return
	}
	if err := backtest.ExportToDatabase(ctx, result, repos.BacktestResult); err != nil {
		log.WithError(err).Error("Failed to persist backtest result")
		return
	}
	log.Info("Backtest result persisted")
}
