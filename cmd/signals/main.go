package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/signal-desk/internal/config"
	"github.com/yourusername/signal-desk/internal/database"
	"github.com/yourusername/signal-desk/internal/logger"
	"github.com/yourusername/signal-desk/internal/marketdata"
	"github.com/yourusername/signal-desk/internal/models"
	"github.com/yourusername/signal-desk/internal/repository"
	"github.com/yourusername/signal-desk/internal/service"
	"github.com/yourusername/signal-desk/internal/strategy"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	appLog     *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "signals",
	Short: "Inspect and evaluate trading signals",
	Long:  `One-shot access to the signal engine: evaluate watchlist symbols on demand and inspect persisted signal history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return loadConfig()
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [symbol...]",
	Short: "Evaluate symbols and print fused signals",
	Long:  `Fetches fresh history for the given symbols (or the configured watchlist) and prints the fused signal for each.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		symbols := args
		if len(symbols) == 0 {
			symbols = cfg.Dashboard.Watchlist
		}
		return evaluateSymbols(symbols)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest <symbol>",
	Short: "Show the most recent persisted signals for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showLatest(args[0])
	},
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available backtest strategies",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range strategy.Names() {
			fmt.Println(name)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("signals %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog = logger.NewLogger("warn")
	return nil
}

func evaluateSymbols(symbols []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

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
	evaluator := service.NewEvaluatorService(source, nil, cfg, appLog)

	var failures int
	for _, symbol := range symbols {
		fused, err := evaluator.EvaluateSymbol(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", symbol, err)
			failures++
			continue
		}
		printSignal(fused)
	}

	if failures == len(symbols) {
		return fmt.Errorf("all %d evaluations failed", failures)
	}
	return nil
}

func printSignal(fused *models.FusedSignal) {
	fmt.Printf("%-10s %-12s %6.1f%%", fused.Symbol, fused.Direction, fused.Confidence)

	votes := make([]string, 0, len(fused.Votes))
	for _, vote := range fused.Votes {
		votes = append(votes, fmt.Sprintf("%s=%s", vote.Source, vote.Direction))
	}
	fmt.Printf("  [%s]\n", strings.Join(votes, " "))
}

func showLatest(symbol string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	signals, err := repos.Signal.GetLatestBySymbol(ctx, symbol, 10)
	if err != nil {
		return fmt.Errorf("failed to fetch signals: %w", err)
	}
	if len(signals) == 0 {
		fmt.Printf("No persisted signals for %s\n", symbol)
		return nil
	}

	for _, sig := range signals {
		fmt.Printf("%s  %-10s %-12s %6.1f%%\n",
			sig.Timestamp.UTC().Format(time.RFC3339), sig.Symbol, sig.Direction, sig.Confidence)
	}
	return nil
}
