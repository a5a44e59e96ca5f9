// Package config provides configuration management for the Signal Desk application.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/signal-desk/internal/indicator"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	MarketData MarketDataConfig `mapstructure:"market_data" validate:"required"`
	Indicators IndicatorsConfig `mapstructure:"indicators" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// MarketDataConfig represents market data provider configuration
type MarketDataConfig struct {
	APIURL                string  `mapstructure:"api_url" validate:"required,url"`
	StreamURL             string  `mapstructure:"stream_url" validate:"required"`
	APIKey                string  `mapstructure:"api_key"`
	Interval              string  `mapstructure:"interval" validate:"required,interval"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond    float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	CacheTTLSeconds       int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c MarketDataConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the series cache TTL as a duration.
func (c MarketDataConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// IndicatorsConfig represents indicator parameters
type IndicatorsConfig struct {
	RSIPeriod            int     `mapstructure:"rsi_period" validate:"required,gt=0"`
	RSIOversold          float64 `mapstructure:"rsi_oversold" validate:"required,gt=0,lt=100"`
	RSIOverbought        float64 `mapstructure:"rsi_overbought" validate:"required,gt=0,lt=100"`
	SupertrendPeriod     int     `mapstructure:"supertrend_period" validate:"required,gt=0"`
	SupertrendMultiplier float64 `mapstructure:"supertrend_multiplier" validate:"required,gt=0"`
	MACDFast             int     `mapstructure:"macd_fast" validate:"required,gt=0"`
	MACDSlow             int     `mapstructure:"macd_slow" validate:"required,gt=0"`
	MACDSignal           int     `mapstructure:"macd_signal" validate:"required,gt=0"`
}

// ToIndicatorConfig converts the section to the engine's parameter object.
func (c IndicatorsConfig) ToIndicatorConfig() indicator.Config {
	return indicator.Config{
		RSIPeriod:            c.RSIPeriod,
		RSIOversold:          c.RSIOversold,
		RSIOverbought:        c.RSIOverbought,
		SupertrendPeriod:     c.SupertrendPeriod,
		SupertrendMultiplier: c.SupertrendMultiplier,
		MACDFast:             c.MACDFast,
		MACDSlow:             c.MACDSlow,
		MACDSignal:           c.MACDSignal,
	}
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	Symbol               string  `mapstructure:"symbol" validate:"required"`
	Strategy             string  `mapstructure:"strategy" validate:"required,strategy"`
	InitialCapital       float64 `mapstructure:"initial_capital" validate:"required,gt=0"`
	PositionFraction     float64 `mapstructure:"position_fraction" validate:"required,gt=0,lte=1"`
	CommissionRate       float64 `mapstructure:"commission_rate" validate:"gte=0,lte=0.1"`
	SlippageRate         float64 `mapstructure:"slippage_rate" validate:"gte=0,lte=0.1"`
	AllowShort           bool    `mapstructure:"allow_short"`
	MonteCarloIterations int     `mapstructure:"monte_carlo_iterations" validate:"required,gt=0"`
	WalkForwardWindows   int     `mapstructure:"walk_forward_windows" validate:"required,gt=0"`
	OutputPath           string  `mapstructure:"output_path" validate:"required"`
}

// DashboardConfig represents the live signal evaluation configuration
type DashboardConfig struct {
	Watchlist          []string `mapstructure:"watchlist" validate:"required,min=1"`
	EvaluationSchedule string   `mapstructure:"evaluation_schedule" validate:"required"`
	HistoryBars        int      `mapstructure:"history_bars" validate:"required,gt=0"`
	MinAlertConfidence float64  `mapstructure:"min_alert_confidence" validate:"gte=0,lte=100"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	LiveStreamEnabled  bool `mapstructure:"live_stream_enabled"`
	PersistenceEnabled bool `mapstructure:"persistence_enabled"`
	AlertsEnabled      bool `mapstructure:"alerts_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
