// Package config provides configuration management for the Signal Desk application.
package config

import (
	"os"
	"strings"
	"testing"
)

const (
	validConfigPath            = "testdata/valid_config.yaml"
	expansionConfigPath        = "testdata/expansion_config.yaml"
	expansionConfigMissingPath = "testdata/expansion_config_missing.yaml"
	nonexistentConfigPath      = "testdata/nonexistent_config.yaml"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.App.Name != "signal-desk" {
		t.Errorf("expected app name 'signal-desk', got '%s'", cfg.App.Name)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("expected environment 'development', got '%s'", cfg.App.Environment)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("expected database host 'localhost', got '%s'", cfg.Database.Host)
	}
	if cfg.Backtest.Strategy != "combined" {
		t.Errorf("expected strategy 'combined', got '%s'", cfg.Backtest.Strategy)
	}
	if len(cfg.Dashboard.Watchlist) != 2 {
		t.Errorf("expected 2 watchlist symbols, got %d", len(cfg.Dashboard.Watchlist))
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	if _, err := Load(nonexistentConfigPath); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	os.Setenv("SIGNAL_DESK_APP_NAME", "test-app")
	defer os.Unsetenv("SIGNAL_DESK_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.App.Name != "test-app" {
		t.Errorf("expected app name 'test-app' from environment, got '%s'", cfg.App.Name)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	cfg.App.Environment = "invalid"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidStrategy tests validation of the strategy selector
func TestValidateInvalidStrategy(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	cfg.Backtest.Strategy = "momentum"
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown strategy")
	}
	if !strings.Contains(err.Error(), "Strategy") && !strings.Contains(err.Error(), "strategy") {
		t.Errorf("expected strategy validation error, got: %v", err)
	}
}

// TestValidateInvalidInterval tests validation of the bar interval
func TestValidateInvalidInterval(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	cfg.MarketData.Interval = "7m"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for unsupported interval")
	}
}

// TestValidateCrossFieldIndicators tests indicator threshold ordering
func TestValidateCrossFieldIndicators(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	cfg.Indicators.RSIOversold = 80
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for inverted RSI thresholds")
	}

	cfg, _ = Load(validConfigPath)
	cfg.Indicators.MACDFast = 30
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for fast span above slow span")
	}
}

// TestValidateEmptyWatchlist tests validation of an empty watchlist
func TestValidateEmptyWatchlist(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	cfg.Dashboard.Watchlist = []string{}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected validation error for empty watchlist")
	}
}

// TestGetDatabaseDSN tests DSN generation
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	dsn := cfg.GetDatabaseDSN()
	if !strings.HasPrefix(dsn, "postgres://") {
		t.Errorf("expected DSN to start with 'postgres://', got '%s'", dsn)
	}
	if !strings.Contains(dsn, "signal_desk") {
		t.Errorf("expected DSN to reference the database name, got '%s'", dsn)
	}
}

// TestEnvironmentHelpers tests the environment check functions
func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "development"}}
	if !cfg.IsDevelopment() || cfg.IsProduction() || cfg.IsStaging() {
		t.Error("expected development mode only")
	}

	cfg.App.Environment = "production"
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production mode only")
	}

	cfg.App.Environment = "staging"
	if !cfg.IsStaging() {
		t.Error("expected staging mode")
	}
}

// TestToIndicatorConfig tests conversion to the engine parameter object
func TestToIndicatorConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	ind := cfg.Indicators.ToIndicatorConfig()
	if ind.RSIPeriod != 14 || ind.SupertrendMultiplier != 3.0 || ind.MACDSlow != 26 {
		t.Errorf("indicator config conversion mismatch: %+v", ind)
	}
	if err := ind.Validate(); err != nil {
		t.Fatalf("converted indicator config must be valid, got %v", err)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	os.Setenv("TEST_DB_PASSWORD", "expanded_secret_value")
	defer os.Unsetenv("TEST_DB_PASSWORD")

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}
	if cfg.Database.Password != "expanded_secret_value" {
		t.Errorf("expected password from environment expansion, got '%s'", cfg.Database.Password)
	}
}

// TestLoadConfigMissingEnvironmentVariable tests handling of missing environment variables
func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	os.Unsetenv("TEST_MISSING_VAR")

	cfg, err := Load(expansionConfigMissingPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	// os.ExpandEnv replaces an unset ${VAR} with the empty string
	if cfg.Database.Password != "" && cfg.Database.Password != "${TEST_MISSING_VAR}" {
		t.Logf("note: missing env var became: %q", cfg.Database.Password)
	}
}

// TestOverlaySecretsOnConfig tests applying a secrets overlay
func TestOverlaySecretsOnConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	overlaySecretsOnConfig(cfg, &SecretsOverlay{
		DatabasePassword: "vault-password",
		MarketDataAPIKey: "vault-api-key",
	})
	if cfg.Database.Password != "vault-password" {
		t.Errorf("expected overlaid database password, got '%s'", cfg.Database.Password)
	}
	if cfg.MarketData.APIKey != "vault-api-key" {
		t.Errorf("expected overlaid api key, got '%s'", cfg.MarketData.APIKey)
	}

	// Empty secrets leave the config untouched
	overlaySecretsOnConfig(cfg, &SecretsOverlay{})
	if cfg.Database.Password != "vault-password" {
		t.Error("empty overlay must not clear existing values")
	}
}
