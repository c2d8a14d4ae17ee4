// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// RiskConfig holds the tunables of the risk metrics layer. These used to be
// ambient constants; they are explicit configuration so tests can override
// them deterministically.
type RiskConfig struct {
	// RiskFreeRate is the annual risk-free rate in percent. Defaults to 7.0,
	// tracking the 10-year Government of India bond yield.
	RiskFreeRate float64

	// VaRMinObservations is the minimum number of historical daily returns
	// required before VaR is computed from data. Below it, both VaR methods
	// fall back to fixed conservative estimates. Deliberate safety margin —
	// not a knob to remove.
	VaRMinObservations int

	// VaRFallback95Pct / VaRFallback99Pct are the fallback VaR estimates as a
	// percentage of portfolio value when history is insufficient.
	VaRFallback95Pct float64
	VaRFallback99Pct float64

	// VaRTimeHorizonDays scales daily VaR to the reporting horizon via sqrt(t).
	VaRTimeHorizonDays int

	// BenchmarkStdDevFallback is the annualized benchmark volatility (%) used
	// when no benchmark return series is supplied.
	BenchmarkStdDevFallback float64

	// BenchmarkSymbol is the index symbol whose price history supplies the
	// benchmark return series, when present in the history database.
	BenchmarkSymbol string
}

// ScreenerConfig holds the tunables of the rule engine.
type ScreenerConfig struct {
	// MaxPlausiblePE marks valuation ratios above it (or negative) as
	// unreliable. Unreliable ratios are excluded from failing an entry gate
	// rather than propagated as failures. The threshold has no documented
	// derivation; it is named here so it can be revisited without touching
	// rule logic.
	MaxPlausiblePE float64
}

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for the sqlite databases
	LogLevel string
	Port     int
	DevMode  bool

	Risk     RiskConfig
	Screener ScreenerConfig
}

// DefaultRiskConfig returns the production defaults for the risk layer.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		RiskFreeRate:            7.0,
		VaRMinObservations:      30,
		VaRFallback95Pct:        5.0,
		VaRFallback99Pct:        10.0,
		VaRTimeHorizonDays:      1,
		BenchmarkStdDevFallback: 15.0,
		BenchmarkSymbol:         "NIFTY50",
	}
}

// DefaultScreenerConfig returns the production defaults for the rule engine.
func DefaultScreenerConfig() ScreenerConfig {
	return ScreenerConfig{
		MaxPlausiblePE: 100,
	}
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// .env is optional; environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:  getEnv("TRADEIDEA_DATA_DIR", "./data"),
		LogLevel: getEnv("TRADEIDEA_LOG_LEVEL", "info"),
		Port:     getEnvInt("TRADEIDEA_PORT", 8085),
		DevMode:  getEnvBool("TRADEIDEA_DEV_MODE", false),
		Risk:     DefaultRiskConfig(),
		Screener: DefaultScreenerConfig(),
	}

	cfg.Risk.RiskFreeRate = getEnvFloat("TRADEIDEA_RISK_FREE_RATE", cfg.Risk.RiskFreeRate)
	cfg.Risk.VaRTimeHorizonDays = getEnvInt("TRADEIDEA_VAR_HORIZON_DAYS", cfg.Risk.VaRTimeHorizonDays)
	cfg.Risk.BenchmarkSymbol = getEnv("TRADEIDEA_BENCHMARK_SYMBOL", cfg.Risk.BenchmarkSymbol)
	cfg.Screener.MaxPlausiblePE = getEnvFloat("TRADEIDEA_MAX_PLAUSIBLE_PE", cfg.Screener.MaxPlausiblePE)

	absDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data dir: %w", err)
	}
	cfg.DataDir = absDir

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
