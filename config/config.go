package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns:
// chart computation settings and local data-file locations.
//
// Example ENV equivalent:
//
//	TIMEZONE=America/New_York
//	INTERVAL_MINUTES=2
//	CONTRACT_MULTIPLIER=100
//	SESSION_OPEN=09:30
//	SESSION_CLOSE=16:00
//	AGGREGATE_ORDER=input
//	DATA_DIR=./data
//	INGEST_DAYS=5
type Config struct {
	Chart ChartConfig // bar aggregation & reconciliation settings
	Data  DataConfig  // CSV data-file locations
}

// ChartConfig is the configuration surface consumed by the computation
// core.
//
// Fields:
//   - Timezone: IANA id of the reference timezone; every bucket boundary
//     and the session window are computed on this clock.
//   - IntervalMinutes: bar width (the UI offers 1, 2, 5, 10; the core only
//     requires positivity).
//   - ContractMultiplier: per-contract multiplier for matched-pair P&L
//     (options conventionally 100, equities 1).
//   - SessionOpen / SessionClose: local "HH:MM" bounds of the trading
//     session used for sequence numbering.
//   - AggregateOrder: "input" or "timestamp"; governs which point supplies
//     a bucket's open/close when several map to the same bucket.
type ChartConfig struct {
	Timezone           string
	IntervalMinutes    int
	ContractMultiplier float64
	SessionOpen        string
	SessionClose       string
	AggregateOrder     string
}

// DataConfig points at the local CSV files the CLI loads in place of the
// excluded storage collaborator.
type DataConfig struct {
	Dir  string // directory with SYMBOL_YYYY-MM-DD.csv market files
	Days int    // how many trailing trading days to load
}

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (lowest to highest):
//  1. Defaults set here.
//  2. Values from a .env file, if present.
//  3. Environment variables.
//
// Fatal exit:
//   - validateConfig() terminates the process with a descriptive message
//     when required fields are missing or structurally invalid; a bad
//     configuration is a deployment error, not a data-quality condition.
func LoadConfig() {
	viper.SetDefault("TIMEZONE", "America/New_York")
	viper.SetDefault("INTERVAL_MINUTES", 2)
	viper.SetDefault("CONTRACT_MULTIPLIER", 100.0)
	viper.SetDefault("SESSION_OPEN", "09:30")
	viper.SetDefault("SESSION_CLOSE", "16:00")
	viper.SetDefault("AGGREGATE_ORDER", "input")

	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("INGEST_DAYS", 5)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Chart: ChartConfig{
			Timezone:           viper.GetString("TIMEZONE"),
			IntervalMinutes:    viper.GetInt("INTERVAL_MINUTES"),
			ContractMultiplier: viper.GetFloat64("CONTRACT_MULTIPLIER"),
			SessionOpen:        viper.GetString("SESSION_OPEN"),
			SessionClose:       viper.GetString("SESSION_CLOSE"),
			AggregateOrder:     strings.ToLower(viper.GetString("AGGREGATE_ORDER")),
		},
		Data: DataConfig{
			Dir:  viper.GetString("DATA_DIR"),
			Days: viper.GetInt("INGEST_DAYS"),
		},
	}

	validateConfig()
}

// validateConfig ensures required variables are present and structurally
// sane, terminating the application otherwise.
func validateConfig() {
	var missing []string

	if AppConfig.Chart.Timezone == "" {
		missing = append(missing, "TIMEZONE")
	}
	if AppConfig.Chart.IntervalMinutes < 1 {
		missing = append(missing, "INTERVAL_MINUTES (must be >= 1)")
	}
	if AppConfig.Chart.ContractMultiplier <= 0 {
		missing = append(missing, "CONTRACT_MULTIPLIER (must be > 0)")
	}
	if AppConfig.Chart.SessionOpen == "" {
		missing = append(missing, "SESSION_OPEN")
	}
	if AppConfig.Chart.SessionClose == "" {
		missing = append(missing, "SESSION_CLOSE")
	}
	if o := AppConfig.Chart.AggregateOrder; o != "input" && o != "timestamp" {
		missing = append(missing, "AGGREGATE_ORDER (must be input or timestamp)")
	}
	if AppConfig.Data.Dir == "" {
		missing = append(missing, "DATA_DIR")
	}
	if AppConfig.Data.Days < 1 {
		missing = append(missing, "INGEST_DAYS (must be >= 1)")
	}

	if len(missing) > 0 {
		log.Fatalf("Missing or invalid configuration: %v\n", missing)
	}
}
