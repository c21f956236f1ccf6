package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/fangwangme/Mirror/config"
	"github.com/fangwangme/Mirror/internal/app"
	"github.com/fangwangme/Mirror/internal/ingestion"
	"github.com/fangwangme/Mirror/internal/logger"
)

// writeJSON renders v as indented JSON to stdout, or to path when one is
// given.
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// main is the entry point of the journal chart builder.
//
// Modes (selected via --mode flag):
//   - report: Builds the full chart report (bars, sequenced trades, P&L,
//     matched pairs, markers) for one symbol.
//   - bars:   Aggregates market data into OHLCV bars only.
//
// Flags:
//   - --mode:    Execution mode ("report" or "bars"). Default: "report".
//   - --symbol:  Ticker symbol whose market-data files to load. Required.
//   - --dir:     Directory with SYMBOL_YYYY-MM-DD.csv files. Defaults to DATA_DIR.
//   - --days:    Number of last trading days to load. Defaults to INGEST_DAYS.
//   - --trades:  Path to the trades journal CSV. Optional; report mode only.
//   - --out:     Output file for the JSON result. Default: stdout.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "report", "Mode: report or bars")
	symbol := flag.String("symbol", "", "Ticker symbol to build the chart for")
	dir := flag.String("dir", config.AppConfig.Data.Dir, "Directory with market-data CSV files")
	days := flag.Int("days", config.AppConfig.Data.Days, "Number of last trading days to load")
	tradesPath := flag.String("trades", "", "Path to the trades journal CSV (report mode)")
	out := flag.String("out", "", "Write JSON output to this file instead of stdout")
	flag.Parse()

	if *symbol == "" {
		logger.L().Fatal().Msg("--symbol is required")
	}
	if *days < 1 {
		*days = 1
	}
	config.AppConfig.Data.Dir = *dir
	config.AppConfig.Data.Days = *days

	a, err := app.InitializeApp()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	switch *mode {
	case "report":
		report, err := a.BuildReport(ctx, *symbol, *tradesPath)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}
		if err := writeJSON(report, *out); err != nil {
			logger.L().Fatal().Err(err).Msg("write output")
		}
		logger.L().Info().Str("symbol", *symbol).Int("bars", len(report.Bars)).Int("trades", len(report.Trades)).Msg("report completed")

	case "bars":
		points, err := ingestion.LoadDirectory(ctx, a.Cfg.Data.Dir, *symbol, a.Cfg.Data.Days, a.Loc)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("load market data")
		}
		bars, err := a.Service.Bars(points)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("aggregation failed")
		}
		if err := writeJSON(bars, *out); err != nil {
			logger.L().Fatal().Err(err).Msg("write output")
		}
		logger.L().Info().Str("symbol", *symbol).Int("points", len(points)).Int("bars", len(bars)).Msg("aggregation completed")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
