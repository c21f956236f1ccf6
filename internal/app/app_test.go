package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fangwangme/Mirror/config"
	"github.com/fangwangme/Mirror/internal/ingestion"
)

func chartDefaults() config.ChartConfig {
	return config.ChartConfig{
		Timezone:           "America/New_York",
		IntervalMinutes:    2,
		ContractMultiplier: 100,
		SessionOpen:        "09:30",
		SessionClose:       "16:00",
		AggregateOrder:     "input",
	}
}

// TestInitializeApp_BadTimezone ensures InitializeApp returns an error for
// an unresolvable timezone id.
func TestInitializeApp_BadTimezone(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })

	cfg := chartDefaults()
	cfg.Timezone = "Mars/Olympus_Mons"
	config.AppConfig = config.Config{Chart: cfg, Data: config.DataConfig{Dir: ".", Days: 1}}

	if _, err := InitializeApp(); err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestInitializeApp_BadInterval(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })

	cfg := chartDefaults()
	cfg.IntervalMinutes = 0
	config.AppConfig = config.Config{Chart: cfg, Data: config.DataConfig{Dir: ".", Days: 1}}

	if _, err := InitializeApp(); err == nil {
		t.Fatal("expected interval error")
	}
}

// TestBuildReport_EndToEnd wires real CSV files through ingestion and the
// chart service.
func TestBuildReport_EndToEnd(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })

	dir := t.TempDir()
	config.AppConfig = config.Config{Chart: chartDefaults(), Data: config.DataConfig{Dir: dir, Days: 1}}

	a, err := InitializeApp()
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	day := ingestion.LastNBusinessDays(1, time.Now().In(a.Loc))[0]
	ds := day.Format("2006-01-02")

	marketCSV := "symbol,tradetime,tradeday,open,high,low,close,volume\n" +
		"SPY," + ds + " 09:30:00," + ds + ",470,470.5,469.8,470.2,1000\n" +
		"SPY," + ds + " 09:31:00," + ds + ",470.2,471,470.1,470.9,800\n"
	writeFile(t, filepath.Join(dir, ingestion.MarketFileName("SPY", day)), marketCSV)

	tradesCSV := "id,symbol,name,action,action_datetime,action_price,size,fee,stop_loss,exit_target,reason,mental_state,description\n" +
		"t1,SPY,SPY 470 CALL,BUY," + ds + " 09:31:00,2.45,2,1.3,,,breakout,calm,\n"
	tradesPath := filepath.Join(dir, "trades.csv")
	writeFile(t, tradesPath, tradesCSV)

	report, err := a.BuildReport(context.Background(), "SPY", tradesPath)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Symbol != "SPY" {
		t.Fatalf("symbol: got %q", report.Symbol)
	}
	if len(report.Bars) != 1 {
		t.Fatalf("want 1 two-minute bar, got %d", len(report.Bars))
	}
	if len(report.Trades) != 1 || report.Trades[0].SessionSeq != 1 {
		t.Fatalf("unexpected trades: %+v", report.Trades)
	}
	if len(report.Markers) != 1 {
		t.Fatalf("want 1 marker, got %d", len(report.Markers))
	}
}

// TestBuildReport_NoTrades produces a bars-only report when no trades file
// is supplied.
func TestBuildReport_NoTrades(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })

	dir := t.TempDir()
	config.AppConfig = config.Config{Chart: chartDefaults(), Data: config.DataConfig{Dir: dir, Days: 1}}

	a, err := InitializeApp()
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	report, err := a.BuildReport(context.Background(), "SPY", "")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Bars) != 0 || len(report.Trades) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}

func TestBuildReport_MissingTradesFile(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })

	dir := t.TempDir()
	config.AppConfig = config.Config{Chart: chartDefaults(), Data: config.DataConfig{Dir: dir, Days: 1}}

	a, err := InitializeApp()
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := a.BuildReport(context.Background(), "SPY", filepath.Join(dir, "nope.csv")); err == nil {
		t.Fatal("expected error for missing trades file")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
