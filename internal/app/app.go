package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fangwangme/Mirror/config"
	"github.com/fangwangme/Mirror/internal/domain/dto"
	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/ingestion"
	"github.com/fangwangme/Mirror/internal/service"
)

// App bundles the configured service layer with the runtime settings the
// CLI needs to load data and render reports.
type App struct {
	Cfg     config.Config
	Loc     *time.Location
	Service service.ChartService
}

// InitializeApp sets up all application dependencies from the global
// configuration and returns the wired application.
//
// Responsibilities:
//   - Resolves the reference timezone used for bucketing and session math.
//   - Builds the chart service bound to the configured interval, session
//     window and contract multiplier.
//
// Returns:
//   - *App: the wired application.
//   - error: any initialization error that occurred.
func InitializeApp() (*App, error) {
	cfg := config.AppConfig

	loc, err := time.LoadLocation(cfg.Chart.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Chart.Timezone, err)
	}

	svc, err := service.NewChartService(cfg.Chart)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chart service: %w", err)
	}

	return &App{Cfg: cfg, Loc: loc, Service: svc}, nil
}

// BuildReport loads the last configured trading days of market data for
// symbol from the data directory, optionally joins the trades journal at
// tradesPath, and produces the full chart report.
//
// An empty tradesPath yields a bars-only report.
func (a *App) BuildReport(ctx context.Context, symbol, tradesPath string) (*dto.ChartReport, error) {
	points, err := ingestion.LoadDirectory(ctx, a.Cfg.Data.Dir, symbol, a.Cfg.Data.Days, a.Loc)
	if err != nil {
		return nil, fmt.Errorf("load market data: %w", err)
	}

	trades, err := a.loadTrades(tradesPath)
	if err != nil {
		return nil, err
	}

	return a.Service.BuildChart(symbol, points, trades)
}

func (a *App) loadTrades(path string) ([]models.Trade, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("trades file: %w", err)
	}
	trades, err := ingestion.ParseTradesFile(path, a.Loc)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	return trades, nil
}
