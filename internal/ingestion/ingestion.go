package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/logger"
)

const (
	fileDateLayout = "2006-01-02"
	fileExtension  = ".csv"
	maxParallelCap = 7
)

// MarketFileName builds the expected market-data file name for one symbol
// and day: "SYMBOL_YYYY-MM-DD.csv", one file per trading day.
func MarketFileName(symbol string, day time.Time) string {
	return fmt.Sprintf("%s_%s%s", symbol, day.Format(fileDateLayout), fileExtension)
}

// LoadDirectory loads market-data CSVs for the last nDays trading days of
// symbol from dir, concurrently, and returns the concatenated points in
// ascending day order.
//
// Behavior:
//   - Trading days come from the NYSE calendar (LastNBusinessDays).
//   - Files are loaded in parallel, capped at min(7, NumCPU).
//   - A missing file is logged and skipped: "no data for this day" is an
//     expected condition, not an error.
//   - A parse failure (structural, not row-level) cancels the remaining
//     loads and returns that error.
func LoadDirectory(ctx context.Context, dir, symbol string, nDays int, loc *time.Location) ([]models.PricePoint, error) {
	if nDays < 1 {
		nDays = 1
	}
	days := LastNBusinessDays(nDays, time.Now().In(loc))
	// LastNBusinessDays is most-recent-first; load oldest first so the
	// concatenated points come out in ascending day order.
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	log := logger.With("ingestion")
	log.Info().Str("dir", dir).Str("symbol", symbol).Int("days", len(days)).Msg("loading market data")

	maxParallel := maxParallelCap
	if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	results := make([][]models.PricePoint, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, day := range days {
		idx := i
		d := day
		g.Go(func() error {
			points, err := loadDayFile(gctx, filepath.Join(dir, MarketFileName(symbol, d)), loc)
			if err != nil {
				return err
			}
			results[idx] = points
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.PricePoint
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// loadDayFile loads one day's market-data file. The context check runs
// before any file work so that once a sibling load has failed, the
// remaining queued loads return immediately instead of parsing their
// files.
func loadDayFile(ctx context.Context, path string, loc *time.Location) ([]models.PricePoint, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	log := logger.With("ingestion")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("file", filepath.Base(path)).Msg("no data for day, skipping")
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	start := time.Now()
	points, err := ParseMarketDataFile(path, loc)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	log.Info().Str("file", filepath.Base(path)).Int("rows", len(points)).Dur("elapsed", time.Since(start)).Msg("file loaded")
	return points, nil
}
