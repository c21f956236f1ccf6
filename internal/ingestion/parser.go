package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/logger"
)

// marketHeaders enforces strict column ordering for market-data CSV files,
// matching the upstream feed export one to one. If the header doesn't
// match EXACTLY (order + count), the file is rejected.
var marketHeaders = []string{
	"symbol",
	"tradetime",
	"tradeday",
	"open",
	"high",
	"low",
	"close",
	"volume",
}

// tradeTimeLayouts are the accepted timestamp formats for market rows. The
// feed exports zone-suffixed times; hand-maintained files may carry naive
// local times, which are interpreted in the reference timezone.
var tradeTimeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
}

// ParseMarketDataFile opens and parses one market-data CSV.
//
// It fails on:
//   - header not matching expected order/length
//   - unrecoverable I/O errors
//
// It tolerates, per row:
//   - non-numeric volume (degrades to 0)
//   - malformed prices or timestamps (the row is skipped with a warning; a
//     single bad record never blocks the rest of the day)
func ParseMarketDataFile(path string, loc *time.Location) ([]models.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // checked explicitly per row

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return []models.PricePoint{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, marketHeaders); err != nil {
		return nil, err
	}

	log := logger.With("ingestion")
	points := make([]models.PricePoint, 0, 512)
	line := 1 // header already read

	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(marketHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(marketHeaders), len(rec))
		}

		p, err := recordToPricePoint(rec, loc)
		if err != nil {
			// Data-quality problem in one row: skip it, keep the batch.
			log.Warn().Str("file", path).Int("line", line).Err(err).Msg("skipping bad market row")
			continue
		}
		points = append(points, p)
	}

	return points, nil
}

// recordToPricePoint converts one validated-length CSV record into a
// PricePoint.
//
// Column order:
//
//	0 symbol     → Symbol (string)
//	1 tradetime  → TradeTime (zone-suffixed or naive-in-loc)
//	2 tradeday   → cross-checked only, the bucket key derives from tradetime
//	3..6 open, high, low, close → float64 (required)
//	7 volume     → int64, non-numeric degrades to 0
func recordToPricePoint(rec []string, loc *time.Location) (models.PricePoint, error) {
	var p models.PricePoint

	p.Symbol = strings.TrimSpace(rec[0])

	ts, err := parseTradeTime(strings.TrimSpace(rec[1]), loc)
	if err != nil {
		return p, fmt.Errorf("invalid tradetime: %w", err)
	}
	p.TradeTime = ts

	prices := [4]float64{}
	labels := [4]string{"open", "high", "low", "close"}
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[3+i]), 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s: %v", labels[i], err)
		}
		prices[i] = v
	}
	p.Open, p.High, p.Low, p.Close = prices[0], prices[1], prices[2], prices[3]

	// Volume is best-effort: the feed occasionally emits blanks or junk
	// here and a missing volume must not drop the price information.
	if v, err := strconv.ParseInt(strings.TrimSpace(rec[7]), 10, 64); err == nil && v >= 0 {
		p.Volume = v
	}

	return p, nil
}

func parseTradeTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range tradeTimeLayouts[:2] {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	if ts, err := time.ParseInLocation(tradeTimeLayouts[2], s, loc); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("invalid header length: expected %d, got %d", len(want), len(got))
	}
	for i, h := range got {
		if !strings.EqualFold(strings.TrimSpace(h), want[i]) {
			return fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, want[i], h)
		}
	}
	return nil
}
