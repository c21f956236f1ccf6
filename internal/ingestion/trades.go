package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/logger"
)

// tradeHeaders mirrors the journal export schema.
var tradeHeaders = []string{
	"id",
	"symbol",
	"name",
	"action",
	"action_datetime",
	"action_price",
	"size",
	"fee",
	"stop_loss",
	"exit_target",
	"reason",
	"mental_state",
	"description",
}

// ParseTradesFile opens and parses one journal CSV into trades.
//
// Structure is strict (header order, column count); row content is
// tolerant: rows with an unknown action, a non-positive price/size, or an
// unparseable timestamp are skipped with a warning, and optional numeric
// cells (fee, stop_loss, exit_target) degrade to 0 when malformed. Rows
// without an id get a generated one so downstream matching and report
// listings can key on it.
func ParseTradesFile(path string, loc *time.Location) ([]models.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return []models.Trade{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header, tradeHeaders); err != nil {
		return nil, err
	}

	log := logger.With("ingestion")
	trades := make([]models.Trade, 0, 64)
	line := 1

	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		if len(rec) != len(tradeHeaders) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(tradeHeaders), len(rec))
		}

		tr, err := recordToJournalTrade(rec, loc)
		if err != nil {
			log.Warn().Str("file", path).Int("line", line).Err(err).Msg("skipping bad trade row")
			continue
		}
		trades = append(trades, tr)
	}

	return trades, nil
}

// recordToJournalTrade converts one validated-length CSV record into a
// Trade. Journal entries are written in the reference timezone without a
// zone suffix, so action_datetime parses in loc.
func recordToJournalTrade(rec []string, loc *time.Location) (models.Trade, error) {
	var tr models.Trade

	tr.ID = strings.TrimSpace(rec[0])
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	}

	tr.Symbol = strings.TrimSpace(rec[1])
	tr.Name = strings.TrimSpace(rec[2])
	if tr.Name == "" {
		return tr, fmt.Errorf("empty name")
	}

	action, ok := models.ParseAction(rec[3])
	if !ok {
		return tr, fmt.Errorf("unknown action %q", rec[3])
	}
	tr.Action = action

	ts, err := time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(rec[4]), loc)
	if err != nil {
		return tr, fmt.Errorf("invalid action_datetime: %w", err)
	}
	tr.ActionDateTime = ts

	price, err := strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	if err != nil || price <= 0 {
		return tr, fmt.Errorf("invalid action_price %q", rec[5])
	}
	tr.ActionPrice = price

	size, err := strconv.ParseInt(strings.TrimSpace(rec[6]), 10, 64)
	if err != nil || size < 1 {
		return tr, fmt.Errorf("invalid size %q", rec[6])
	}
	tr.Size = size

	// Optional numerics: empty or junk degrades to 0.
	tr.Fee = optionalFloat(rec[7])
	tr.StopLoss = optionalFloat(rec[8])
	tr.ExitTarget = optionalFloat(rec[9])

	tr.Reason = strings.TrimSpace(rec[10])
	tr.MentalState = strings.TrimSpace(rec[11])
	tr.Description = strings.TrimSpace(rec[12])

	return tr, nil
}

func optionalFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
