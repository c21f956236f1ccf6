package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/marketdata"
)

// markerColors is the chart palette keyed by ACTION_OPTIONTYPE category.
var markerColors = map[string]string{
	"BUY_CALL":  "#26a69a",
	"BUY_PUT":   "#4CAF50",
	"SELL_CALL": "#ef5350",
	"SELL_PUT":  "#f44336",
}

// defaultMarkerColor renders categories missing from the palette; an
// unknown category must never fail the overlay pass.
const defaultMarkerColor = "#9E9E9E"

const markerShape = "circle"

// optionType infers CALL or PUT from the instrument name. Names containing
// the case-insensitive substring "put" are puts; everything else, equities
// included, defaults to CALL.
func optionType(name string) string {
	if strings.Contains(strings.ToLower(name), "put") {
		return "PUT"
	}
	return "CALL"
}

// BuildOverlays converts trades into time-aligned chart annotations.
//
// Each trade is keyed to the bar bucket its execution time falls into,
// computed with marketdata.BucketStart so markers land on bars the
// aggregator actually produced. Direction is BUY below the bar, SELL above
// it; color comes from the category palette with a neutral fallback.
//
// Trades with an unrecognized action are skipped. Returns an error only
// for invalid configuration.
func BuildOverlays(trades []models.Trade, intervalMinutes int, loc *time.Location) ([]models.Overlay, error) {
	if intervalMinutes < 1 {
		return nil, fmt.Errorf("overlays: interval must be at least 1 minute, got %d", intervalMinutes)
	}
	if loc == nil {
		return nil, fmt.Errorf("overlays: reference timezone is required")
	}

	out := make([]models.Overlay, 0, len(trades))
	for _, tr := range trades {
		if tr.Action != models.ActionBuy && tr.Action != models.ActionSell {
			continue
		}

		category := fmt.Sprintf("%s_%s", tr.Action, optionType(tr.Name))
		color, ok := markerColors[category]
		if !ok {
			color = defaultMarkerColor
		}

		position := models.PositionAboveBar
		if tr.Action == models.ActionBuy {
			position = models.PositionBelowBar
		}

		out = append(out, models.Overlay{
			Time:     marketdata.BucketStart(tr.ActionDateTime, intervalMinutes, loc),
			Price:    tr.ActionPrice,
			Position: position,
			Color:    color,
			Shape:    markerShape,
			Text:     fmt.Sprintf("%s %dx @ %g", tr.Action, tr.Size, tr.ActionPrice),
		})
	}
	return out, nil
}
