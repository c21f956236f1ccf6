package journal

import "github.com/fangwangme/Mirror/internal/domain/models"

// Summarize computes the aggregate-sum realized P&L: trades grouped by
// exact name, BUY notionals accumulated into BuyValue, SELL notionals into
// SellValue, fees into TotalFees regardless of side.
//
// RealizedPnL per name = SellValue - BuyValue - TotalFees, and the second
// return value is the sum over all names. Accumulation is a pure sum, so
// the result does not depend on event ordering (contrast MatchPairs).
//
// Trades with an unrecognized action are skipped; a single bad record never
// blocks the batch. Summaries are returned in first-appearance order.
func Summarize(trades []models.Trade) ([]models.NameSummary, float64) {
	byName := make(map[string]*models.NameSummary)
	order := make([]string, 0, len(trades))

	for _, tr := range trades {
		if tr.Action != models.ActionBuy && tr.Action != models.ActionSell {
			continue
		}
		s, ok := byName[tr.Name]
		if !ok {
			s = &models.NameSummary{Name: tr.Name}
			byName[tr.Name] = s
			order = append(order, tr.Name)
		}
		if tr.Action == models.ActionBuy {
			s.BuyValue += tr.Value()
		} else {
			s.SellValue += tr.Value()
		}
		s.TotalFees += tr.Fee
		s.TotalTrades++
	}

	out := make([]models.NameSummary, 0, len(order))
	var total float64
	for _, name := range order {
		s := byName[name]
		s.RealizedPnL = s.SellValue - s.BuyValue - s.TotalFees
		total += s.RealizedPnL
		out = append(out, *s)
	}
	return out, total
}
