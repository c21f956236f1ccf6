package journal

import "github.com/fangwangme/Mirror/internal/domain/models"

// MatchPairs computes matched-pair realized P&L for symmetrical round
// trips. Each SELL is paired with the earliest unmatched BUY of the same
// name and size seen before it in input order (first-unmatched FIFO);
// unmatched trades contribute nothing until closed by a later pass.
//
// Pair profit = (sellPrice - buyPrice) * size * contractMultiplier
// minus both legs' fees. The multiplier is configuration: options
// contracts conventionally 100, equities 1.
//
// The second return value is the total over all pairs. Unlike Summarize,
// this mode is order-sensitive.
func MatchPairs(trades []models.Trade, contractMultiplier float64) ([]models.MatchedPair, float64) {
	type openBuy struct {
		trade   models.Trade
		matched bool
	}

	open := make(map[string][]*openBuy)
	pairs := make([]models.MatchedPair, 0)
	var total float64

	for _, tr := range trades {
		switch tr.Action {
		case models.ActionBuy:
			open[tr.Name] = append(open[tr.Name], &openBuy{trade: tr})

		case models.ActionSell:
			for _, ob := range open[tr.Name] {
				if ob.matched || ob.trade.Size != tr.Size {
					continue
				}
				ob.matched = true
				profit := (tr.ActionPrice-ob.trade.ActionPrice)*float64(tr.Size)*contractMultiplier - ob.trade.Fee - tr.Fee
				pairs = append(pairs, models.MatchedPair{
					Name:      tr.Name,
					BuyID:     ob.trade.ID,
					SellID:    tr.ID,
					Size:      tr.Size,
					BuyPrice:  ob.trade.ActionPrice,
					SellPrice: tr.ActionPrice,
					Profit:    profit,
				})
				total += profit
				break
			}
		}
	}
	return pairs, total
}
