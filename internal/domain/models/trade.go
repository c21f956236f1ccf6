package models

import (
	"strings"
	"time"
)

// TradeAction is the normalized side of a trade. Legacy open/close variants
// (BTO, BTC, STC, STO) collapse onto BUY/SELL at parse time.
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// ParseAction maps a raw action string onto BUY or SELL.
//
// BTO (buy to open) and BTC (buy to close) are buys; STC (sell to close)
// and STO (sell to open) are sells. The second return value is false for
// anything else.
func ParseAction(raw string) (TradeAction, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY", "BTO", "BTC":
		return ActionBuy, true
	case "SELL", "STC", "STO":
		return ActionSell, true
	default:
		return "", false
	}
}

// Trade represents one journal entry: a single option or equity execution
// together with the trader's own notes.
//
// Fields mirror the journal schema one to one:
//   - ID: unique identifier (assigned at ingestion when absent).
//   - Symbol: underlying ticker (e.g., "SPY").
//   - Name: instrument identifier as entered by the trader
//     (e.g., "SPY 400 Call 7/21"); grouping is exact and case-sensitive.
//   - Action: normalized BUY/SELL side.
//   - ActionDateTime: absolute instant of the execution.
//   - ActionPrice: execution price, > 0.
//   - Size: number of contracts/shares, > 0.
//   - Fee: commission for this execution, >= 0.
//   - StopLoss / ExitTarget: optional plan levels, 0 when unset.
//   - Reason / MentalState / Description: free-text journal fields.
type Trade struct {
	ID             string
	Symbol         string
	Name           string
	Action         TradeAction
	ActionDateTime time.Time
	ActionPrice    float64
	Size           int64
	Fee            float64
	StopLoss       float64
	ExitTarget     float64
	Reason         string
	MentalState    string
	Description    string
}

// Value is the notional of the execution without any contract multiplier.
func (t Trade) Value() float64 {
	return t.ActionPrice * float64(t.Size)
}

// SequencedTrade is a trade that falls inside the trading session window,
// numbered 1..N by execution time within one reconciliation pass.
type SequencedTrade struct {
	Trade
	SessionSeq int
}

// NameSummary is the aggregate-sum realized P&L for one instrument name.
//
// RealizedPnL = SellValue - BuyValue - TotalFees. The accumulation is a
// pure sum, so the result does not depend on event ordering.
type NameSummary struct {
	Name        string
	TotalTrades int
	BuyValue    float64
	SellValue   float64
	TotalFees   float64
	RealizedPnL float64
}

// MatchedPair is one closed round trip produced by FIFO matching: a SELL
// paired with the earliest unmatched same-size BUY of the same name.
type MatchedPair struct {
	Name      string
	BuyID     string
	SellID    string
	Size      int64
	BuyPrice  float64
	SellPrice float64
	Profit    float64
}

// MarkerPosition tells the chart where to draw a trade marker relative to
// its bar.
type MarkerPosition string

const (
	PositionBelowBar MarkerPosition = "belowBar"
	PositionAboveBar MarkerPosition = "aboveBar"
)

// Overlay is a chart annotation for one trade, keyed to the bar bucket the
// trade's execution time falls into.
type Overlay struct {
	Time     time.Time
	Price    float64
	Position MarkerPosition
	Color    string
	Shape    string
	Text     string
}
