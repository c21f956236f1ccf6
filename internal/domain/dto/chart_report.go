package dto

// ChartReport is the JSON payload handed to the charting/table collaborator.
//
// Fields match the presentation contract and may differ from internal
// domain models. This keeps the rendering surface loosely coupled from the
// computation core.
type ChartReport struct {
	Symbol          string         `json:"symbol"`
	IntervalMinutes int            `json:"interval_minutes"`
	Timezone        string         `json:"timezone"`
	Bars            []Bar          `json:"bars"`
	Trades          []Trade        `json:"trades"`
	Summaries       []NameSummary  `json:"summaries"`
	TotalPnL        float64        `json:"total_pnl"`
	MatchedPairs    []MatchedPair  `json:"matched_pairs"`
	MatchedPnL      float64        `json:"matched_pnl"`
	Markers         []Marker       `json:"markers"`
}

// Bar matches the candlestick-series shape the chart widget consumes:
// time is Unix seconds of the bucket start.
type Bar struct {
	Time   int64   `json:"time" example:"1704205800"`
	Open   float64 `json:"open" example:"470.21"`
	High   float64 `json:"high" example:"470.85"`
	Low    float64 `json:"low" example:"470.02"`
	Close  float64 `json:"close" example:"470.64"`
	Volume int64   `json:"volume" example:"152300"`
}

// Trade is one sequenced journal row. SessionSeq is 0 for trades outside
// the session window.
type Trade struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol" example:"SPY"`
	Name        string  `json:"name" example:"SPY 470 Call 1/5"`
	Action      string  `json:"action" example:"BUY"`
	ActionTime  string  `json:"action_datetime" example:"2024-01-02 09:31:00"`
	ActionPrice float64 `json:"action_price" example:"2.45"`
	Size        int64   `json:"size" example:"2"`
	Fee         float64 `json:"fee" example:"1.3"`
	SessionSeq  int     `json:"session_seq,omitempty" example:"1"`
}

// NameSummary is the per-name aggregate-sum P&L row for the summary table.
type NameSummary struct {
	Name        string  `json:"name"`
	TotalTrades int     `json:"total_trades"`
	BuyValue    float64 `json:"buy_value"`
	SellValue   float64 `json:"sell_value"`
	TotalFees   float64 `json:"total_fees"`
	RealizedPnL float64 `json:"realized_pnl"`
}

// MatchedPair is one closed round trip from the matched-pair P&L mode.
type MatchedPair struct {
	Name      string  `json:"name"`
	BuyID     string  `json:"buy_id"`
	SellID    string  `json:"sell_id"`
	Size      int64   `json:"size"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
	Profit    float64 `json:"profit"`
}

// Marker is one trade annotation in the marker-series shape: time is Unix
// seconds of the bar bucket the trade belongs to.
type Marker struct {
	Time     int64   `json:"time"`
	Price    float64 `json:"price"`
	Position string  `json:"position" example:"belowBar"`
	Color    string  `json:"color" example:"#26a69a"`
	Shape    string  `json:"shape" example:"circle"`
	Text     string  `json:"text" example:"BUY 2x @ 2.45"`
}
