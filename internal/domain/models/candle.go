package models

import "time"

// PricePoint represents one raw market-data record, normally a 1-minute
// OHLCV row from the upstream feed.
//
// Fields:
//   - Symbol: instrument ticker (e.g., "SPY").
//   - TradeTime: absolute instant of the record; the aggregator converts it
//     to the reference timezone before bucketing.
//   - Open/High/Low/Close: prices for the raw interval.
//   - Volume: shares/contracts traded in the raw interval (never negative).
//
// Points arrive already validated from the ingestion layer and are treated
// as immutable by every operation.
type PricePoint struct {
	Symbol    string
	TradeTime time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Bar is one fixed-width OHLCV bucket produced by the aggregator.
//
// Invariants:
//   - Low <= Open, Close <= High.
//   - Volume is the sum of volumes of every point mapped to the bucket.
//   - BucketStart is aligned to the interval boundary in the reference
//     timezone (see marketdata.BucketStart).
type Bar struct {
	BucketStart time.Time
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      int64
}
