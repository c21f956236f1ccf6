package marketdata

import (
	"fmt"
	"sort"
	"time"

	"github.com/fangwangme/Mirror/internal/domain/models"
)

// OrderPolicy controls which point supplies a bucket's open and close when
// several points map to the same bucket.
type OrderPolicy int

const (
	// OrderInput folds points in the order they arrive: the first point
	// seen sets the open, the last seen sets the close. Real feeds arrive
	// time-ordered, so input order approximates chronological order
	// without a sort.
	OrderInput OrderPolicy = iota

	// OrderTimestamp sorts points by trade time before folding, so open
	// and close come from the earliest and latest timestamps in the
	// bucket regardless of arrival order.
	OrderTimestamp
)

// Aggregate resamples raw per-minute points into fixed-width OHLCV bars
// bucketed to intervalMinutes, with boundaries computed in loc.
//
// Behavior:
//   - Each point is assigned to the bucket returned by BucketStart; bucket
//     identity is the absolute instant after truncation, so equal local
//     clock times on different dates stay separate.
//   - Accumulation is a streaming left-fold: the first point in a bucket
//     sets the open, each point folds high/low and adds volume, and the
//     last point sets the close (first/last per policy).
//   - Bars are returned in ascending bucket-start order with no duplicate
//     keys. Empty input yields an empty slice, not an error.
//
// Returns an error only for invalid configuration (interval < 1, nil
// location); data-quality problems are handled upstream at ingestion.
func Aggregate(points []models.PricePoint, intervalMinutes int, loc *time.Location, policy OrderPolicy) ([]models.Bar, error) {
	if intervalMinutes < 1 {
		return nil, fmt.Errorf("aggregate: interval must be at least 1 minute, got %d", intervalMinutes)
	}
	if loc == nil {
		return nil, fmt.Errorf("aggregate: reference timezone is required")
	}
	if len(points) == 0 {
		return []models.Bar{}, nil
	}

	if policy == OrderTimestamp {
		sorted := make([]models.PricePoint, len(points))
		copy(sorted, points)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TradeTime.Before(sorted[j].TradeTime)
		})
		points = sorted
	}

	buckets := make(map[int64]*models.Bar, len(points))
	for _, p := range points {
		start := BucketStart(p.TradeTime, intervalMinutes, loc)
		key := start.Unix()

		b, ok := buckets[key]
		if !ok {
			buckets[key] = &models.Bar{
				BucketStart: start,
				Open:        p.Open,
				High:        p.High,
				Low:         p.Low,
				Close:       p.Close,
				Volume:      p.Volume,
			}
			continue
		}
		if p.High > b.High {
			b.High = p.High
		}
		if p.Low < b.Low {
			b.Low = p.Low
		}
		b.Close = p.Close
		b.Volume += p.Volume
	}

	out := make([]models.Bar, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].BucketStart.Before(out[j].BucketStart)
	})
	return out, nil
}
