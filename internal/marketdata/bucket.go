package marketdata

import "time"

// BucketStart aligns t to the start of its interval bucket in loc.
//
// The truncation is hour-local: the minute of hour is rounded down to the
// largest multiple of intervalMinutes and seconds are zeroed, so minute 55
// with a 10-minute interval buckets to :50 of the same hour. The remainder
// never carries across an hour boundary.
//
// Overlay construction buckets trade timestamps with this same function;
// a diverging rule would place markers on bars that do not exist.
func BucketStart(t time.Time, intervalMinutes int, loc *time.Location) time.Time {
	local := t.In(loc)
	minute := (local.Minute() / intervalMinutes) * intervalMinutes
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), minute, 0, 0, loc)
}
