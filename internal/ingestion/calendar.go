package ingestion

import (
	"time"

	"github.com/scmhub/calendar"
)

// nyseCalendar resolves U.S. trading days (weekends plus NYSE holidays).
// See scmhub/calendar for supported MICs (ISO 10383).
var nyseCalendar = calendar.GetCalendar("xnys")

// LastNBusinessDays returns the last n U.S. trading days ending at or
// before from, most recent first.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if isTradingDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isTradingDay checks the NYSE calendar, falling back to a weekday-only
// rule when the calendar is unavailable. The fallback overcounts around
// holidays; missing files for those days are skipped at load time anyway.
func isTradingDay(d time.Time) bool {
	if nyseCalendar != nil {
		return nyseCalendar.IsBusinessDay(d)
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
