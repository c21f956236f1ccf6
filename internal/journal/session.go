package journal

import (
	"fmt"
	"sort"
	"time"

	"github.com/fangwangme/Mirror/internal/domain/models"
)

// SessionWindow is the local time-of-day range treated as the active
// trading session. Both bounds are inclusive.
type SessionWindow struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// DefaultSessionWindow covers the regular NYSE session, 09:30 through
// 16:00 in the reference timezone.
var DefaultSessionWindow = SessionWindow{OpenHour: 9, OpenMinute: 30, CloseHour: 16}

// ParseSessionWindow builds a window from "HH:MM" open/close strings.
func ParseSessionWindow(open, close string) (SessionWindow, error) {
	o, err := time.Parse("15:04", open)
	if err != nil {
		return SessionWindow{}, fmt.Errorf("invalid session open %q: %w", open, err)
	}
	c, err := time.Parse("15:04", close)
	if err != nil {
		return SessionWindow{}, fmt.Errorf("invalid session close %q: %w", close, err)
	}
	w := SessionWindow{
		OpenHour:    o.Hour(),
		OpenMinute:  o.Minute(),
		CloseHour:   c.Hour(),
		CloseMinute: c.Minute(),
	}
	if w.closeSeconds() < w.openSeconds() {
		return SessionWindow{}, fmt.Errorf("session close %q before open %q", close, open)
	}
	return w, nil
}

func (w SessionWindow) openSeconds() int  { return w.OpenHour*3600 + w.OpenMinute*60 }
func (w SessionWindow) closeSeconds() int { return w.CloseHour*3600 + w.CloseMinute*60 }

// Contains reports whether the local time of day of t lies inside the
// window. The comparison includes seconds, so 09:29:59 is out while
// 16:00:00 is still in.
func (w SessionWindow) Contains(t time.Time) bool {
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return sec >= w.openSeconds() && sec <= w.closeSeconds()
}

// AssignSessionSequence filters trades down to those executed inside the
// session window (evaluated on the reference-timezone clock), orders them
// ascending by execution time, and numbers them 1..N.
//
// Trades outside the window are dropped from the sequenced output; callers
// that need the full listing keep the raw trade slice alongside. Sequence
// numbers are independent per call, never persisted.
func AssignSessionSequence(trades []models.Trade, window SessionWindow, loc *time.Location) []models.SequencedTrade {
	out := make([]models.SequencedTrade, 0, len(trades))
	for _, tr := range trades {
		if window.Contains(tr.ActionDateTime.In(loc)) {
			out = append(out, models.SequencedTrade{Trade: tr})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ActionDateTime.Before(out[j].ActionDateTime)
	})
	for i := range out {
		out[i].SessionSeq = i + 1
	}
	return out
}
