package journal

import (
	"testing"
	"time"

	"github.com/fangwangme/Mirror/internal/domain/models"
)

func mustLoadNY(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load America/New_York: %v", err)
	}
	return loc
}

func TestParseSessionWindow(t *testing.T) {
	cases := []struct {
		name    string
		open    string
		close   string
		wantErr bool
	}{
		{name: "regular session", open: "09:30", close: "16:00"},
		{name: "bad open", open: "9am", close: "16:00", wantErr: true},
		{name: "bad close", open: "09:30", close: "25:00", wantErr: true},
		{name: "close before open", open: "16:00", close: "09:30", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := ParseSessionWindow(tc.open, tc.close)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if w.OpenHour != 9 || w.OpenMinute != 30 || w.CloseHour != 16 || w.CloseMinute != 0 {
				t.Fatalf("unexpected window: %+v", w)
			}
		})
	}
}

func TestAssignSessionSequence_WindowBoundaries(t *testing.T) {
	ny := mustLoadNY(t)

	at := func(h, m, s int) models.Trade {
		return models.Trade{
			Name:           "SPY 470 Call 1/5",
			Action:         models.ActionBuy,
			ActionDateTime: time.Date(2024, 1, 2, h, m, s, 0, ny),
			ActionPrice:    1.0,
			Size:           1,
		}
	}

	// 09:29:59 and 16:00:01 fall outside the default window; the three
	// in-window trades are numbered 1..3 in time order.
	trades := []models.Trade{
		at(16, 0, 1),
		at(9, 29, 59),
		at(15, 59, 59),
		at(9, 30, 0),
		at(12, 0, 0),
	}

	seq := AssignSessionSequence(trades, DefaultSessionWindow, ny)
	if len(seq) != 3 {
		t.Fatalf("want 3 sequenced trades got %d", len(seq))
	}
	for i, s := range seq {
		if s.SessionSeq != i+1 {
			t.Fatalf("trade %d: want seq %d got %d", i, i+1, s.SessionSeq)
		}
	}
	if seq[0].ActionDateTime.Hour() != 9 || seq[0].ActionDateTime.Minute() != 30 {
		t.Fatalf("first sequenced trade should be 09:30, got %v", seq[0].ActionDateTime)
	}
	if seq[2].ActionDateTime.Hour() != 15 {
		t.Fatalf("last sequenced trade should be 15:59:59, got %v", seq[2].ActionDateTime)
	}
}

func TestAssignSessionSequence_ConvertsToReferenceZone(t *testing.T) {
	ny := mustLoadNY(t)

	// 20:59 UTC on a January day is 15:59 New York: the UTC clock is past
	// the close, but the window is evaluated on the reference clock.
	tr := models.Trade{
		Name:           "SPY",
		Action:         models.ActionBuy,
		ActionDateTime: time.Date(2024, 1, 2, 20, 59, 0, 0, time.UTC),
		ActionPrice:    470,
		Size:           1,
	}
	seq := AssignSessionSequence([]models.Trade{tr}, DefaultSessionWindow, ny)
	if len(seq) != 1 {
		t.Fatalf("trade at 15:59 NY should be sequenced, got %d results", len(seq))
	}
}

func TestAssignSessionSequence_Empty(t *testing.T) {
	ny := mustLoadNY(t)
	if got := AssignSessionSequence(nil, DefaultSessionWindow, ny); len(got) != 0 {
		t.Fatalf("want empty got %d", len(got))
	}
}
