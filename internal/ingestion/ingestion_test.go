package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMarketFileName(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := MarketFileName("SPY", day); got != "SPY_2024-01-02.csv" {
		t.Fatalf("file name: got %q", got)
	}
}

func TestLoadDirectory_LoadsPresentSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	ny := mustLoadNY(t)

	days := LastNBusinessDays(2, time.Now().In(ny))

	// Only the most recent day has a file; the other must be skipped
	// without failing the load.
	writeTempFile(t, dir, MarketFileName("SPY", days[0]),
		marketHeader+"SPY,"+days[0].Format("2006-01-02")+" 09:30:00,"+days[0].Format("2006-01-02")+",470,470.5,469.8,470.2,1000\n")

	points, err := LoadDirectory(context.Background(), dir, "SPY", 2, ny)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("want 1 point got %d", len(points))
	}
	if points[0].Symbol != "SPY" {
		t.Fatalf("unexpected point: %+v", points[0])
	}
}

func TestLoadDirectory_AscendingDayOrder(t *testing.T) {
	dir := t.TempDir()
	ny := mustLoadNY(t)

	days := LastNBusinessDays(2, time.Now().In(ny))
	for _, d := range days {
		writeTempFile(t, dir, MarketFileName("SPY", d),
			marketHeader+"SPY,"+d.Format("2006-01-02")+" 09:30:00,"+d.Format("2006-01-02")+",470,470.5,469.8,470.2,1000\n")
	}

	points, err := LoadDirectory(context.Background(), dir, "SPY", 2, ny)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("want 2 points got %d", len(points))
	}
	if !points[0].TradeTime.Before(points[1].TradeTime) {
		t.Fatal("points must come out in ascending day order")
	}
}

func TestLoadDirectory_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	ny := mustLoadNY(t)

	days := LastNBusinessDays(1, time.Now().In(ny))
	writeTempFile(t, dir, MarketFileName("SPY", days[0]),
		marketHeader+"SPY,"+days[0].Format("2006-01-02")+" 09:30:00,"+days[0].Format("2006-01-02")+",470,470.5,469.8,470.2,1000\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadDirectory(ctx, dir, "SPY", 1, ny); err == nil {
		t.Fatal("expected context canceled error")
	}
}

// TestLoadDayFile_CanceledBeforeWork proves a day load short-circuits on a
// done context without touching its file: the file here is structurally
// broken, so any parse attempt would surface a header error instead of
// context.Canceled.
func TestLoadDayFile_CanceledBeforeWork(t *testing.T) {
	dir := t.TempDir()
	ny := mustLoadNY(t)
	path := writeTempFile(t, dir, "SPY_2024-01-02.csv", "not,a,market,header\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loadDayFile(ctx, path, ny)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestLoadDirectory_StructuralErrorFails(t *testing.T) {
	dir := t.TempDir()
	ny := mustLoadNY(t)

	days := LastNBusinessDays(3, time.Now().In(ny))
	// Oldest day is structurally broken; its siblings are valid. The batch
	// must fail with the header error rather than return partial data.
	writeTempFile(t, dir, MarketFileName("SPY", days[2]), "not,a,market,header\n")
	for _, d := range days[:2] {
		writeTempFile(t, dir, MarketFileName("SPY", d),
			marketHeader+"SPY,"+d.Format("2006-01-02")+" 09:30:00,"+d.Format("2006-01-02")+",470,470.5,469.8,470.2,1000\n")
	}

	if _, err := LoadDirectory(context.Background(), dir, "SPY", 3, ny); err == nil {
		t.Fatal("expected header validation error")
	}
}
