package service

import (
	"fmt"
	"time"

	"github.com/fangwangme/Mirror/config"
	"github.com/fangwangme/Mirror/internal/domain/dto"
	"github.com/fangwangme/Mirror/internal/domain/models"
	"github.com/fangwangme/Mirror/internal/journal"
	"github.com/fangwangme/Mirror/internal/marketdata"
)

// ChartService composes the bar aggregator and the trade reconciler into
// the single seam the presentation layer consumes.
type ChartService interface {
	// Bars aggregates raw points into OHLCV bars at the configured
	// interval.
	Bars(points []models.PricePoint) ([]models.Bar, error)

	// BuildChart runs the full pass for one symbol/day selection: bars,
	// session-sequenced trades, both P&L modes, and chart markers.
	BuildChart(symbol string, points []models.PricePoint, trades []models.Trade) (*dto.ChartReport, error)
}

type chartService struct {
	loc        *time.Location
	interval   int
	multiplier float64
	window     journal.SessionWindow
	policy     marketdata.OrderPolicy
	timezone   string
}

// NewChartService validates the chart configuration once and returns a
// service bound to it.
//
// Configuration errors (unknown timezone id, non-positive interval or
// multiplier, malformed session bounds) fail here rather than surfacing on
// every call; they indicate a caller programming error, not bad data.
func NewChartService(cfg config.ChartConfig) (ChartService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.IntervalMinutes < 1 {
		return nil, fmt.Errorf("interval must be at least 1 minute, got %d", cfg.IntervalMinutes)
	}
	if cfg.ContractMultiplier <= 0 {
		return nil, fmt.Errorf("contract multiplier must be positive, got %g", cfg.ContractMultiplier)
	}
	window, err := journal.ParseSessionWindow(cfg.SessionOpen, cfg.SessionClose)
	if err != nil {
		return nil, fmt.Errorf("session window: %w", err)
	}

	policy := marketdata.OrderInput
	if cfg.AggregateOrder == "timestamp" {
		policy = marketdata.OrderTimestamp
	}

	return &chartService{
		loc:        loc,
		interval:   cfg.IntervalMinutes,
		multiplier: cfg.ContractMultiplier,
		window:     window,
		policy:     policy,
		timezone:   cfg.Timezone,
	}, nil
}

func (s *chartService) Bars(points []models.PricePoint) ([]models.Bar, error) {
	return marketdata.Aggregate(points, s.interval, s.loc, s.policy)
}

func (s *chartService) BuildChart(symbol string, points []models.PricePoint, trades []models.Trade) (*dto.ChartReport, error) {
	bars, err := marketdata.Aggregate(points, s.interval, s.loc, s.policy)
	if err != nil {
		return nil, fmt.Errorf("aggregate bars: %w", err)
	}

	sequenced := journal.AssignSessionSequence(trades, s.window, s.loc)
	summaries, totalPnL := journal.Summarize(trades)
	pairs, matchedPnL := journal.MatchPairs(trades, s.multiplier)

	overlays, err := journal.BuildOverlays(trades, s.interval, s.loc)
	if err != nil {
		return nil, fmt.Errorf("build overlays: %w", err)
	}

	report := &dto.ChartReport{
		Symbol:          symbol,
		IntervalMinutes: s.interval,
		Timezone:        s.timezone,
		Bars:            make([]dto.Bar, 0, len(bars)),
		Trades:          make([]dto.Trade, 0, len(trades)),
		Summaries:       make([]dto.NameSummary, 0, len(summaries)),
		TotalPnL:        totalPnL,
		MatchedPairs:    make([]dto.MatchedPair, 0, len(pairs)),
		MatchedPnL:      matchedPnL,
		Markers:         make([]dto.Marker, 0, len(overlays)),
	}

	for _, b := range bars {
		report.Bars = append(report.Bars, dto.Bar{
			Time:   b.BucketStart.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	// Sequenced trades first, then the out-of-window remainder with no
	// sequence number; the raw listing keeps every trade visible.
	inWindow := make(map[string]int, len(sequenced))
	for _, st := range sequenced {
		inWindow[st.ID] = st.SessionSeq
		report.Trades = append(report.Trades, s.tradeDTO(st.Trade, st.SessionSeq))
	}
	for _, tr := range trades {
		if _, ok := inWindow[tr.ID]; !ok {
			report.Trades = append(report.Trades, s.tradeDTO(tr, 0))
		}
	}

	for _, sum := range summaries {
		report.Summaries = append(report.Summaries, dto.NameSummary{
			Name:        sum.Name,
			TotalTrades: sum.TotalTrades,
			BuyValue:    sum.BuyValue,
			SellValue:   sum.SellValue,
			TotalFees:   sum.TotalFees,
			RealizedPnL: sum.RealizedPnL,
		})
	}
	for _, p := range pairs {
		report.MatchedPairs = append(report.MatchedPairs, dto.MatchedPair{
			Name:      p.Name,
			BuyID:     p.BuyID,
			SellID:    p.SellID,
			Size:      p.Size,
			BuyPrice:  p.BuyPrice,
			SellPrice: p.SellPrice,
			Profit:    p.Profit,
		})
	}
	for _, o := range overlays {
		report.Markers = append(report.Markers, dto.Marker{
			Time:     o.Time.Unix(),
			Price:    o.Price,
			Position: string(o.Position),
			Color:    o.Color,
			Shape:    o.Shape,
			Text:     o.Text,
		})
	}

	return report, nil
}

// tradeDTO renders journal rows on the reference clock, the same clock the
// chart axis uses.
func (s *chartService) tradeDTO(tr models.Trade, seq int) dto.Trade {
	return dto.Trade{
		ID:          tr.ID,
		Symbol:      tr.Symbol,
		Name:        tr.Name,
		Action:      string(tr.Action),
		ActionTime:  tr.ActionDateTime.In(s.loc).Format("2006-01-02 15:04:05"),
		ActionPrice: tr.ActionPrice,
		Size:        tr.Size,
		Fee:         tr.Fee,
		SessionSeq:  seq,
	}
}
