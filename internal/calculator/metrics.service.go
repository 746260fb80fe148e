package calculator

import (
	"math"
	"sort"

	"foxvalley/internal/domain"

	"github.com/montanaflynn/stats"
)

func sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return s
}

// CalculatePortfolioSummary totals the holdings. cash is the sum of cash
// rows unless manualCash is set, in which case it replaces them. the average
// gain is weighted by market value and only counts positions that have a
// reported or synthetic gain.
func CalculatePortfolioSummary(holdings []domain.Holding, manualCash float64) domain.PortfolioSummary {
	invested := []float64{}
	cash := []float64{}
	weightedGains := []float64{}
	weights := []float64{}
	numPositions := 0

	for _, h := range holdings {
		mv := h.MarketValue()
		if h.IsCash {
			cash = append(cash, mv)
			continue
		}
		numPositions++
		invested = append(invested, mv)
		if g := h.GainPct(); g != nil && mv > 0 {
			weightedGains = append(weightedGains, *g*mv)
			weights = append(weights, mv)
		}
	}

	out := domain.PortfolioSummary{
		InvestedValue: sum(invested),
		CashValue:     sum(cash),
		NumPositions:  numPositions,
	}
	if manualCash > 0 {
		out.CashValue = manualCash
		out.ManualCash = true
	}
	out.TotalValue = out.InvestedValue + out.CashValue

	if w := sum(weights); w > 0 {
		avg := sum(weightedGains) / w
		out.AvgGainPct = &avg
	}

	return out
}

// BuildPositionViews decorates each non-cash holding with its share of the
// total, a trailing stop and, for tickers that appear on a screen, the rank
// signal
func BuildPositionViews(holdings []domain.Holding, summary domain.PortfolioSummary, trailingStopPct float64, candidates domain.CandidateSet, signal func(rank *int, gainPct *float64) string) []domain.PositionView {
	out := []domain.PositionView{}
	for _, h := range holdings {
		if h.IsCash {
			continue
		}
		view := domain.PositionView{
			Holding: h,
		}
		if summary.TotalValue > 0 {
			pct := h.MarketValue() / summary.TotalValue
			view.AllocationPct = &pct
		}
		if h.Price != nil && *h.Price > 0 {
			stop := *h.Price * (1 - trailingStopPct)
			view.TrailingStop = &stop
		}
		if c, ok := candidates.Get(h.Ticker); ok && !h.Placeholder {
			view.Rank = c.Rank
			view.Signal = signal(c.Rank, h.GainPct())
		}
		out = append(out, view)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MarketValue() > out[j].MarketValue()
	})

	return out
}

type HistoryStats struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
	Mean float64 `json:"mean"`
	// largest peak to trough drop as a fraction of the peak
	MaxDrawdown float64 `json:"maxDrawdown"`
}

// CalculateHistory orders the points by date and fills in the change from
// the previous point
func CalculateHistory(points []domain.HistoryPoint) ([]domain.HistoryPoint, *HistoryStats, error) {
	out := append([]domain.HistoryPoint{}, points...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	if len(out) == 0 {
		return out, nil, nil
	}

	values := make([]float64, len(out))
	for i := range out {
		values[i] = out[i].TotalValue
		out[i].ChangePct = nil
		if i > 0 && out[i-1].TotalValue != 0 {
			change := (out[i].TotalValue - out[i-1].TotalValue) / out[i-1].TotalValue
			out[i].ChangePct = &change
		}
	}

	high, err := stats.Max(values)
	if err != nil {
		return nil, nil, err
	}
	low, err := stats.Min(values)
	if err != nil {
		return nil, nil, err
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return nil, nil, err
	}

	peak := values[0]
	maxDrawdown := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
		if peak > 0 {
			maxDrawdown = math.Max(maxDrawdown, (peak-v)/peak)
		}
	}

	return out, &HistoryStats{
		High:        high,
		Low:         low,
		Mean:        mean,
		MaxDrawdown: maxDrawdown,
	}, nil
}
