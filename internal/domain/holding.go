package domain

import (
	"strings"
	"unicode"
)

// CanonicalTicker uppercases the symbol and keeps only A-Z, so "brk.b" and
// "SPAXX**" become "BRKB" and "SPAXX"
func CanonicalTicker(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		} else if unicode.IsSpace(r) && b.Len() > 0 {
			// only the first token is a symbol
			break
		}
	}
	return b.String()
}

// Holding is one row of the brokerage export. Numeric fields are nil when the
// cell was missing or could not be parsed.
type Holding struct {
	Ticker      string
	Description string
	Shares      *float64
	Price       *float64
	Value       *float64
	CostBasis   *float64
	GainLossPct *float64

	IsCash bool
	// ticker was synthesized because the export had no usable symbol
	Placeholder bool
}

// MarketValue is the value used for aggregation. it falls back to
// shares * price and never goes below zero.
func (h Holding) MarketValue() float64 {
	v := 0.0
	if h.Value != nil {
		v = *h.Value
	} else if h.Shares != nil && h.Price != nil {
		v = *h.Shares * *h.Price
	}
	if v < 0 {
		return 0
	}
	return v
}

// GainPct returns the reported gain/loss percent, or a synthetic one derived
// from cost basis when the export did not carry it
func (h Holding) GainPct() *float64 {
	if h.GainLossPct != nil {
		return h.GainLossPct
	}
	if h.CostBasis == nil || *h.CostBasis == 0 {
		return nil
	}
	if h.Value == nil && (h.Shares == nil || h.Price == nil) {
		return nil
	}
	g := (h.MarketValue() - *h.CostBasis) / *h.CostBasis * 100
	return &g
}

type Portfolio struct {
	SourceFile string
	Date       string
	Holdings   []Holding
}

func (p Portfolio) Tickers() []string {
	out := []string{}
	for _, h := range p.Holdings {
		if h.IsCash || h.Placeholder {
			continue
		}
		out = append(out, h.Ticker)
	}
	return out
}

type PortfolioSummary struct {
	TotalValue    float64  `json:"totalValue"`
	CashValue     float64  `json:"cashValue"`
	InvestedValue float64  `json:"investedValue"`
	AvgGainPct    *float64 `json:"avgGainPct"`
	NumPositions  int      `json:"numPositions"`
	ManualCash    bool     `json:"manualCash"`
}

// PositionView is a holding decorated for display
type PositionView struct {
	Holding
	AllocationPct *float64
	TrailingStop  *float64
	Rank          *int
	Signal        string
}
