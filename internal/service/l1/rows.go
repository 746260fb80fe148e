package l1_service

import (
	"foxvalley/internal/domain"
)

func numberAt(t domain.Table, row int, col string) *float64 {
	return ParseNumber(t.Cell(row, col))
}

// ToHoldings turns a normalized portfolio table into holdings. rows are never
// dropped; placeholder tickers are flagged so they stay out of cross-matching.
func ToHoldings(res NormalizeResult, cashTickers []string) []domain.Holding {
	cash := map[string]bool{}
	for _, c := range cashTickers {
		cash[domain.CanonicalTicker(c)] = true
	}

	t := res.Table
	out := make([]domain.Holding, 0, len(t.Rows))
	for i := range t.Rows {
		ticker := t.Cell(i, ColTicker)
		out = append(out, domain.Holding{
			Ticker:      ticker,
			Description: t.Cell(i, ColDescription),
			Shares:      numberAt(t, i, ColShares),
			Price:       numberAt(t, i, ColPrice),
			Value:       numberAt(t, i, ColValue),
			CostBasis:   numberAt(t, i, ColCostBasis),
			GainLossPct: numberAt(t, i, ColGainPct),
			IsCash:      cash[ticker],
			Placeholder: res.PlaceholderRows[i],
		})
	}
	return out
}

// HasScreenSchema reports whether a normalized table has both a real ticker
// column and a rank column
func HasScreenSchema(res NormalizeResult) bool {
	return res.TickerFallback == TickerFromColumn && res.Table.HasColumn(ColRank)
}

// ToScreenEntries turns a normalized screen table into entries for source.
// a table without the screen schema yields no entries, and rows without a
// real ticker can't be matched so they are left out.
func ToScreenEntries(res NormalizeResult, source string) []domain.ScreenEntry {
	t := res.Table
	out := []domain.ScreenEntry{}
	if !HasScreenSchema(res) {
		return out
	}
	for i := range t.Rows {
		if res.PlaceholderRows[i] {
			continue
		}
		ticker := t.Cell(i, ColTicker)
		if ticker == "" {
			continue
		}
		out = append(out, domain.ScreenEntry{
			Ticker: ticker,
			Rank:   ParseRank(t.Cell(i, ColRank)),
			Source: source,
			Metrics: domain.ScreenMetrics{
				CompositeScore: numberAt(t, i, ColCompositeScore),
				PriceChange5d:  numberAt(t, i, ColPriceChange5d),
				Volatility30d:  numberAt(t, i, ColVolatility30d),
			},
		})
	}
	return out
}
