package l1_service

import (
	"fmt"
	"regexp"
	"strings"

	"foxvalley/internal/domain"
)

// canonical column names the rest of the pipeline reads
const (
	ColTicker         = "Ticker"
	ColDescription    = "Description"
	ColShares         = "Shares"
	ColPrice          = "MarketPrice"
	ColValue          = "CurrentValue"
	ColCostBasis      = "CostBasis"
	ColGainPct        = "GainLossPct"
	ColRank           = "Rank"
	ColCompositeScore = "CompositeScore"
	ColPriceChange5d  = "PriceChange5d"
	ColVolatility30d  = "Volatility30d"
)

var numericColumns = map[string]bool{
	ColShares:         true,
	ColPrice:          true,
	ColValue:          true,
	ColCostBasis:      true,
	ColGainPct:        true,
	ColCompositeScore: true,
	ColPriceChange5d:  true,
	ColVolatility30d:  true,
}

// ColumnRule renames a header to Canonical. an exact rule matches the whole
// lowercased header, otherwise every entry of Contains must be a substring.
type ColumnRule struct {
	Exact     string
	Contains  []string
	Canonical string
}

func (r ColumnRule) matches(header string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	if r.Exact != "" {
		return h == r.Exact
	}
	if len(r.Contains) == 0 {
		return false
	}
	for _, c := range r.Contains {
		if !strings.Contains(h, c) {
			return false
		}
	}
	return true
}

func exact(alias, canonical string) ColumnRule {
	return ColumnRule{Exact: alias, Canonical: canonical}
}

func contains(canonical string, substrings ...string) ColumnRule {
	return ColumnRule{Contains: substrings, Canonical: canonical}
}

// DefaultColumnRules is evaluated top to bottom, first match wins. exact
// aliases run over every header before any substring rule is tried, so a
// "Last Price Change" column can't steal MarketPrice from "Last Price".
var DefaultColumnRules = []ColumnRule{
	exact("ticker", ColTicker),
	exact("symbol", ColTicker),
	exact("description", ColDescription),
	exact("company name", ColDescription),
	exact("company", ColDescription),
	exact("shares", ColShares),
	exact("quantity", ColShares),
	exact("qty", ColShares),
	exact("marketprice", ColPrice),
	exact("last price", ColPrice),
	exact("current price", ColPrice),
	exact("price", ColPrice),
	exact("currentvalue", ColValue),
	exact("current value", ColValue),
	exact("market value", ColValue),
	exact("value", ColValue),
	exact("costbasis", ColCostBasis),
	exact("cost basis", ColCostBasis),
	exact("cost basis total", ColCostBasis),
	exact("total cost basis", ColCostBasis),
	exact("gainlosspct", ColGainPct),
	exact("gain/loss %", ColGainPct),
	exact("total gain/loss percent", ColGainPct),
	exact("gainloss%", ColGainPct),
	exact("% gain/loss", ColGainPct),
	exact("%chg", ColGainPct),
	exact("rank", ColRank),
	exact("zacks rank", ColRank),
	exact("compositescore", ColCompositeScore),
	exact("composite score", ColCompositeScore),
	exact("pricechange5d", ColPriceChange5d),
	exact("% price change (1 week)", ColPriceChange5d),
	exact("volatility30d", ColVolatility30d),

	contains(ColTicker, "ticker"),
	contains(ColTicker, "symbol"),
	contains(ColRank, "rank"),
	contains(ColCompositeScore, "composite"),
	contains(ColVolatility30d, "volatil"),
	contains(ColPriceChange5d, "price change", "%"),
	contains(ColShares, "quantity"),
	contains(ColShares, "shares"),
	contains(ColValue, "value"),
	contains(ColGainPct, "gain", "%"),
	contains(ColGainPct, "gain", "percent"),
	contains(ColGainPct, "gain", "pct"),
	contains(ColCostBasis, "cost"),
	contains(ColPrice, "price"),
	contains(ColDescription, "description"),
}

var placeholderRegex = regexp.MustCompile(`^UNK\d+$`)

type TickerFallback string

const (
	TickerFromColumn      TickerFallback = "column"
	TickerFromDescription TickerFallback = "description"
	TickerPlaceholder     TickerFallback = "placeholder"
)

type NormalizeResult struct {
	Table domain.Table
	// source header -> canonical name, only for headers that changed
	Renamed        map[string]string
	TickerFallback TickerFallback
	// rows whose ticker was synthesized as UNK1, UNK2, ...
	PlaceholderRows map[int]bool
	// numeric cells that could not be parsed and are now missing
	UnparsedCells int
}

// NormalizeTable maps variant headers onto canonical names and cleans numeric
// columns into plain decimal strings. it is idempotent: a canonical table
// comes back unchanged.
func NormalizeTable(in domain.Table, rules []ColumnRule) NormalizeResult {
	t := in.DeepCopy()
	for i := range t.Rows {
		for len(t.Rows[i]) < len(t.Columns) {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	out := NormalizeResult{
		Renamed:         map[string]string{},
		TickerFallback:  TickerFromColumn,
		PlaceholderRows: map[int]bool{},
	}

	t.Columns = renameColumns(t.Columns, rules, out.Renamed)

	for colIdx, col := range t.Columns {
		switch {
		case col == ColRank:
			for _, row := range t.Rows {
				r := ParseRank(row[colIdx])
				if r == nil && row[colIdx] != "" {
					out.UnparsedCells++
				}
				row[colIdx] = formatRank(r)
			}
		case numericColumns[col]:
			for _, row := range t.Rows {
				v := ParseNumber(row[colIdx])
				if v == nil && row[colIdx] != "" {
					out.UnparsedCells++
				}
				row[colIdx] = formatNumber(v)
			}
		}
	}

	fillTickers(&t, &out)
	out.Table = t

	return out
}

func renameColumns(columns []string, rules []ColumnRule, renamed map[string]string) []string {
	out := append([]string{}, columns...)
	claimed := map[string]bool{}
	assigned := make([]bool, len(columns))

	// canonical names already present are claimed first
	for i, c := range columns {
		for _, r := range rules {
			if c == r.Canonical {
				claimed[c] = true
				assigned[i] = true
				break
			}
		}
	}

	apply := func(exactPass bool) {
		for i, c := range columns {
			if assigned[i] {
				continue
			}
			for _, r := range rules {
				if (r.Exact != "") != exactPass {
					continue
				}
				if !r.matches(c) {
					continue
				}
				if claimed[r.Canonical] {
					// first match wins, even if the name is taken
					break
				}
				claimed[r.Canonical] = true
				assigned[i] = true
				out[i] = r.Canonical
				renamed[c] = r.Canonical
				break
			}
		}
	}
	apply(true)
	apply(false)

	return out
}

// fillTickers canonicalizes the ticker column, or builds one from the
// description column, or as a last resort from placeholders
func fillTickers(t *domain.Table, out *NormalizeResult) {
	tickerIdx := t.ColumnIndex(ColTicker)
	descIdx := t.ColumnIndex(ColDescription)

	if tickerIdx < 0 {
		t.Columns = append(t.Columns, ColTicker)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
		tickerIdx = len(t.Columns) - 1
		out.TickerFallback = TickerPlaceholder
		if descIdx >= 0 {
			out.TickerFallback = TickerFromDescription
		}
	}

	unknown := 0
	for i, row := range t.Rows {
		if placeholderRegex.MatchString(row[tickerIdx]) {
			unknown++
			out.PlaceholderRows[i] = true
			continue
		}
		ticker := domain.CanonicalTicker(row[tickerIdx])
		if ticker == "" && descIdx >= 0 {
			ticker = domain.CanonicalTicker(firstToken(row[descIdx]))
		}
		if ticker == "" {
			unknown++
			ticker = fmt.Sprintf("UNK%d", unknown)
			out.PlaceholderRows[i] = true
		}
		row[tickerIdx] = ticker
	}
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
