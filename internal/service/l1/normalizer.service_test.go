package l1_service

import (
	"testing"

	"foxvalley/internal/domain"
	"foxvalley/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func brokerageTable() domain.Table {
	return domain.Table{
		Columns: []string{
			"Account Number", "Symbol", "Description", "Quantity", "Last Price",
			"Last Price Change", "Current Value", "Today's Gain/Loss Dollar",
			"Total Gain/Loss Percent", "Cost Basis Total",
		},
		Rows: [][]string{
			{"X1", "AAPL", "APPLE INC", "10", "$150.00", "+$1.20", "$1,500.00", "$12.00", "+25.00%", "$1,200.00"},
			{"X1", "msft", "MICROSOFT CORP", "5", "$400.00", "-$2.00", "$2,000.00", "($10.00)", "(5.00%)", "$2,105.26"},
			{"X1", "SPAXX**", "HELD IN MONEY MARKET", "", "", "", "$500.00", "", "", ""},
			{"X1", "", "Pending Activity", "", "", "", "n/a", "", "", ""},
		},
	}
}

func TestNormalizeTable(t *testing.T) {
	t.Run("brokerage export", func(t *testing.T) {
		out := NormalizeTable(brokerageTable(), DefaultColumnRules)

		require.Equal(
			t,
			"",
			cmp.Diff(
				domain.Table{
					Columns: []string{
						"Account Number", "Ticker", "Description", "Shares", "MarketPrice",
						"Last Price Change", "CurrentValue", "Today's Gain/Loss Dollar",
						"GainLossPct", "CostBasis",
					},
					Rows: [][]string{
						{"X1", "AAPL", "APPLE INC", "10", "150", "+$1.20", "1500", "$12.00", "25", "1200"},
						{"X1", "MSFT", "MICROSOFT CORP", "5", "400", "-$2.00", "2000", "($10.00)", "-5", "2105.26"},
						{"X1", "SPAXX", "HELD IN MONEY MARKET", "", "", "", "500", "", "", ""},
						{"X1", "PENDING", "Pending Activity", "", "", "", "", "", "", ""},
					},
				},
				out.Table,
			),
		)
		require.Equal(t, TickerFromColumn, out.TickerFallback)
		require.Equal(t, 1, out.UnparsedCells)
		require.Empty(t, out.PlaceholderRows)
		require.Equal(t, "Ticker", out.Renamed["Symbol"])
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []domain.Table{
			brokerageTable(),
			{
				Columns: []string{"Company Name", "Ticker", "Zacks Rank", "Industry Rank", "% Price Change (1 Week)"},
				Rows:    [][]string{{"Alphabet", "goog", "1-Strong Buy", "12", "3.5%"}},
			},
			{
				Columns: []string{"Name", "Value"},
				Rows:    [][]string{{"thing", "$5"}, {"", "(1)"}},
			},
		}
		for _, in := range inputs {
			once := NormalizeTable(in, DefaultColumnRules)
			twice := NormalizeTable(once.Table, DefaultColumnRules)
			require.Equal(t, "", cmp.Diff(once.Table, twice.Table))
			require.Equal(t, once.PlaceholderRows, twice.PlaceholderRows)
		}
	})

	t.Run("first match wins for duplicate candidates", func(t *testing.T) {
		in := domain.Table{
			Columns: []string{"Industry Rank", "Zacks Rank", "Ticker"},
			Rows:    [][]string{{"40", "2", "TSLA"}},
		}
		out := NormalizeTable(in, DefaultColumnRules)
		// the exact alias claims Rank before the substring rule runs
		require.Equal(t, []string{"Industry Rank", "Rank", "Ticker"}, out.Table.Columns)
		require.Equal(t, "2", out.Table.Cell(0, ColRank))
	})

	t.Run("ticker from description", func(t *testing.T) {
		in := domain.Table{
			Columns: []string{"Description", "Current Value"},
			Rows:    [][]string{{"NVDA NVIDIA CORP", "$100"}, {"", "$5"}},
		}
		out := NormalizeTable(in, DefaultColumnRules)
		require.Equal(t, TickerFromDescription, out.TickerFallback)
		require.Equal(t, "NVDA", out.Table.Cell(0, ColTicker))
		require.Equal(t, "UNK1", out.Table.Cell(1, ColTicker))
		require.Equal(t, map[int]bool{1: true}, out.PlaceholderRows)
	})

	t.Run("placeholder tickers", func(t *testing.T) {
		in := domain.Table{
			Columns: []string{"Name", "Value"},
			Rows:    [][]string{{"a", "1"}, {"b", "2"}},
		}
		out := NormalizeTable(in, DefaultColumnRules)
		require.Equal(t, TickerPlaceholder, out.TickerFallback)
		require.Equal(t, []string{"Name", "CurrentValue", "Ticker"}, out.Table.Columns)
		require.Equal(t, "UNK1", out.Table.Cell(0, ColTicker))
		require.Equal(t, "UNK2", out.Table.Cell(1, ColTicker))
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := brokerageTable()
		NormalizeTable(in, DefaultColumnRules)
		require.Equal(t, "", cmp.Diff(brokerageTable(), in))
	})
}

func TestToHoldings(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		res := NormalizeTable(brokerageTable(), DefaultColumnRules)
		holdings := ToHoldings(res, []string{"SPAXX", "Pending"})

		require.Len(t, holdings, 4)
		require.Equal(
			t,
			"",
			cmp.Diff(
				domain.Holding{
					Ticker:      "AAPL",
					Description: "APPLE INC",
					Shares:      util.FloatPointer(10),
					Price:       util.FloatPointer(150),
					Value:       util.FloatPointer(1500),
					CostBasis:   util.FloatPointer(1200),
					GainLossPct: util.FloatPointer(25),
				},
				holdings[0],
			),
		)
		require.True(t, holdings[2].IsCash)
		require.True(t, holdings[3].IsCash)
		require.Nil(t, holdings[3].Value)
	})
}

func TestToScreenEntries(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		in := domain.Table{
			Columns: []string{"Company Name", "Ticker", "Zacks Rank", "Composite Score"},
			Rows: [][]string{
				{"Alphabet", "GOOG", "1", "60"},
				{"Tesla", "tsla", "", ""},
			},
		}
		entries := ToScreenEntries(NormalizeTable(in, DefaultColumnRules), "Growth1")
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]domain.ScreenEntry{
					{
						Ticker: "GOOG",
						Rank:   util.IntPointer(1),
						Source: "Growth1",
						Metrics: domain.ScreenMetrics{
							CompositeScore: util.FloatPointer(60),
						},
					},
					{
						Ticker: "TSLA",
						Source: "Growth1",
					},
				},
				entries,
			),
		)
	})

	t.Run("oversized rank is missing and loses the merge", func(t *testing.T) {
		growth1 := domain.Table{
			Columns: []string{"Ticker", "Zacks Rank"},
			Rows:    [][]string{{"GOOG", "1"}},
		}
		growth2 := domain.Table{
			Columns: []string{"Ticker", "Zacks Rank"},
			Rows:    [][]string{{"GOOG", "99999999999999999999"}},
		}
		entries := append(
			ToScreenEntries(NormalizeTable(growth1, DefaultColumnRules), "Growth1"),
			ToScreenEntries(NormalizeTable(growth2, DefaultColumnRules), "Growth2")...,
		)
		require.Nil(t, entries[1].Rank)

		set := domain.NewCandidateSet("2025-11-12", entries)
		require.Len(t, set.Candidates, 1)
		require.Equal(t, util.IntPointer(1), set.Candidates[0].Rank)
		require.Equal(t, []string{"Growth1", "Growth2"}, set.Candidates[0].Sources)
	})

	t.Run("schema mismatch yields nothing", func(t *testing.T) {
		noTicker := domain.Table{
			Columns: []string{"Company Name", "Zacks Rank"},
			Rows:    [][]string{{"Alphabet Inc", "1"}},
		}
		require.Empty(t, ToScreenEntries(NormalizeTable(noTicker, DefaultColumnRules), "Growth1"))

		noRank := domain.Table{
			Columns: []string{"Ticker", "Price"},
			Rows:    [][]string{{"GOOG", "100"}},
		}
		require.Empty(t, ToScreenEntries(NormalizeTable(noRank, DefaultColumnRules), "Growth1"))
	})
}
