package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"foxvalley/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	t.Run("disclaimer above header and footer below", func(t *testing.T) {
		raw := "\xef\xbb\xbfBrokerage export generated 11/12/2025\r\n" +
			"\r\n" +
			"Account Number,Symbol,Description,Quantity,Last Price,Current Value\r\n" +
			"X1,AAPL,APPLE INC,10,$150.00,\"$1,500.00\"\r\n" +
			"X1,MSFT,MICROSOFT CORP,5,$400.00,\"$2,000.00\"\r\n" +
			"\r\n" +
			"\"The data and information in this spreadsheet is provided to you solely for your use.\"\r\n"

		out, err := ParseTable([]byte(raw))
		require.NoError(t, err)
		require.Equal(
			t,
			"",
			cmp.Diff(
				&domain.Table{
					Columns: []string{"Account Number", "Symbol", "Description", "Quantity", "Last Price", "Current Value"},
					Rows: [][]string{
						{"X1", "AAPL", "APPLE INC", "10", "$150.00", "$1,500.00"},
						{"X1", "MSFT", "MICROSOFT CORP", "5", "$400.00", "$2,000.00"},
					},
					SkippedRows: 1,
				},
				out,
			),
		)
	})

	t.Run("narrow screen file", func(t *testing.T) {
		raw := "Ticker,Zacks Rank\nGOOG,1\nTSLA,\n"

		out, err := ParseTable([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, []string{"Ticker", "Zacks Rank"}, out.Columns)
		require.Equal(t, [][]string{{"GOOG", "1"}, {"TSLA", ""}}, out.Rows)
	})

	t.Run("short rows are padded", func(t *testing.T) {
		raw := "a,b,c,d\n1,2\n"

		out, err := ParseTable([]byte(raw))
		require.NoError(t, err)
		require.Equal(t, [][]string{{"1", "2", "", ""}}, out.Rows)
	})

	t.Run("empty file", func(t *testing.T) {
		out, err := ParseTable([]byte("\n\n"))
		require.NoError(t, err)
		require.True(t, out.IsEmpty())
	})
}

func Test_tableRepositoryHandler_Load(t *testing.T) {
	t.Run("cache keyed by mtime", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()
		base := time.Date(2025, 11, 5, 12, 0, 0, 0, time.UTC)
		path := writeFile(t, dir, "Growth1_2025-11-03.csv", "Ticker,Rank\nGOOG,1\n", base)

		cache := NewTableCache()
		repo := NewTableRepository(cache)

		first, err := repo.Load(ctx, path)
		require.NoError(t, err)
		second, err := repo.Load(ctx, path)
		require.NoError(t, err)
		require.Equal(t, first, second)
		require.Equal(t, 1, cache.Hits())

		// mutating a returned table must not poison the cache
		second.Rows[0][0] = "XXXX"
		third, err := repo.Load(ctx, path)
		require.NoError(t, err)
		require.Equal(t, "GOOG", third.Rows[0][0])

		require.NoError(t, os.WriteFile(path, []byte("Ticker,Rank\nTSLA,2\n"), 0644))
		require.NoError(t, os.Chtimes(path, base.Add(time.Hour), base.Add(time.Hour)))
		fourth, err := repo.Load(ctx, path)
		require.NoError(t, err)
		require.Equal(t, "TSLA", fourth.Rows[0][0])
		require.Equal(t, 2, cache.Hits())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewTableRepository(nil).Load(context.Background(), "/does/not/exist.csv")
		require.Error(t, err)
	})
}
