package l3_service

import (
	"archive/zip"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"

	"foxvalley/internal/domain"
	mock_repository "foxvalley/internal/repository/mocks"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFormatDollars(t *testing.T) {
	require.Equal(t, "$0.00", FormatDollars(decimal.Zero))
	require.Equal(t, "$999.99", FormatDollars(decimal.RequireFromString("999.99")))
	require.Equal(t, "$1,234.50", FormatDollars(decimal.RequireFromString("1234.5")))
	require.Equal(t, "$1,000,000.00", FormatDollars(decimal.NewFromInt(1000000)))
	require.Equal(t, "-$15,000.00", FormatDollars(decimal.NewFromInt(-15000)))
}

func TestBriefService(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		env := newTestEnv(t)
		writeFile(t, env.dataDir, "Portfolio_Positions_Nov-12-2025.csv", portfolioCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-11.csv", priorGrowthCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-12.csv", growthCsv)
		rec, err := env.reconciliationService().Run(testContext())
		require.NoError(t, err)

		brief := NewBriefService(env.reports).Render(*rec)

		for _, expected := range []string{
			"# Brief 2025-11-12",
			"- Portfolio: `Portfolio_Positions_Nov-12-2025.csv`",
			"- Growth2: not found",
			"| $100,000.00 | $10,000.00 | $90,000.00 | 5.0% | 2 |",
			"Deploying up to $85,000.00 of $100,000.00 (85.0%), 15.0% per position.",
			"| GOOG | Growth1 | 15.0% | $15,000.00 | 55 (Hold) |",
			"| AAPL | $50,000.00 | 50.0% | 25.0% | $190.00 | 2 | Buy |",
			"Total: $30,000.00",
			"- **Review**: AAPL",
			"- Screens since 2025-11-11: added TSLA; removed MSFT",
			"- Holdings: not enough history to compare",
			"[WARNING] FILE_MISSING",
		} {
			require.Contains(t, brief, expected)
		}
	})

	t.Run("write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reportRepository := mock_repository.NewMockReportRepository(ctrl)
		rec := domain.Reconciliation{Date: "2025-11-12"}

		reportRepository.EXPECT().
			WriteBrief(gomock.Any(), "2025-11-12", gomock.Any()).
			DoAndReturn(func(_ interface{}, _ string, content string) (string, error) {
				require.True(t, strings.HasPrefix(content, "# Brief 2025-11-12"))
				require.Contains(t, content, "No new rank 1 candidates.")
				return "reports/brief_2025-11-12.md", nil
			})

		path, err := NewBriefService(reportRepository).Write(testContext(), rec)
		require.NoError(t, err)
		require.Equal(t, "reports/brief_2025-11-12.md", path)
	})

	t.Run("write fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reportRepository := mock_repository.NewMockReportRepository(ctrl)

		reportRepository.EXPECT().
			WriteBrief(gomock.Any(), "2025-11-12", gomock.Any()).
			Return("", errors.New("disk full"))

		_, err := NewBriefService(reportRepository).Write(testContext(), domain.Reconciliation{Date: "2025-11-12"})
		require.ErrorContains(t, err, "disk full")
	})
}

func TestBundleService(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		env := newTestEnv(t)
		writeFile(t, env.dataDir, "Portfolio_Positions_Nov-12-2025.csv", portfolioCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-12.csv", growthCsv)
		rec, err := env.reconciliationService().Run(testContext())
		require.NoError(t, err)

		service := NewBundleService(env.reports, NewBriefService(env.reports))
		path, err := service.Bundle(testContext(), *rec)
		require.NoError(t, err)

		r, err := zip.OpenReader(path)
		require.NoError(t, err)
		defer r.Close()

		names := []string{}
		contents := map[string]string{}
		for _, f := range r.File {
			names = append(names, f.Name)
			rc, err := f.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			rc.Close()
			contents[f.Name] = string(b)
		}
		sort.Strings(names)

		require.Equal(
			t,
			"",
			cmp.Diff(
				[]string{
					"Growth1_2025-11-12.csv",
					"Portfolio_Positions_Nov-12-2025.csv",
					"brief_2025-11-12.md",
					"session_log.csv",
				},
				names,
			),
		)
		require.Equal(t, growthCsv, contents["Growth1_2025-11-12.csv"])
		require.True(t, strings.HasPrefix(contents[SessionLogName], "timestamp,type,details,severity"))
		require.Contains(t, contents[SessionLogName], "FILE_MISSING")
	})
}
