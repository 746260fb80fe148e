package l3_service

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestArchiveService(t *testing.T) {
	t.Run("archive stale then history", func(t *testing.T) {
		env := newTestEnv(t)
		writeFile(t, env.dataDir, "Portfolio_Positions_Nov-05-2025.csv", "Symbol,Description,Quantity,Current Value\nAAPL,APPLE INC,250,\"$80,000.00\"\n")
		writeFile(t, env.dataDir, "Portfolio_Positions_Nov-12-2025.csv", portfolioCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-10.csv", priorGrowthCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-11.csv", priorGrowthCsv)
		writeFile(t, env.dataDir, "Growth1_2025-11-12.csv", growthCsv)
		writeFile(t, env.dataDir, "Growth2_undated.csv", growthCsv)

		service := NewArchiveService(env.config, env.tables, env.snapshots, env.archive)
		moved, err := service.ArchiveStale(testContext())
		require.NoError(t, err)
		require.Len(t, moved, 3)

		remaining, err := os.ReadDir(env.dataDir)
		require.NoError(t, err)
		names := []string{}
		for _, e := range remaining {
			names = append(names, e.Name())
		}
		sort.Strings(names)
		require.Equal(
			t,
			"",
			cmp.Diff(
				[]string{
					"Growth1_2025-11-12.csv",
					"Growth2_undated.csv",
					"Portfolio_Positions_Nov-12-2025.csv",
				},
				names,
			),
		)
		_, err = os.Stat(filepath.Join(env.archiveDir, "archive_Portfolio_Positions_Nov-05-2025.csv"))
		require.NoError(t, err)

		points, stats, err := service.History(testContext())
		require.NoError(t, err)
		require.Len(t, points, 2)
		require.Equal(t, "2025-11-05", points[0].Date)
		require.Equal(t, 80000.0, points[0].TotalValue)
		require.Equal(t, "2025-11-12", points[1].Date)
		require.Equal(t, 100000.0, points[1].TotalValue)
		require.InDelta(t, 0.25, *points[1].ChangePct, 1e-9)
		require.Equal(t, 100000.0, stats.High)
	})

	t.Run("nothing to archive", func(t *testing.T) {
		env := newTestEnv(t)
		writeFile(t, env.dataDir, "Growth1_2025-11-12.csv", growthCsv)

		service := NewArchiveService(env.config, env.tables, env.snapshots, env.archive)
		moved, err := service.ArchiveStale(testContext())
		require.NoError(t, err)
		require.Empty(t, moved)

		points, stats, err := service.History(testContext())
		require.NoError(t, err)
		require.Empty(t, points)
		require.Nil(t, stats)
	})
}
