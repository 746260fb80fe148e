package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foxvalley/internal/repository"
	l2_service "foxvalley/internal/service/l2"
	l3_service "foxvalley/internal/service/l3"
	"foxvalley/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPortfolio = `Symbol,Description,Quantity,Last Price,Current Value
AAPL,APPLE INC,250,$200.00,"$50,000.00"
MSFT,MICROSOFT CORP,100,$400.00,"$40,000.00"
CASH,CASH,,,"$10,000.00"
`

const testScreen = `Ticker,Company,Zacks Rank,Composite Score
AAPL,Apple Inc,2,40
GOOG,Alphabet Inc,1,60
TSLA,Tesla Inc,1,30
`

func newTestHandler(t *testing.T) (ApiHandler, util.Config) {
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	cfg := util.DefaultConfig()
	cfg.DataDir = filepath.Join(root, "data")
	cfg.ArchiveDir = filepath.Join(root, "archive")
	cfg.ReportDir = filepath.Join(root, "reports")
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "Portfolio_2025-11-12.csv"), []byte(testPortfolio), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "Growth1_2025-11-12.csv"), []byte(testScreen), 0644))

	tables := repository.NewTableRepository(repository.NewTableCache())
	snapshots := repository.NewSnapshotRepository(cfg.DataDir)
	archive := repository.NewArchiveRepository(cfg.ArchiveDir)
	reports := repository.NewReportRepository(cfg.ReportDir)
	briefService := l3_service.NewBriefService(reports)

	return ApiHandler{
		ReconciliationService: l3_service.NewReconciliationService(
			cfg,
			tables,
			snapshots,
			archive,
			l2_service.NewTacticalScoreService(cfg.ScoreExpression),
		),
		BriefService:   briefService,
		ArchiveService: l3_service.NewArchiveService(cfg, tables, snapshots, archive),
		BundleService:  l3_service.NewBundleService(reports, briefService),
		Logger:         zap.NewNop().Sugar(),
	}, cfg
}

func serve(t *testing.T, h ApiHandler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	h.Router().ServeHTTP(w, req)
	return w
}

func TestApi(t *testing.T) {
	t.Run("allocation", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/allocation")
		require.Equal(t, 200, w.Code)

		out := getAllocationResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(
			t,
			"",
			cmp.Diff(
				getAllocationResponse{
					Date:           "2025-11-12",
					TotalValue:     "100000.00",
					DeployFraction: 0.85,
					PositionCap:    0.15,
					Deployable:     "85000.00",
					PerPositionPct: 0.15,
					TotalAmount:    "30000.00",
					Entries: []allocationEntryResponse{
						{Ticker: "GOOG", Pct: 0.15, Amount: "15000.00"},
						{Ticker: "TSLA", Pct: 0.15, Amount: "15000.00"},
					},
				},
				out,
			),
		)
	})

	t.Run("candidates filtered by action", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/candidates?action=review")
		require.Equal(t, 200, w.Code)

		out := getCandidatesResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Candidates, 1)
		require.Equal(t, "AAPL", out.Candidates[0].Ticker)
		require.True(t, out.Candidates[0].Held)
		require.Len(t, out.Screens, 3)
	})

	t.Run("unknown action", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/candidates?action=yolo")
		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), `"error"`)
	})

	t.Run("portfolio", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/portfolio")
		require.Equal(t, 200, w.Code)

		out := getPortfolioResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, 100000.0, out.Summary.TotalValue)
		require.Equal(t, 10000.0, out.Summary.CashValue)
		require.Len(t, out.Positions, 2)
		require.True(t, out.Delta.InsufficientHistory)
	})

	t.Run("delta without history", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/delta")
		require.Equal(t, 200, w.Code)

		out := getDeltaResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.True(t, out.Candidates.InsufficientHistory)
		require.Empty(t, out.Candidates.Added)
		require.Empty(t, out.Candidates.Removed)
	})

	t.Run("brief as html and markdown", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/brief")
		require.Equal(t, 200, w.Code)
		require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
		require.Contains(t, w.Body.String(), "<h1>Brief 2025-11-12</h1>")
		require.Contains(t, w.Body.String(), "<table>")

		w = serve(t, h, http.MethodGet, "/brief?format=md")
		require.Equal(t, 200, w.Code)
		require.True(t, strings.HasPrefix(w.Body.String(), "# Brief 2025-11-12"))
	})

	t.Run("write then read brief", func(t *testing.T) {
		h, cfg := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/brief?date=2025-11-12")
		require.Equal(t, 404, w.Code)

		w = serve(t, h, http.MethodPost, "/brief")
		require.Equal(t, 200, w.Code)
		_, err := os.Stat(filepath.Join(cfg.ReportDir, "brief_2025-11-12.md"))
		require.NoError(t, err)

		w = serve(t, h, http.MethodGet, "/brief?date=2025-11-12&format=md")
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), "| GOOG | Growth1 | 15.0% | $15,000.00 |")
	})

	t.Run("history", func(t *testing.T) {
		h, _ := newTestHandler(t)
		w := serve(t, h, http.MethodGet, "/history")
		require.Equal(t, 200, w.Code)

		out := getHistoryResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Points, 1)
		require.Equal(t, 100000.0, out.Points[0].TotalValue)
	})
}
