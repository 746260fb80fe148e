package l3_service

import (
	"context"
	"fmt"
	"strings"

	"foxvalley/internal/calculator"
	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	"foxvalley/internal/repository"
	l1_service "foxvalley/internal/service/l1"
	l2_service "foxvalley/internal/service/l2"
	"foxvalley/internal/util"

	"github.com/google/uuid"
)

// diagnostic types
const (
	EventFileMissing    = "FILE_MISSING"
	EventLoadFailed     = "LOAD_FAILED"
	EventSkippedRows    = "SKIPPED_ROWS"
	EventUnparsedCells  = "UNPARSED_CELLS"
	EventTickerFallback = "TICKER_FALLBACK"
	EventSchemaMismatch = "SCHEMA_MISMATCH"
	EventScoreFailed    = "SCORE_FAILED"
	EventNoHistory      = "INSUFFICIENT_HISTORY"
	EventRunComplete    = "RUN_COMPLETE"
)

type ReconciliationService interface {
	Run(ctx context.Context) (*domain.Reconciliation, error)
}

type reconciliationServiceHandler struct {
	Config               util.Config
	ColumnRules          []l1_service.ColumnRule
	TableRepository      repository.TableRepository
	SnapshotRepository   repository.SnapshotRepository
	ArchiveRepository    repository.ArchiveRepository
	TacticalScoreService l2_service.TacticalScoreService
}

func NewReconciliationService(
	config util.Config,
	tableRepository repository.TableRepository,
	snapshotRepository repository.SnapshotRepository,
	archiveRepository repository.ArchiveRepository,
	tacticalScoreService l2_service.TacticalScoreService,
) ReconciliationService {
	return reconciliationServiceHandler{
		Config:               config,
		ColumnRules:          l1_service.DefaultColumnRules,
		TableRepository:      tableRepository,
		SnapshotRepository:   snapshotRepository,
		ArchiveRepository:    archiveRepository,
		TacticalScoreService: tacticalScoreService,
	}
}

// Run selects the latest inputs, reconciles screens against the portfolio
// and diffs both against the prior snapshots. missing or malformed inputs
// produce diagnostics, not errors.
func (h reconciliationServiceHandler) Run(ctx context.Context) (*domain.Reconciliation, error) {
	log := logger.FromContext(ctx)
	cfg := h.Config

	rec := &domain.Reconciliation{
		RunID:       uuid.New(),
		Screens:     []domain.ScreenSource{},
		Diagnostics: domain.Diagnostics{},
	}
	log = log.With("runID", rec.RunID)
	ctx = logger.WithLogger(ctx, log)

	// portfolio
	rec.PortfolioFile = h.SnapshotRepository.Latest(ctx, cfg.PortfolioKeywords)
	holdings := h.loadHoldings(ctx, rec.PortfolioFile, "portfolio", cfg.PortfolioKeywords, &rec.Diagnostics)
	rec.Portfolio = domain.Portfolio{
		SourceFile: rec.PortfolioFile.Name,
		Date:       rec.PortfolioFile.DateToken,
		Holdings:   holdings,
	}

	// screens
	entries := []domain.ScreenEntry{}
	deltaEntries := []domain.ScreenEntry{}
	priorEntries := []domain.ScreenEntry{}
	priorDate := ""
	for _, source := range cfg.ScreenSources {
		file := h.SnapshotRepository.Latest(ctx, source.Keywords)
		sourceEntries := h.loadScreen(ctx, file, source, &rec.Diagnostics)
		entries = append(entries, sourceEntries...)

		screen := domain.ScreenSource{
			Label:      source.Label,
			File:       file,
			PriorFile:  h.previous(ctx, source.Keywords, file.DateToken),
			NumEntries: len(sourceEntries),
		}
		if screen.PriorFile.Found {
			// sources without a prior snapshot stay out of the delta so
			// their whole list doesn't show up as added
			deltaEntries = append(deltaEntries, sourceEntries...)
			priorEntries = append(priorEntries, h.loadScreen(ctx, screen.PriorFile, source, &domain.Diagnostics{})...)
			if screen.PriorFile.DateToken > priorDate {
				priorDate = screen.PriorFile.DateToken
			}
		}
		rec.Screens = append(rec.Screens, screen)
	}
	rec.Date = runDate(rec)

	candidates := domain.NewCandidateSet(rec.Date, entries)
	candidates = l2_service.CrossMatch(candidates, holdings)
	candidates = l2_service.ClassifyAll(candidates)

	scored, scoreErrors := h.TacticalScoreService.ScoreCandidates(ctx, candidates)
	for _, err := range scoreErrors {
		rec.Diagnostics.Add(EventScoreFailed, domain.SeverityWarning, err.Error())
	}

	rec.Summary = calculator.CalculatePortfolioSummary(holdings, cfg.ManualCash)
	rec.Allocation = l2_service.PlanAllocation(candidates, l2_service.AllocationInput{
		TotalValue:     rec.Summary.TotalValue,
		DeployFraction: cfg.DeployFraction,
		PositionCap:    cfg.PositionCap,
	})
	rec.Candidates = l2_service.ApplyAllocation(scored, rec.Allocation)
	rec.Positions = calculator.BuildPositionViews(
		holdings,
		rec.Summary,
		cfg.TrailingStopPct,
		rec.Candidates,
		l2_service.PositionSignal,
	)

	// deltas
	if priorDate == "" {
		rec.CandidateDelta = l2_service.CompareCandidateSets(candidates, nil)
	} else {
		today := domain.NewCandidateSet(rec.Date, deltaEntries)
		prior := domain.NewCandidateSet(priorDate, priorEntries)
		rec.CandidateDelta = l2_service.CompareCandidateSets(today, &prior)
	}
	if rec.CandidateDelta.InsufficientHistory {
		rec.Diagnostics.Add(EventNoHistory, domain.SeverityInfo, "no prior screen snapshot to compare candidates against")
	}

	rec.PriorPortfolioFile = h.previous(ctx, cfg.PortfolioKeywords, rec.PortfolioFile.DateToken)
	priorHoldings := domain.Portfolio{}
	if rec.PriorPortfolioFile.Found {
		priorHoldings.Date = rec.PriorPortfolioFile.DateToken
		priorHoldings.Holdings = h.loadHoldings(ctx, rec.PriorPortfolioFile, "prior portfolio", cfg.PortfolioKeywords, &domain.Diagnostics{})
	}
	rec.HoldingsDelta = l2_service.CompareTickers(rec.Portfolio.Tickers(), priorHoldings.Tickers())
	rec.HoldingsDelta.Date = rec.Portfolio.Date
	rec.HoldingsDelta.PriorDate = priorHoldings.Date

	rec.Diagnostics.Add(
		EventRunComplete,
		domain.SeverityInfo,
		fmt.Sprintf(
			"%d holdings, %d candidates, %d to buy",
			len(holdings),
			len(rec.Candidates.Candidates),
			len(rec.Allocation.Entries),
		),
	)
	log.Infow(
		"reconciliation complete",
		"date", rec.Date,
		"numHoldings", len(holdings),
		"numCandidates", len(rec.Candidates.Candidates),
		"numDiagnostics", len(rec.Diagnostics),
	)

	return rec, nil
}

// runDate is the newest screen date, then the portfolio date, then today
func runDate(rec *domain.Reconciliation) string {
	date := ""
	for _, s := range rec.Screens {
		if s.File.DateToken > date {
			date = s.File.DateToken
		}
	}
	if date == "" {
		date = rec.PortfolioFile.DateToken
	}
	if date == "" {
		date = util.Today()
	}
	return date
}

// previous looks for the latest snapshot before date in both the data dir and
// the archive
func (h reconciliationServiceHandler) previous(ctx context.Context, keywords []string, date string) domain.SnapshotFile {
	out := h.SnapshotRepository.Previous(ctx, keywords, date)
	if date == "" || h.ArchiveRepository == nil {
		return out
	}
	for _, f := range h.ArchiveRepository.List(ctx, keywords) {
		if f.DateToken == "" || f.DateToken >= date {
			continue
		}
		if !out.Found || f.DateToken > out.DateToken {
			out = f
		}
	}
	return out
}

func (h reconciliationServiceHandler) loadTable(ctx context.Context, file domain.SnapshotFile, diagnostics *domain.Diagnostics) (*l1_service.NormalizeResult, error) {
	t, err := h.TableRepository.Load(ctx, file.Path)
	if err != nil {
		diagnostics.Add(EventLoadFailed, domain.SeverityError, err.Error())
		return nil, err
	}
	if t.SkippedRows > 0 {
		diagnostics.Add(EventSkippedRows, domain.SeverityInfo, fmt.Sprintf("%s: skipped %d non-data rows", file.Name, t.SkippedRows))
	}

	res := l1_service.NormalizeTable(*t, h.ColumnRules)
	if res.UnparsedCells > 0 {
		diagnostics.Add(EventUnparsedCells, domain.SeverityWarning, fmt.Sprintf("%s: %d numeric cells could not be parsed", file.Name, res.UnparsedCells))
	}
	return &res, nil
}

func (h reconciliationServiceHandler) loadHoldings(ctx context.Context, file domain.SnapshotFile, what string, keywords []string, diagnostics *domain.Diagnostics) []domain.Holding {
	if !file.Found {
		diagnostics.Add(EventFileMissing, domain.SeverityWarning, fmt.Sprintf("no %s file matching %s", what, strings.Join(keywords, ", ")))
		return []domain.Holding{}
	}
	res, err := h.loadTable(ctx, file, diagnostics)
	if err != nil {
		return []domain.Holding{}
	}
	switch res.TickerFallback {
	case l1_service.TickerFromDescription:
		diagnostics.Add(EventTickerFallback, domain.SeverityWarning, fmt.Sprintf("%s: no ticker column, using description", file.Name))
	case l1_service.TickerPlaceholder:
		diagnostics.Add(EventTickerFallback, domain.SeverityWarning, fmt.Sprintf("%s: no ticker column, using placeholders", file.Name))
	}
	if n := len(res.PlaceholderRows); n > 0 && res.TickerFallback != l1_service.TickerPlaceholder {
		diagnostics.Add(EventTickerFallback, domain.SeverityInfo, fmt.Sprintf("%s: %d rows without a ticker", file.Name, n))
	}

	return l1_service.ToHoldings(*res, h.Config.CashTickers)
}

func (h reconciliationServiceHandler) loadScreen(ctx context.Context, file domain.SnapshotFile, source util.ScreenSourceConfig, diagnostics *domain.Diagnostics) []domain.ScreenEntry {
	if !file.Found {
		diagnostics.Add(EventFileMissing, domain.SeverityWarning, fmt.Sprintf("no %s screen matching %s", source.Label, strings.Join(source.Keywords, ", ")))
		return []domain.ScreenEntry{}
	}
	res, err := h.loadTable(ctx, file, diagnostics)
	if err != nil {
		return []domain.ScreenEntry{}
	}
	if !l1_service.HasScreenSchema(*res) {
		diagnostics.Add(EventSchemaMismatch, domain.SeverityWarning, fmt.Sprintf("%s: %s screen needs ticker and rank columns", file.Name, source.Label))
		return []domain.ScreenEntry{}
	}

	return l1_service.ToScreenEntries(*res, source.Label)
}
