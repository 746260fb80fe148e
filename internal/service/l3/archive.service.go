package l3_service

import (
	"context"
	"fmt"

	"foxvalley/internal/calculator"
	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	"foxvalley/internal/repository"
	l1_service "foxvalley/internal/service/l1"
	"foxvalley/internal/util"
)

type ArchiveService interface {
	// ArchiveStale moves every dated export that is not the latest for its
	// keyword set into the archive
	ArchiveStale(ctx context.Context) ([]string, error)
	// History is total portfolio value per dated snapshot, live and archived
	History(ctx context.Context) ([]domain.HistoryPoint, *calculator.HistoryStats, error)
}

type archiveServiceHandler struct {
	Config             util.Config
	TableRepository    repository.TableRepository
	SnapshotRepository repository.SnapshotRepository
	ArchiveRepository  repository.ArchiveRepository
}

func NewArchiveService(
	config util.Config,
	tableRepository repository.TableRepository,
	snapshotRepository repository.SnapshotRepository,
	archiveRepository repository.ArchiveRepository,
) ArchiveService {
	return archiveServiceHandler{
		Config:             config,
		TableRepository:    tableRepository,
		SnapshotRepository: snapshotRepository,
		ArchiveRepository:  archiveRepository,
	}
}

func (h archiveServiceHandler) keywordSets() [][]string {
	out := [][]string{h.Config.PortfolioKeywords}
	for _, s := range h.Config.ScreenSources {
		out = append(out, s.Keywords)
	}
	return out
}

func (h archiveServiceHandler) ArchiveStale(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	// a file can match more than one keyword set, it is kept if it is the
	// latest for any of them
	keep := map[string]bool{}
	candidates := map[string]domain.SnapshotFile{}
	order := []string{}
	for _, keywords := range h.keywordSets() {
		latest := h.SnapshotRepository.Latest(ctx, keywords)
		if latest.Found {
			keep[latest.Path] = true
		}
		for _, f := range h.SnapshotRepository.List(ctx, keywords) {
			if f.DateToken == "" {
				continue
			}
			if _, ok := candidates[f.Path]; !ok {
				order = append(order, f.Path)
			}
			candidates[f.Path] = f
		}
	}

	stale := []domain.SnapshotFile{}
	for _, path := range order {
		if !keep[path] {
			stale = append(stale, candidates[path])
		}
	}
	log.Infow("archiving stale snapshots", "count", len(stale))

	moved, err := h.ArchiveRepository.Archive(ctx, stale)
	if err != nil {
		return moved, fmt.Errorf("failed to archive snapshots: %w", err)
	}
	return moved, nil
}

func (h archiveServiceHandler) History(ctx context.Context) ([]domain.HistoryPoint, *calculator.HistoryStats, error) {
	log := logger.FromContext(ctx)
	keywords := h.Config.PortfolioKeywords

	// live files win over archived copies with the same date
	byDate := map[string]domain.SnapshotFile{}
	for _, f := range h.ArchiveRepository.List(ctx, keywords) {
		if f.DateToken != "" {
			byDate[f.DateToken] = f
		}
	}
	for _, f := range h.SnapshotRepository.List(ctx, keywords) {
		if f.DateToken != "" {
			byDate[f.DateToken] = f
		}
	}

	points := []domain.HistoryPoint{}
	for date, f := range byDate {
		t, err := h.TableRepository.Load(ctx, f.Path)
		if err != nil {
			log.Warnw("skipping unreadable snapshot", "path", f.Path, "error", err)
			continue
		}
		res := l1_service.NormalizeTable(*t, l1_service.DefaultColumnRules)
		holdings := l1_service.ToHoldings(res, h.Config.CashTickers)
		summary := calculator.CalculatePortfolioSummary(holdings, 0)
		points = append(points, domain.HistoryPoint{
			Label:      f.Name,
			Date:       date,
			TotalValue: summary.TotalValue,
		})
	}

	out, stats, err := calculator.CalculateHistory(points)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to calculate history: %w", err)
	}
	return out, stats, nil
}
