package l3_service

import (
	"context"
	"fmt"

	"foxvalley/internal/domain"
	"foxvalley/internal/logger"
	"foxvalley/internal/repository"

	"github.com/gocarina/gocsv"
)

const SessionLogName = "session_log.csv"

type BundleService interface {
	// Bundle zips the run's input files, its diagnostics and the brief
	Bundle(ctx context.Context, rec domain.Reconciliation) (string, error)
}

type bundleServiceHandler struct {
	ReportRepository repository.ReportRepository
	BriefService     BriefService
}

func NewBundleService(reportRepository repository.ReportRepository, briefService BriefService) BundleService {
	return bundleServiceHandler{
		ReportRepository: reportRepository,
		BriefService:     briefService,
	}
}

func (h bundleServiceHandler) Bundle(ctx context.Context, rec domain.Reconciliation) (string, error) {
	files := []repository.BundleFile{}
	for _, f := range rec.InputFiles() {
		files = append(files, repository.BundleFile{
			Name: f.Name,
			Path: f.Path,
		})
	}

	events := []domain.Diagnostic(rec.Diagnostics)
	if events == nil {
		events = []domain.Diagnostic{}
	}
	sessionLog, err := gocsv.MarshalBytes(&events)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session log: %w", err)
	}
	files = append(files, repository.BundleFile{
		Name:    SessionLogName,
		Content: sessionLog,
	})

	files = append(files, repository.BundleFile{
		Name:    repository.BriefName(rec.Date),
		Content: []byte(h.BriefService.Render(rec)),
	})

	path, err := h.ReportRepository.WriteBundle(ctx, rec.Date, files)
	if err != nil {
		return "", fmt.Errorf("failed to write bundle: %w", err)
	}
	logger.FromContext(ctx).Infow("bundled session", "runID", rec.RunID, "path", path)

	return path, nil
}
