package app

import (
	"context"
	"fmt"

	"foxvalley/internal/logger"
	l3_service "foxvalley/internal/service/l3"
)

// WeeklyBriefApp runs the reconciliation and stores its outputs: the dated
// brief, then optionally the zip bundle and an archive sweep
type WeeklyBriefApp interface {
	Run(ctx context.Context) (*WeeklyBriefResult, error)
}

type WeeklyBriefResult struct {
	Date       string
	BriefPath  string
	BundlePath string
	Archived   []string
}

type weeklyBriefAppHandler struct {
	ReconciliationService l3_service.ReconciliationService
	BriefService          l3_service.BriefService
	BundleService         l3_service.BundleService
	ArchiveService        l3_service.ArchiveService
	WithBundle            bool
	WithArchive           bool
}

func NewWeeklyBriefApp(
	reconciliationService l3_service.ReconciliationService,
	briefService l3_service.BriefService,
	bundleService l3_service.BundleService,
	archiveService l3_service.ArchiveService,
	withBundle bool,
	withArchive bool,
) WeeklyBriefApp {
	return weeklyBriefAppHandler{
		ReconciliationService: reconciliationService,
		BriefService:          briefService,
		BundleService:         bundleService,
		ArchiveService:        archiveService,
		WithBundle:            withBundle,
		WithArchive:           withArchive,
	}
}

func (h weeklyBriefAppHandler) Run(ctx context.Context) (*WeeklyBriefResult, error) {
	log := logger.FromContext(ctx)

	rec, err := h.ReconciliationService.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	out := &WeeklyBriefResult{
		Date:     rec.Date,
		Archived: []string{},
	}

	out.BriefPath, err = h.BriefService.Write(ctx, *rec)
	if err != nil {
		return nil, err
	}

	if h.WithBundle {
		out.BundlePath, err = h.BundleService.Bundle(ctx, *rec)
		if err != nil {
			return nil, err
		}
	}

	// archive last, the bundle needs the inputs where the run found them
	if h.WithArchive {
		out.Archived, err = h.ArchiveService.ArchiveStale(ctx)
		if err != nil {
			return nil, err
		}
	}

	log.Infow("weekly brief complete", "date", out.Date, "brief", out.BriefPath, "bundle", out.BundlePath, "numArchived", len(out.Archived))
	return out, nil
}
