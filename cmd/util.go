package cmd

import (
	"fmt"

	"foxvalley/api"
	"foxvalley/internal/app"
	"foxvalley/internal/logger"
	"foxvalley/internal/repository"
	l2_service "foxvalley/internal/service/l2"
	l3_service "foxvalley/internal/service/l3"
	"foxvalley/internal/util"
)

type Dependencies struct {
	Config         util.Config
	ApiHandler     *api.ApiHandler
	WeeklyBriefApp app.WeeklyBriefApp
}

func InitializeDependencies(cfg util.Config) (*Dependencies, error) {
	err := l2_service.ValidateScoreExpression(cfg.ScoreExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid score expression: %w", err)
	}

	// one cache for the process, the api reloads inputs on every request
	tableRepository := repository.NewTableRepository(repository.NewTableCache())
	snapshotRepository := repository.NewSnapshotRepository(cfg.DataDir)
	archiveRepository := repository.NewArchiveRepository(cfg.ArchiveDir)
	reportRepository := repository.NewReportRepository(cfg.ReportDir)

	tacticalScoreService := l2_service.NewTacticalScoreService(cfg.ScoreExpression)
	reconciliationService := l3_service.NewReconciliationService(
		cfg,
		tableRepository,
		snapshotRepository,
		archiveRepository,
		tacticalScoreService,
	)
	briefService := l3_service.NewBriefService(reportRepository)
	bundleService := l3_service.NewBundleService(reportRepository, briefService)
	archiveService := l3_service.NewArchiveService(
		cfg,
		tableRepository,
		snapshotRepository,
		archiveRepository,
	)

	weeklyBriefApp := app.NewWeeklyBriefApp(
		reconciliationService,
		briefService,
		bundleService,
		archiveService,
		cfg.BundleWeekly,
		cfg.ArchiveWeekly,
	)

	apiHandler := &api.ApiHandler{
		ReconciliationService: reconciliationService,
		BriefService:          briefService,
		ArchiveService:        archiveService,
		BundleService:         bundleService,
		Logger:                logger.New(),
	}

	return &Dependencies{
		Config:         cfg,
		ApiHandler:     apiHandler,
		WeeklyBriefApp: weeklyBriefApp,
	}, nil
}
