package app

import (
	"context"
	"fmt"
	"time"

	"foxvalley/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler runs jobs on standard 5 field cron schedules in a fixed timezone
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

func NewScheduler(timezone string, log *zap.SugaredLogger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log.With("component", "scheduler"),
	}, nil
}

func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		log := s.log.With("job", job.Name())
		ctx := logger.WithLogger(context.Background(), log)
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			log.Errorw("job failed", "error", err)
			return
		}
		log.Infow("job completed", "durationMs", time.Since(start).Milliseconds())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", job.Name(), err)
	}

	s.log.Infow("job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type weeklyBriefJob struct {
	app WeeklyBriefApp
}

func NewWeeklyBriefJob(app WeeklyBriefApp) Job {
	return weeklyBriefJob{app: app}
}

func (j weeklyBriefJob) Name() string {
	return "weekly-brief"
}

func (j weeklyBriefJob) Run(ctx context.Context) error {
	_, err := j.app.Run(ctx)
	return err
}
