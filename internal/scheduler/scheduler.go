package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/config"
	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/service/notify"
)

const jobTimeout = 2 * time.Minute

// DashboardBuilder computes a fresh dashboard.
type DashboardBuilder interface {
	BuildDashboard(ctx context.Context) (*models.Dashboard, error)
}

// Narrator optionally adds a board narrative to the digest.
type Narrator interface {
	Enabled() bool
	Generate(ctx context.Context, d models.Dashboard) (string, error)
}

// Invalidator drops cached inputs before a scheduled run.
type Invalidator interface {
	Clear()
}

// Scheduler runs the periodic digest job.
type Scheduler struct {
	cron      *cron.Cron
	spec      string
	builder   DashboardBuilder
	narrator  Narrator
	publisher notify.Publisher
	cache     Invalidator
	logger    *zap.Logger
}

// NewScheduler validates the schedule and timezone and prepares the job.
// narrator and cache may be nil.
func NewScheduler(cfg config.ReportingConfig, builder DashboardBuilder, narrator Narrator, publisher notify.Publisher, cache Invalidator, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		spec:      cfg.CronSchedule,
		builder:   builder,
		narrator:  narrator,
		publisher: publisher,
		cache:     cache,
		logger:    logger,
	}

	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.runScheduled); err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", cfg.CronSchedule, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunOnce rebuilds the dashboard from fresh inputs and publishes the digest.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if s.cache != nil {
		s.cache.Clear()
	}

	d, err := s.builder.BuildDashboard(ctx)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	narrative := ""
	if s.narrator != nil && s.narrator.Enabled() {
		narrative, err = s.narrator.Generate(ctx, *d)
		if err != nil {
			// The digest is still useful without the pitch.
			s.logger.Warn("narrative unavailable", zap.Error(err))
			narrative = ""
		}
	}

	if s.publisher == nil {
		return notify.ErrDisabled
	}
	return s.publisher.PublishDigest(ctx, *d, narrative)
}

func (s *Scheduler) runScheduled() {
	s.logger.Info("generating scheduled digest")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	err := s.RunOnce(ctx)
	switch {
	case errors.Is(err, notify.ErrDisabled):
		s.logger.Info("digest computed, delivery disabled")
	case err != nil:
		s.logger.Error("scheduled digest failed", zap.Error(err))
	default:
		s.logger.Info("scheduled digest sent")
	}
}
