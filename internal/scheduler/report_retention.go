// Package scheduler holds the background jobs of the API.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-insights-api/infrastructure/repository"
	"github.com/vfg2006/revenue-insights-api/internal/config"
)

type ReportRetentionConfig struct {
	CronSchedule string
	Days         int
	Enabled      bool
}

// ReportRetentionService deletes stored reports older than the retention period.
type ReportRetentionService struct {
	scheduler         *gocron.Scheduler
	reportRepo        repository.ReportRepository
	config            ReportRetentionConfig
	now               func() time.Time
	syncRunning       bool
	syncMutex         sync.Mutex
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
	lastDeleted       int64
	lastError         string
}

func NewReportRetentionService(reportRepo repository.ReportRepository, cfg *config.Config) *ReportRetentionService {
	retention := ReportRetentionConfig{
		CronSchedule: cfg.ReportRetention.CronSchedule,
		Days:         cfg.ReportRetention.Days,
		Enabled:      cfg.ReportRetention.Enabled,
	}
	if retention.Days <= 0 {
		retention.Days = 30
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": retention.CronSchedule,
		"days":          retention.Days,
	}).Info("report retention scheduler configured")

	return &ReportRetentionService{
		scheduler:  gocron.NewScheduler(time.UTC),
		reportRepo: reportRepo,
		config:     retention,
		now:        time.Now,
	}
}

func (s *ReportRetentionService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("report retention disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting report retention cron")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.Purge(context.Background()); err != nil {
			logrus.WithError(err).Error("report retention failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule report retention: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping report retention cron")
		s.scheduler.Stop()
	}()

	return nil
}

// Purge deletes the expired reports. A run already in progress makes it a no-op.
func (s *ReportRetentionService) Purge(ctx context.Context) (int64, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("report retention already running")
		return 0, nil
	}
	s.syncRunning = true
	s.lastRunStartedAt = s.now()
	s.syncMutex.Unlock()

	before := s.now().UTC().AddDate(0, 0, -s.config.Days)
	deleted, err := s.reportRepo.DeleteOlderThan(ctx, before)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false
	s.lastRunFinishedAt = s.now()
	s.lastDeleted = deleted
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
		return 0, fmt.Errorf("delete reports before %s: %w", before.Format(time.DateOnly), err)
	}

	logrus.WithFields(logrus.Fields{
		"deleted": deleted,
		"before":  before.Format(time.DateOnly),
	}).Info("report retention finished")

	return deleted, nil
}

// TriggerManualSync starts a purge in the background.
func (s *ReportRetentionService) TriggerManualSync() {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()
	if running {
		logrus.Info("report retention already running, ignoring manual trigger")
		return
	}

	logrus.Info("starting manual report retention")
	go func() {
		if _, err := s.Purge(context.Background()); err != nil {
			logrus.WithError(err).Error("manual report retention failed")
		}
	}()
}

func (s *ReportRetentionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":          s.config.Enabled,
		"cron":             s.config.CronSchedule,
		"retention_days":   s.config.Days,
		"running":          s.syncRunning,
		"last_started_at":  s.lastRunStartedAt,
		"last_finished_at": s.lastRunFinishedAt,
		"last_deleted":     s.lastDeleted,
		"last_error":       s.lastError,
	}
}
