// Package scheduler runs the entitlement maintenance jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"bilig/internal/application/entitlement/dto"
	"bilig/internal/shared/biztime"
	"bilig/internal/shared/logger"
)

// ExpirySweeper corrects stored entitlement statuses that have passed
// their expiry. userID 0 means sweep every account.
type ExpirySweeper interface {
	Execute(ctx context.Context, userID uint) (*dto.SweepResult, error)
}

// OrphanCleaner removes entitlement rows whose course no longer exists.
type OrphanCleaner interface {
	Execute(ctx context.Context) (*dto.CleanupResult, error)
}

// SchedulerManager manages the background jobs on one gocron scheduler.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler running in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterEntitlementJobs registers the entitlement maintenance jobs:
//   - expiry sweep every sweepIntervalMinutes, starting immediately
//   - orphan cleanup at 04:00 business time daily
func (m *SchedulerManager) RegisterEntitlementJobs(
	sweeper ExpirySweeper,
	cleaner OrphanCleaner,
	sweepIntervalMinutes int,
) error {
	if sweepIntervalMinutes <= 0 {
		sweepIntervalMinutes = 60
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(time.Duration(sweepIntervalMinutes)*time.Minute),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.sweepExpired(ctx, sweeper)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("entitlement", "expiry-sweep"),
		gocron.WithName("entitlement-expiry-sweep"),
	)
	if err != nil {
		return err
	}

	_, err = m.scheduler.NewJob(
		gocron.CronJob("0 4 * * *", false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.cleanupOrphans(ctx, cleaner)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("entitlement", "orphan-cleanup"),
		gocron.WithName("entitlement-orphan-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered entitlement jobs",
		"sweep_interval_minutes", sweepIntervalMinutes,
		"orphan_cleanup", "04:00",
	)
	return nil
}

func (m *SchedulerManager) sweepExpired(ctx context.Context, sweeper ExpirySweeper) {
	m.logger.Debugw("entitlement expiry sweep started")

	startTime := biztime.NowUTC()
	result, err := sweeper.Execute(ctx, 0)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("entitlement expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.ExpiredCount > 0 {
		m.logger.Infow("entitlement expiry sweep completed",
			"expired_count", result.ExpiredCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no entitlements to expire",
			"duration", time.Since(startTime),
		)
	}
}

func (m *SchedulerManager) cleanupOrphans(ctx context.Context, cleaner OrphanCleaner) {
	m.logger.Debugw("orphan entitlement cleanup started")

	startTime := biztime.NowUTC()
	result, err := cleaner.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("orphan entitlement cleanup failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if result.DeletedCount > 0 {
		m.logger.Infow("orphan entitlement cleanup completed",
			"deleted_count", result.DeletedCount,
			"orphan_course_ids", result.OrphanCourseIDs,
			"duration", time.Since(startTime),
		)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}
