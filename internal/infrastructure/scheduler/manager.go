// Package scheduler runs the periodic jobs on a single gocron v2 scheduler.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/logger"
)

// CursorJob is one cursor-bounded sync run.
type CursorJob interface {
	Run(ctx context.Context) error
}

// SchedulerManager owns the gocron scheduler and every job registered on it.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates the scheduler in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log.Named("scheduler"),
	}, nil
}

// ========================================
// Closed-ticket sync (configurable interval, start immediately)
// ========================================

// RegisterClosedTicketSync runs job every interval. Each run gets timeout;
// a run still going when the next tick arrives is rescheduled, not stacked.
func (m *SchedulerManager) RegisterClosedTicketSync(job CursorJob, interval, timeout time.Duration) error {
	if interval <= 0 {
		return errors.New("sync interval must be positive")
	}
	if timeout <= 0 {
		timeout = interval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.runClosedTicketSync(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("sync", "freshdesk"),
		gocron.WithName("freshdesk-closed-tickets"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered closed-ticket sync job", "interval", interval, "timeout", timeout)
	return nil
}

func (m *SchedulerManager) runClosedTicketSync(ctx context.Context, job CursorJob) {
	m.logger.Debugw("scheduled closed-ticket sync started")

	startTime := biztime.NowUTC()
	if err := job.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		m.logger.Errorw("scheduled closed-ticket sync failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Debugw("scheduled closed-ticket sync finished", "duration", time.Since(startTime))
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

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

// Stop waits for running jobs to complete before returning.
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

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
