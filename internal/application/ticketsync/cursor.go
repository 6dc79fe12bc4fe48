package ticketsync

import (
	"context"
	"fmt"
	"time"

	"crmdesk/internal/domain/syncrun"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

// defaultCursorLookback bounds the first run, before any cursor was saved.
const defaultCursorLookback = 7 * 24 * time.Hour

// closedTicketsSyncer is the part of SyncClosedTicketsUseCase the cursor runner drives.
type closedTicketsSyncer interface {
	Execute(ctx context.Context, cmd SyncClosedTicketsCommand) (*SyncResult, error)
}

// CursorSync runs the sync from the persisted cursor and moves the cursor
// forward unless some failure may clear up on a retry. It is what the
// scheduler calls.
type CursorSync struct {
	syncer          closedTicketsSyncer
	runs            syncrun.Repository
	overlap         time.Duration
	defaultLookback time.Duration
	logger          logger.Interface
	nowFn           func() time.Time
}

func NewCursorSync(syncer closedTicketsSyncer, runs syncrun.Repository, overlap, defaultLookback time.Duration, logger logger.Interface) *CursorSync {
	if defaultLookback <= 0 {
		defaultLookback = defaultCursorLookback
	}
	if overlap < 0 {
		overlap = 0
	}
	return &CursorSync{
		syncer:          syncer,
		runs:            runs,
		overlap:         overlap,
		defaultLookback: defaultLookback,
		logger:          logger,
		nowFn:           time.Now,
	}
}

// Since returns the bound the next run would use.
func (c *CursorSync) Since(ctx context.Context) (time.Time, error) {
	cursor, err := c.runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load sync cursor: %w", err)
	}
	if cursor == nil {
		return c.nowFn().UTC().Add(-c.defaultLookback), nil
	}
	return cursor.Position, nil
}

// Run performs one cursor-bounded sync. A run already in progress elsewhere
// is skipped without error.
func (c *CursorSync) Run(ctx context.Context) error {
	since, err := c.Since(ctx)
	if err != nil {
		return err
	}

	result, err := c.syncer.Execute(ctx, SyncClosedTicketsCommand{Since: since, Trigger: syncrun.TriggerScheduler})
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeSyncInProgress) {
			c.logger.Infow("skipping scheduled sync, another run holds the lock")
			return nil
		}
		return err
	}

	if result.Retryable() {
		c.logger.Warnw("sync cursor kept, run left tickets behind",
			"run_id", result.RunID,
			"failed", len(result.Failures),
			"cursor", since,
		)
		return nil
	}
	if result.Partial() {
		c.logger.Warnw("sync cursor advancing past permanently failed tickets",
			"run_id", result.RunID,
			"failed", len(result.Failures),
		)
	}

	next := result.StartedAt.Add(-c.overlap).UTC()
	if next.Before(since) {
		next = since
	}
	cursor := &syncrun.Cursor{
		Name:      syncrun.CursorClosedTickets,
		Position:  next,
		UpdatedAt: c.nowFn().UTC(),
	}
	if err := c.runs.SaveCursor(ctx, cursor); err != nil {
		return fmt.Errorf("failed to advance sync cursor: %w", err)
	}

	c.logger.Infow("sync cursor advanced", "run_id", result.RunID, "from", since, "to", next)
	return nil
}
