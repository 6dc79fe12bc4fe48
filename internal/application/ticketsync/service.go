package ticketsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/infrastructure/lock"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

const lockKey = "sync:closed-tickets"

// defaultLockTTL covers one page; the lock is renewed after every page.
const defaultLockTTL = 30 * time.Minute

type SyncClosedTicketsCommand struct {
	Since   time.Time
	Trigger syncrun.Trigger
}

type SyncResult struct {
	RunID    string            `json:"run_id"`
	Since    time.Time         `json:"since"`
	Imported int               `json:"imported"`
	Failures []syncrun.Failure `json:"failures"`
	Pages    int               `json:"pages"`
	Status   syncrun.Status    `json:"status"`

	StartedAt time.Time `json:"started_at"`
}

// Partial reports whether some tickets were left behind.
func (r *SyncResult) Partial() bool {
	return len(r.Failures) > 0
}

// Retryable reports whether any failure may succeed when the same window is
// synced again.
func (r *SyncResult) Retryable() bool {
	for _, f := range r.Failures {
		if !f.Permanent {
			return true
		}
	}
	return false
}

// newFailure records a left-behind ticket. Malformed records and requests
// Freshdesk rejected fail the same way on every run; anything else (remote
// outages, rate limits, local storage errors) may clear up.
func newFailure(ticketID int64, err error) syncrun.Failure {
	return syncrun.Failure{
		TicketID:  ticketID,
		Error:     err.Error(),
		Permanent: apperrors.IsType(err, apperrors.ErrorTypeDataContractViolation) ||
			apperrors.IsType(err, apperrors.ErrorTypeRemoteRejected),
	}
}

type SyncClosedTicketsUseCase struct {
	fetcher    *Fetcher
	reconciler *Reconciler
	runs       syncrun.Repository
	locker     lock.Locker
	lockTTL    time.Duration
	publisher  events.Publisher
	logger     logger.Interface
}

func NewSyncClosedTicketsUseCase(
	fetcher *Fetcher,
	reconciler *Reconciler,
	runs syncrun.Repository,
	locker lock.Locker,
	lockTTL time.Duration,
	publisher events.Publisher,
	logger logger.Interface,
) *SyncClosedTicketsUseCase {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &SyncClosedTicketsUseCase{
		fetcher:    fetcher,
		reconciler: reconciler,
		runs:       runs,
		locker:     locker,
		lockTTL:    lockTTL,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute runs one sync. The returned result is non-nil whenever a run
// record was created, including when err reports a fatal failure.
func (uc *SyncClosedTicketsUseCase) Execute(ctx context.Context, cmd SyncClosedTicketsCommand) (*SyncResult, error) {
	if cmd.Since.IsZero() {
		return nil, apperrors.NewValidationError("since is required")
	}
	if cmd.Trigger == "" {
		cmd.Trigger = syncrun.TriggerCLI
	}

	lease, acquired, err := uc.locker.TryAcquire(ctx, lockKey, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire sync lock: %w", err)
	}
	if !acquired {
		return nil, apperrors.NewSyncInProgressError("a closed-ticket sync is already running")
	}
	defer lease.Release()

	run := syncrun.NewRun(cmd.Trigger, cmd.Since)
	if err := uc.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record sync run: %w", err)
	}

	log := uc.logger.With("run_id", run.ID(), "trigger", string(cmd.Trigger))
	log.Infow("closed-ticket sync started", "since", cmd.Since)

	imported := 0
	var failures []syncrun.Failure

	pages, fatal := uc.fetcher.FetchClosedSince(ctx, cmd.Since, func(ctx context.Context, page int, results []DetailResult) error {
		records := make([]*freshdesk.Ticket, 0, len(results))
		for _, res := range results {
			if res.Err != nil {
				failures = append(failures, newFailure(res.TicketID, res.Err))
				continue
			}
			records = append(records, res.Ticket)
		}

		reconciled := uc.reconciler.Reconcile(ctx, records)
		for _, f := range reconciled.Failures {
			failures = append(failures, newFailure(f.TicketID, f.Err))
		}
		for _, s := range reconciled.Synced {
			imported++
			// one per ticket; a run can outgrow the bus buffer
			if uc.publisher != nil {
				uc.publisher.PublishSync(events.New(events.KindTicketSynced, run.ID(), events.TicketSynced{
					RunID:          run.ID(),
					TicketID:       s.TicketID,
					OrganizationID: s.OrganizationID,
				}))
			}
		}

		log.Debugw("page reconciled", "page", page, "synced", len(reconciled.Synced), "failed", len(reconciled.Failures))
		return uc.renewLock(ctx, log, lease)
	})

	run.Finish(imported, pages, failures, fatal)

	// the run record must be closed even when the caller went away
	if err := uc.runs.Update(context.WithoutCancel(ctx), run); err != nil {
		log.Errorw("failed to finish sync run record", "error", err)
		if fatal == nil {
			fatal = fmt.Errorf("failed to finish sync run: %w", err)
		}
	}

	uc.publishFinished(log, run)

	result := &SyncResult{
		RunID:    run.ID(),
		Since:    run.Since(),
		Imported: imported,
		Failures: failures,
		Pages:    pages,
		Status:   run.Status(),

		StartedAt: run.StartedAt(),
	}

	if fatal != nil {
		log.Errorw("closed-ticket sync failed", "imported", imported, "pages", pages, "error", fatal)
		return result, fatal
	}

	log.Infow("closed-ticket sync finished",
		"status", string(run.Status()),
		"imported", imported,
		"failed", len(failures),
		"pages", pages,
	)
	return result, nil
}

// renewLock keeps the lock alive for the next page. A lock taken over by
// another run stops this one; any other renewal error leaves the current
// expiry in place.
func (uc *SyncClosedTicketsUseCase) renewLock(ctx context.Context, log logger.Interface, lease *lock.Lease) error {
	err := lease.Extend(ctx, uc.lockTTL)
	if errors.Is(err, lock.ErrLockLost) {
		return apperrors.NewSyncInProgressError("sync lock was lost to another run").WithCause(err)
	}
	if err != nil {
		log.Warnw("failed to renew sync lock", "error", err)
	}
	return nil
}

func (uc *SyncClosedTicketsUseCase) publishFinished(log logger.Interface, run *syncrun.Run) {
	payload := events.SyncFinished{
		RunID:    run.ID(),
		Trigger:  string(run.Trigger()),
		Status:   string(run.Status()),
		Since:    run.Since(),
		Imported: run.Imported(),
		Failed:   run.FailedCount(),
		Pages:    run.Pages(),
		Error:    run.ErrorMessage(),
	}
	for _, f := range run.Failures() {
		payload.Failures = append(payload.Failures, events.FailedTicket{TicketID: f.TicketID, Error: f.Error})
	}
	if finished := run.FinishedAt(); finished != nil {
		payload.Duration = finished.Sub(run.StartedAt())
	}

	kind := events.KindSyncCompleted
	if run.Status() == syncrun.StatusFailed {
		kind = events.KindSyncFailed
	}
	uc.publish(log, events.New(kind, run.ID(), payload))
}

func (uc *SyncClosedTicketsUseCase) publish(log logger.Interface, e events.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(e); err != nil {
		log.Warnw("failed to publish sync event", "kind", string(e.Kind), "error", err)
	}
}
