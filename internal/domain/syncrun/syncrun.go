// Package syncrun records every closed-ticket sync run and the scheduler cursor.
package syncrun

import (
	"context"
	"time"

	"github.com/google/uuid"

	"crmdesk/internal/shared/query"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
)

type Trigger string

const (
	TriggerHTTP      Trigger = "http"
	TriggerScheduler Trigger = "scheduler"
	TriggerCLI       Trigger = "cli"
)

// Failure is one ticket that could not be fetched or reconciled. Permanent
// failures will not succeed on a retry of the same remote data.
type Failure struct {
	TicketID  int64  `json:"ticket_id"`
	Error     string `json:"error"`
	Permanent bool   `json:"permanent"`
}

type Run struct {
	id         string
	trigger    Trigger
	since      time.Time
	status     Status
	imported   int
	pages      int
	failures   []Failure
	errMessage string
	startedAt  time.Time
	finishedAt *time.Time
}

func NewRun(trigger Trigger, since time.Time) *Run {
	return &Run{
		id:        uuid.NewString(),
		trigger:   trigger,
		since:     since.UTC(),
		status:    StatusRunning,
		startedAt: time.Now().UTC(),
	}
}

func ReconstructRun(id string, trigger Trigger, since time.Time, status Status, imported, pages int,
	failures []Failure, errMessage string, startedAt time.Time, finishedAt *time.Time) *Run {
	return &Run{
		id:         id,
		trigger:    trigger,
		since:      since,
		status:     status,
		imported:   imported,
		pages:      pages,
		failures:   failures,
		errMessage: errMessage,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

func (r *Run) ID() string              { return r.id }
func (r *Run) Trigger() Trigger        { return r.trigger }
func (r *Run) Since() time.Time        { return r.since }
func (r *Run) Status() Status          { return r.status }
func (r *Run) Imported() int           { return r.imported }
func (r *Run) Pages() int              { return r.pages }
func (r *Run) Failures() []Failure     { return r.failures }
func (r *Run) ErrorMessage() string    { return r.errMessage }
func (r *Run) StartedAt() time.Time    { return r.startedAt }
func (r *Run) FinishedAt() *time.Time  { return r.finishedAt }
func (r *Run) FailedCount() int        { return len(r.failures) }

// Finish closes the run. A fatal error wins over per-ticket failures.
func (r *Run) Finish(imported, pages int, failures []Failure, fatal error) {
	now := time.Now().UTC()
	r.imported = imported
	r.pages = pages
	r.failures = failures
	r.finishedAt = &now

	switch {
	case fatal != nil:
		r.status = StatusFailed
		r.errMessage = fatal.Error()
	case len(failures) > 0:
		r.status = StatusPartial
	default:
		r.status = StatusSucceeded
	}
}

// Cursor is the scheduler's persisted lower bound for the next run.
type Cursor struct {
	Name      string
	Position  time.Time
	UpdatedAt time.Time
}

// CursorClosedTickets names the cursor owned by the periodic closed-ticket sync.
const CursorClosedTickets = "freshdesk.closed_tickets"

type Repository interface {
	Create(ctx context.Context, run *Run) error
	Update(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, page query.PageFilter) ([]*Run, int64, error)

	// GetCursor returns (nil, nil) when the cursor was never saved.
	GetCursor(ctx context.Context, name string) (*Cursor, error)
	SaveCursor(ctx context.Context, cursor *Cursor) error
}
