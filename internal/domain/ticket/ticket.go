// Package ticket is the local mirror of Freshdesk tickets. The local ID is
// the remote ticket ID; there is no independent local identity.
package ticket

import (
	"time"

	"crmdesk/internal/shared/errors"
)

// Status is the Freshdesk status code. Accounts can define custom codes
// above 5, so any positive value is accepted.
type Status int

const (
	StatusOpen     Status = 2
	StatusPending  Status = 3
	StatusResolved Status = 4
	StatusClosed   Status = 5
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusClosed:
		return "closed"
	default:
		return "custom"
	}
}

// Snapshot carries every mutable attribute of a ticket as last seen remotely.
type Snapshot struct {
	ID             int64
	Subject        string
	Status         Status
	Priority       int
	Type           string
	Source         int
	RequesterEmail string
	RequesterID    *uint
	OrganizationID *uint
	Description    string
	CustomFields   map[string]any
	Stats          map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Ticket struct {
	snap Snapshot
}

// NewTicket validates a snapshot. Timestamps are kept as given (UTC) since
// they are the remote ones.
func NewTicket(s Snapshot) (*Ticket, error) {
	if s.ID <= 0 {
		return nil, errors.NewValidationError("ticket id must be positive")
	}
	if s.Status <= 0 {
		return nil, errors.NewValidationError("ticket status is required")
	}
	if s.UpdatedAt.IsZero() {
		return nil, errors.NewValidationError("ticket updated_at is required")
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.UpdatedAt
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	if s.CustomFields == nil {
		s.CustomFields = map[string]any{}
	}
	if s.Stats == nil {
		s.Stats = map[string]any{}
	}
	return &Ticket{snap: s}, nil
}

func (t *Ticket) ID() int64                    { return t.snap.ID }
func (t *Ticket) Subject() string              { return t.snap.Subject }
func (t *Ticket) Status() Status               { return t.snap.Status }
func (t *Ticket) Priority() int                { return t.snap.Priority }
func (t *Ticket) Type() string                 { return t.snap.Type }
func (t *Ticket) Source() int                  { return t.snap.Source }
func (t *Ticket) RequesterEmail() string       { return t.snap.RequesterEmail }
func (t *Ticket) RequesterID() *uint           { return t.snap.RequesterID }
func (t *Ticket) OrganizationID() *uint        { return t.snap.OrganizationID }
func (t *Ticket) Description() string          { return t.snap.Description }
func (t *Ticket) CustomFields() map[string]any { return t.snap.CustomFields }
func (t *Ticket) Stats() map[string]any        { return t.snap.Stats }
func (t *Ticket) CreatedAt() time.Time         { return t.snap.CreatedAt }
func (t *Ticket) UpdatedAt() time.Time         { return t.snap.UpdatedAt }

// Snapshot returns a copy of the ticket's attributes.
func (t *Ticket) Snapshot() Snapshot { return t.snap }

func (t *Ticket) IsClosed() bool {
	return t.snap.Status == StatusClosed
}
