// Package visit models on-site technician visits.
package visit

import (
	"context"
	"strings"
	"time"

	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

type Visit struct {
	id             uint
	organizationID uint
	branchID       *uint
	ticketID       *int64
	scheduledAt    time.Time
	completedAt    *time.Time
	technician     string
	notesMarkdown  string
	notesHTML      string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewVisit(organizationID uint, branchID *uint, ticketID *int64, scheduledAt time.Time, technician string) (*Visit, error) {
	if organizationID == 0 {
		return nil, errors.NewValidationError("organization_id is required")
	}
	if scheduledAt.IsZero() {
		return nil, errors.NewValidationError("scheduled_at is required")
	}
	technician = strings.TrimSpace(technician)
	if technician == "" {
		return nil, errors.NewValidationError("technician is required")
	}
	now := time.Now().UTC()
	return &Visit{
		organizationID: organizationID,
		branchID:       branchID,
		ticketID:       ticketID,
		scheduledAt:    scheduledAt.UTC(),
		technician:     technician,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructVisit(
	id, organizationID uint,
	branchID *uint,
	ticketID *int64,
	scheduledAt time.Time,
	completedAt *time.Time,
	technician, notesMarkdown, notesHTML string,
	createdAt, updatedAt time.Time,
) *Visit {
	return &Visit{
		id:             id,
		organizationID: organizationID,
		branchID:       branchID,
		ticketID:       ticketID,
		scheduledAt:    scheduledAt,
		completedAt:    completedAt,
		technician:     technician,
		notesMarkdown:  notesMarkdown,
		notesHTML:      notesHTML,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (v *Visit) ID() uint                { return v.id }
func (v *Visit) OrganizationID() uint    { return v.organizationID }
func (v *Visit) BranchID() *uint         { return v.branchID }
func (v *Visit) TicketID() *int64        { return v.ticketID }
func (v *Visit) ScheduledAt() time.Time  { return v.scheduledAt }
func (v *Visit) CompletedAt() *time.Time { return v.completedAt }
func (v *Visit) Technician() string      { return v.technician }
func (v *Visit) NotesMarkdown() string   { return v.notesMarkdown }
func (v *Visit) NotesHTML() string       { return v.notesHTML }
func (v *Visit) CreatedAt() time.Time    { return v.createdAt }
func (v *Visit) UpdatedAt() time.Time    { return v.updatedAt }

func (v *Visit) SetID(id uint) { v.id = id }

func (v *Visit) IsCompleted() bool {
	return v.completedAt != nil
}

// SetNotes stores the markdown source together with its rendered, sanitized HTML.
func (v *Visit) SetNotes(markdown, renderedHTML string) {
	v.notesMarkdown = markdown
	v.notesHTML = renderedHTML
	v.updatedAt = time.Now().UTC()
}

func (v *Visit) Reschedule(at time.Time, technician *string) error {
	if v.IsCompleted() {
		return errors.NewConflictError("completed visits cannot be rescheduled")
	}
	if !at.IsZero() {
		v.scheduledAt = at.UTC()
	}
	if technician != nil {
		t := strings.TrimSpace(*technician)
		if t == "" {
			return errors.NewValidationError("technician cannot be empty")
		}
		v.technician = t
	}
	v.updatedAt = time.Now().UTC()
	return nil
}

func (v *Visit) Complete(at time.Time) error {
	if v.IsCompleted() {
		return errors.NewConflictError("visit is already completed")
	}
	at = at.UTC()
	v.completedAt = &at
	v.updatedAt = time.Now().UTC()
	return nil
}

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Visit, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Visit, int64, error)
}
