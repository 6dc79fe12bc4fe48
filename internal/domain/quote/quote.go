// Package quote models price quotes sent to organizations. Amounts are
// integer cents so arithmetic stays exact.
package quote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

type Quote struct {
	id             uint
	number         string
	organizationID uint
	requesterID    *uint
	title          string
	amountCents    int64
	currency       string
	status         Status
	sentAt         *time.Time
	decidedAt      *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewQuote(number string, organizationID uint, requesterID *uint, title string, amountCents int64, currency string) (*Quote, error) {
	if number == "" {
		return nil, errors.NewValidationError("quote number is required")
	}
	if organizationID == 0 {
		return nil, errors.NewValidationError("organization_id is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("quote title is required")
	}
	if amountCents < 0 {
		return nil, errors.NewValidationError("amount_cents cannot be negative")
	}
	now := time.Now().UTC()
	return &Quote{
		number:         number,
		organizationID: organizationID,
		requesterID:    requesterID,
		title:          title,
		amountCents:    amountCents,
		currency:       strings.ToUpper(currency),
		status:         StatusDraft,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructQuote(
	id uint,
	number string,
	organizationID uint,
	requesterID *uint,
	title string,
	amountCents int64,
	currency string,
	status Status,
	sentAt, decidedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Quote {
	return &Quote{
		id:             id,
		number:         number,
		organizationID: organizationID,
		requesterID:    requesterID,
		title:          title,
		amountCents:    amountCents,
		currency:       currency,
		status:         status,
		sentAt:         sentAt,
		decidedAt:      decidedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (q *Quote) ID() uint              { return q.id }
func (q *Quote) Number() string        { return q.number }
func (q *Quote) OrganizationID() uint  { return q.organizationID }
func (q *Quote) RequesterID() *uint    { return q.requesterID }
func (q *Quote) Title() string         { return q.title }
func (q *Quote) AmountCents() int64    { return q.amountCents }
func (q *Quote) Currency() string      { return q.currency }
func (q *Quote) Status() Status        { return q.status }
func (q *Quote) SentAt() *time.Time    { return q.sentAt }
func (q *Quote) DecidedAt() *time.Time { return q.decidedAt }
func (q *Quote) CreatedAt() time.Time  { return q.createdAt }
func (q *Quote) UpdatedAt() time.Time  { return q.updatedAt }

func (q *Quote) SetID(id uint) { q.id = id }

// Revise changes title or amount. Only drafts can be revised.
func (q *Quote) Revise(title *string, amountCents *int64) error {
	if q.status != StatusDraft {
		return errors.NewConflictError(fmt.Sprintf("quote %s is %s and can no longer be edited", q.number, q.status))
	}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return errors.NewValidationError("quote title cannot be empty")
		}
		q.title = t
	}
	if amountCents != nil {
		if *amountCents < 0 {
			return errors.NewValidationError("amount_cents cannot be negative")
		}
		q.amountCents = *amountCents
	}
	q.updatedAt = time.Now().UTC()
	return nil
}

// TransitionTo moves the quote along draft -> sent -> accepted|rejected.
// A sent quote may go back to draft for revision.
func (q *Quote) TransitionTo(target Status) error {
	if !q.status.CanTransitionTo(target) {
		return errors.NewConflictError(fmt.Sprintf("cannot move quote from %s to %s", q.status, target))
	}
	now := time.Now().UTC()
	switch target {
	case StatusSent:
		q.sentAt = &now
	case StatusDraft:
		q.sentAt = nil
	case StatusAccepted, StatusRejected:
		q.decidedAt = &now
	}
	q.status = target
	q.updatedAt = now
	return nil
}

type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Quote, error)
	List(ctx context.Context, filter query.ListFilter) ([]*Quote, int64, error)
}
