package dto

import (
	"time"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/shared/query"
)

// FilterFields are the list filters accepted on /api/tickets.
var FilterFields = query.NewFields(
	query.Field{Name: "status", Column: "status", Kind: query.KindInt},
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "requester_id", Column: "requester_id", Kind: query.KindInt},
	query.Field{Name: "subject", Column: "subject", Kind: query.KindString},
	query.Field{Name: "requester_email", Column: "requester_email", Kind: query.KindString},
	query.Field{Name: "updated", Column: "updated_at", Kind: query.KindTime},
)

type TicketDTO struct {
	ID             int64          `json:"id"`
	Subject        string         `json:"subject"`
	Status         int            `json:"status"`
	StatusName     string         `json:"status_name"`
	Priority       int            `json:"priority"`
	Type           string         `json:"type"`
	Source         int            `json:"source"`
	RequesterEmail string         `json:"requester_email"`
	RequesterID    *uint          `json:"requester_id"`
	OrganizationID *uint          `json:"organization_id"`
	Description    string         `json:"description,omitempty"`
	CustomFields   map[string]any `json:"custom_fields"`
	Stats          map[string]any `json:"stats,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ListTicketsResponse struct {
	Tickets  []*TicketDTO
	Total    int64
	Page     int
	PageSize int
}

// ToTicketDTO maps a ticket. List responses leave out the description and
// stats, which can be large.
func ToTicketDTO(t *ticket.Ticket, detailed bool) *TicketDTO {
	if t == nil {
		return nil
	}
	d := &TicketDTO{
		ID:             t.ID(),
		Subject:        t.Subject(),
		Status:         int(t.Status()),
		StatusName:     t.Status().String(),
		Priority:       t.Priority(),
		Type:           t.Type(),
		Source:         t.Source(),
		RequesterEmail: t.RequesterEmail(),
		RequesterID:    t.RequesterID(),
		OrganizationID: t.OrganizationID(),
		CustomFields:   t.CustomFields(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
	if detailed {
		d.Description = t.Description()
		d.Stats = t.Stats()
	}
	return d
}
