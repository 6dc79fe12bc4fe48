package mappers

import (
	"fmt"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/models"
)

// TicketMapper converts between the ticket entity and its row.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
}

type ticketMapper struct{}

func NewTicketMapper() TicketMapper {
	return ticketMapper{}
}

func (ticketMapper) ToModel(t *ticket.Ticket) *models.TicketModel {
	s := t.Snapshot()
	return &models.TicketModel{
		ID:              s.ID,
		Subject:         s.Subject,
		Status:          int(s.Status),
		Priority:        s.Priority,
		Type:            s.Type,
		Source:          s.Source,
		RequesterEmail:  s.RequesterEmail,
		RequesterID:     s.RequesterID,
		OrganizationID:  s.OrganizationID,
		Description:     s.Description,
		CustomFields:    s.CustomFields,
		Stats:           s.Stats,
		RemoteCreatedAt: s.CreatedAt.UTC(),
		RemoteUpdatedAt: s.UpdatedAt.UTC(),
	}
}

func (ticketMapper) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	t, err := ticket.NewTicket(ticket.Snapshot{
		ID:             model.ID,
		Subject:        model.Subject,
		Status:         ticket.Status(model.Status),
		Priority:       model.Priority,
		Type:           model.Type,
		Source:         model.Source,
		RequesterEmail: model.RequesterEmail,
		RequesterID:    model.RequesterID,
		OrganizationID: model.OrganizationID,
		Description:    model.Description,
		CustomFields:   model.CustomFields,
		Stats:          model.Stats,
		CreatedAt:      model.RemoteCreatedAt.UTC(),
		UpdatedAt:      model.RemoteUpdatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}
