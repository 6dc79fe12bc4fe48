package mappers

import (
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/infrastructure/persistence/models"
)

func RequesterToModel(r *requester.Requester) *models.RequesterModel {
	m := &models.RequesterModel{
		ID:             r.ID(),
		Name:           r.Name(),
		Phone:          r.Phone(),
		RemoteID:       r.RemoteID(),
		OrganizationID: r.OrganizationID(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
	if email := r.Email(); email != "" {
		m.Email = &email
	}
	return m
}

func RequesterToDomain(m *models.RequesterModel) *requester.Requester {
	var email string
	if m.Email != nil {
		email = *m.Email
	}
	return requester.ReconstructRequester(m.ID, m.Name, email, m.Phone, m.RemoteID, m.OrganizationID, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
