package mappers

import (
	"crmdesk/internal/domain/visit"
	"crmdesk/internal/infrastructure/persistence/models"
)

func VisitToModel(v *visit.Visit) *models.VisitModel {
	return &models.VisitModel{
		ID:             v.ID(),
		OrganizationID: v.OrganizationID(),
		BranchID:       v.BranchID(),
		TicketID:       v.TicketID(),
		ScheduledAt:    v.ScheduledAt(),
		CompletedAt:    v.CompletedAt(),
		Technician:     v.Technician(),
		NotesMarkdown:  v.NotesMarkdown(),
		NotesHTML:      v.NotesHTML(),
		CreatedAt:      v.CreatedAt(),
		UpdatedAt:      v.UpdatedAt(),
	}
}

func VisitToDomain(m *models.VisitModel) *visit.Visit {
	return visit.ReconstructVisit(m.ID, m.OrganizationID, m.BranchID, m.TicketID, m.ScheduledAt.UTC(), utcPtr(m.CompletedAt),
		m.Technician, m.NotesMarkdown, m.NotesHTML, m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
