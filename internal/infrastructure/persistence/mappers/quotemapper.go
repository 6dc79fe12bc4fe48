package mappers

import (
	"crmdesk/internal/domain/quote"
	"crmdesk/internal/infrastructure/persistence/models"
)

func QuoteToModel(q *quote.Quote) *models.QuoteModel {
	return &models.QuoteModel{
		ID:             q.ID(),
		Number:         q.Number(),
		OrganizationID: q.OrganizationID(),
		RequesterID:    q.RequesterID(),
		Title:          q.Title(),
		AmountCents:    q.AmountCents(),
		Currency:       q.Currency(),
		Status:         q.Status().String(),
		SentAt:         q.SentAt(),
		DecidedAt:      q.DecidedAt(),
		CreatedAt:      q.CreatedAt(),
		UpdatedAt:      q.UpdatedAt(),
	}
}

func QuoteToDomain(m *models.QuoteModel) *quote.Quote {
	return quote.ReconstructQuote(m.ID, m.Number, m.OrganizationID, m.RequesterID, m.Title, m.AmountCents, m.Currency,
		quote.Status(m.Status), utcPtr(m.SentAt), utcPtr(m.DecidedAt), m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
