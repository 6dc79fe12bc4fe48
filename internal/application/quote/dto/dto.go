package dto

import (
	"time"

	"crmdesk/internal/domain/quote"
	"crmdesk/internal/shared/query"
)

var FilterFields = query.NewFields(
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "requester_id", Column: "requester_id", Kind: query.KindInt},
	query.Field{Name: "status", Column: "status", Kind: query.KindString},
	query.Field{Name: "number", Column: "number", Kind: query.KindString},
	query.Field{Name: "title", Column: "title", Kind: query.KindString},
	query.Field{Name: "created", Column: "created_at", Kind: query.KindTime},
)

type CreateQuoteRequest struct {
	OrganizationID uint   `json:"organization_id" binding:"required"`
	RequesterID    *uint  `json:"requester_id"`
	Title          string `json:"title" binding:"required,max=200"`
	AmountCents    int64  `json:"amount_cents" binding:"gte=0"`
	Currency       string `json:"currency" binding:"omitempty,iso4217"`
}

type UpdateQuoteRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	AmountCents *int64  `json:"amount_cents" binding:"omitempty,gte=0"`
}

type ChangeQuoteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent accepted rejected"`
}

type QuoteDTO struct {
	ID             uint       `json:"id"`
	Number         string     `json:"number"`
	OrganizationID uint       `json:"organization_id"`
	RequesterID    *uint      `json:"requester_id"`
	Title          string     `json:"title"`
	AmountCents    int64      `json:"amount_cents"`
	Currency       string     `json:"currency"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at"`
	DecidedAt      *time.Time `json:"decided_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ListQuotesResponse struct {
	Quotes   []*QuoteDTO
	Total    int64
	Page     int
	PageSize int
}

func ToQuoteDTO(q *quote.Quote) *QuoteDTO {
	if q == nil {
		return nil
	}
	return &QuoteDTO{
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
