package dto

import (
	"time"

	"crmdesk/internal/domain/visit"
	"crmdesk/internal/shared/query"
)

var FilterFields = query.NewFields(
	query.Field{Name: "organization_id", Column: "organization_id", Kind: query.KindInt},
	query.Field{Name: "branch_id", Column: "branch_id", Kind: query.KindInt},
	query.Field{Name: "ticket_id", Column: "ticket_id", Kind: query.KindInt},
	query.Field{Name: "technician", Column: "technician", Kind: query.KindString},
	query.Field{Name: "scheduled", Column: "scheduled_at", Kind: query.KindTime},
	query.Field{Name: "completed", Column: "completed_at", Kind: query.KindTime},
)

type CreateVisitRequest struct {
	OrganizationID uint      `json:"organization_id" binding:"required"`
	BranchID       *uint     `json:"branch_id"`
	TicketID       *int64    `json:"ticket_id" binding:"omitempty,gt=0"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
	Technician     string    `json:"technician" binding:"required,max=120"`
	NotesMarkdown  string    `json:"notes_markdown" binding:"max=20000"`
}

type UpdateVisitRequest struct {
	ScheduledAt   *time.Time `json:"scheduled_at"`
	Technician    *string    `json:"technician" binding:"omitempty,max=120"`
	NotesMarkdown *string    `json:"notes_markdown" binding:"omitempty,max=20000"`
}

type CompleteVisitRequest struct {
	CompletedAt *time.Time `json:"completed_at"`
}

type VisitDTO struct {
	ID             uint       `json:"id"`
	OrganizationID uint       `json:"organization_id"`
	BranchID       *uint      `json:"branch_id"`
	TicketID       *int64     `json:"ticket_id"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	Technician     string     `json:"technician"`
	NotesMarkdown  string     `json:"notes_markdown"`
	NotesHTML      string     `json:"notes_html"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ListVisitsResponse struct {
	Visits   []*VisitDTO
	Total    int64
	Page     int
	PageSize int
}

func ToVisitDTO(v *visit.Visit) *VisitDTO {
	if v == nil {
		return nil
	}
	return &VisitDTO{
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
