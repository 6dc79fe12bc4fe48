package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var ticketSortFields = map[string]bool{
	"id":         true,
	"status":     true,
	"priority":   true,
	"created_at": true,
	"updated_at": true,
}

// ticketMutableColumns is everything an upsert overwrites. The id never changes.
var ticketMutableColumns = []string{
	"subject",
	"status",
	"priority",
	"type",
	"source",
	"requester_email",
	"requester_id",
	"organization_id",
	"description",
	"custom_fields",
	"stats",
	"created_at",
	"updated_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

// Upsert writes the ticket keyed by its remote id. Writing the same snapshot
// twice leaves the row unchanged.
func (r *TicketRepository) Upsert(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(ticketMutableColumns),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ticket %d: %w", t.ID(), err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter query.ListFilter) ([]*ticket.Ticket, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})
	rows, total, err := findPage[models.TicketModel](q, filter, ticketSortFields, "updated_at desc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	out := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, nil
}
