package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/quote"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var quoteSortFields = map[string]bool{
	"id":           true,
	"number":       true,
	"amount_cents": true,
	"status":       true,
	"created_at":   true,
}

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	model := mappers.QuoteToModel(q)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("quote number already exists", q.Number())
		}
		return fmt.Errorf("failed to create quote: %w", err)
	}
	q.SetID(model.ID)
	return nil
}

func (r *QuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	model := mappers.QuoteToModel(q)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.QuoteModel{}).
		Where("id = ?", model.ID).
		Select("title", "amount_cents", "status", "sent_at", "decided_at", "updated_at").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.QuoteModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete quote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("quote not found")
	}
	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uint) (*quote.Quote, error) {
	var model models.QuoteModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return mappers.QuoteToDomain(&model), nil
}

func (r *QuoteRepository) List(ctx context.Context, filter query.ListFilter) ([]*quote.Quote, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.QuoteModel{})
	rows, total, err := findPage[models.QuoteModel](q, filter, quoteSortFields, "created_at desc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotes: %w", err)
	}

	out := make([]*quote.Quote, len(rows))
	for i := range rows {
		out[i] = mappers.QuoteToDomain(&rows[i])
	}
	return out, total, nil
}
