package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/visit"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var visitSortFields = map[string]bool{
	"id":           true,
	"scheduled_at": true,
	"completed_at": true,
	"created_at":   true,
}

type VisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	model := mappers.VisitToModel(v)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	v.SetID(model.ID)
	return nil
}

func (r *VisitRepository) Update(ctx context.Context, v *visit.Visit) error {
	model := mappers.VisitToModel(v)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.VisitModel{}).
		Where("id = ?", model.ID).
		Select("scheduled_at", "completed_at", "technician", "notes_markdown", "notes_html", "updated_at").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	return nil
}

func (r *VisitRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.VisitModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("visit not found")
	}
	return nil
}

func (r *VisitRepository) GetByID(ctx context.Context, id uint) (*visit.Visit, error) {
	var model models.VisitModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("visit not found")
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return mappers.VisitToDomain(&model), nil
}

func (r *VisitRepository) List(ctx context.Context, filter query.ListFilter) ([]*visit.Visit, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.VisitModel{})
	rows, total, err := findPage[models.VisitModel](q, filter, visitSortFields, "scheduled_at desc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list visits: %w", err)
	}

	out := make([]*visit.Visit, len(rows))
	for i := range rows {
		out[i] = mappers.VisitToDomain(&rows[i])
	}
	return out, total, nil
}
