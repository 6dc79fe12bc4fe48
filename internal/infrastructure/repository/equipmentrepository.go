package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/equipment"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var equipmentSortFields = map[string]bool{
	"id":            true,
	"serial_number": true,
	"installed_at":  true,
	"created_at":    true,
}

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) error {
	model := mappers.EquipmentToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("serial number already registered", e.SerialNumber())
		}
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	e.SetID(model.ID)
	return nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	model := mappers.EquipmentToModel(e)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.EquipmentModel{}).
		Where("id = ?", model.ID).
		Select("branch_id", "model", "brand", "installed_at", "updated_at").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.EquipmentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("equipment not found")
	}
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uint) (*equipment.Equipment, error) {
	var model models.EquipmentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("equipment not found")
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return mappers.EquipmentToDomain(&model), nil
}

func (r *EquipmentRepository) List(ctx context.Context, filter query.ListFilter) ([]*equipment.Equipment, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.EquipmentModel{})
	rows, total, err := findPage[models.EquipmentModel](q, filter, equipmentSortFields, "id desc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}

	out := make([]*equipment.Equipment, len(rows))
	for i := range rows {
		out[i] = mappers.EquipmentToDomain(&rows[i])
	}
	return out, total, nil
}
