package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/branch"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var branchSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"city":       true,
	"created_at": true,
}

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, b *branch.Branch) error {
	model := mappers.BranchToModel(b)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("branch name already used by this organization", b.Name())
		}
		return fmt.Errorf("failed to create branch: %w", err)
	}
	b.SetID(model.ID)
	return nil
}

func (r *BranchRepository) Update(ctx context.Context, b *branch.Branch) error {
	model := mappers.BranchToModel(b)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.BranchModel{}).
		Where("id = ?", model.ID).
		Select("name", "address", "city", "phone", "updated_at").
		Updates(model).Error
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("branch name already used by this organization", b.Name())
		}
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.BranchModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete branch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("branch not found")
	}
	return nil
}

func (r *BranchRepository) GetByID(ctx context.Context, id uint) (*branch.Branch, error) {
	var model models.BranchModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("branch not found")
		}
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return mappers.BranchToDomain(&model), nil
}

func (r *BranchRepository) List(ctx context.Context, filter query.ListFilter) ([]*branch.Branch, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.BranchModel{})
	rows, total, err := findPage[models.BranchModel](q, filter, branchSortFields, "name asc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list branches: %w", err)
	}

	out := make([]*branch.Branch, len(rows))
	for i := range rows {
		out[i] = mappers.BranchToDomain(&rows[i])
	}
	return out, total, nil
}
