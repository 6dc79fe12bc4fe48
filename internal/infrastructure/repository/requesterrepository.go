package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/domain/requester"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var requesterSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"email":      true,
	"created_at": true,
}

type RequesterRepository struct {
	db *gorm.DB
}

func NewRequesterRepository(db *gorm.DB) *RequesterRepository {
	return &RequesterRepository{db: db}
}

func (r *RequesterRepository) Create(ctx context.Context, req *requester.Requester) error {
	model := mappers.RequesterToModel(req)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("requester with this email or remote id already exists")
		}
		return fmt.Errorf("failed to create requester: %w", err)
	}
	req.SetID(model.ID)
	return nil
}

func (r *RequesterRepository) Update(ctx context.Context, req *requester.Requester) error {
	model := mappers.RequesterToModel(req)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RequesterModel{}).
		Where("id = ?", model.ID).
		Select("name", "email", "phone", "remote_id", "organization_id", "updated_at").
		Updates(model).Error
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("requester with this email or remote id already exists")
		}
		return fmt.Errorf("failed to update requester: %w", err)
	}
	return nil
}

func (r *RequesterRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.RequesterModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete requester: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("requester not found")
	}
	return nil
}

func (r *RequesterRepository) GetByID(ctx context.Context, id uint) (*requester.Requester, error) {
	var model models.RequesterModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("requester not found")
		}
		return nil, fmt.Errorf("failed to get requester: %w", err)
	}
	return mappers.RequesterToDomain(&model), nil
}

func (r *RequesterRepository) GetByEmail(ctx context.Context, email string) (*requester.Requester, error) {
	return r.findOne(ctx, "email = ?", requester.NormalizeEmail(email))
}

func (r *RequesterRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*requester.Requester, error) {
	return r.findOne(ctx, "remote_id = ?", remoteID)
}

func (r *RequesterRepository) findOne(ctx context.Context, cond string, arg any) (*requester.Requester, error) {
	var model models.RequesterModel
	err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find requester: %w", err)
	}
	return mappers.RequesterToDomain(&model), nil
}

func (r *RequesterRepository) List(ctx context.Context, filter query.ListFilter) ([]*requester.Requester, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.RequesterModel{})
	rows, total, err := findPage[models.RequesterModel](q, filter, requesterSortFields, "id desc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list requesters: %w", err)
	}

	out := make([]*requester.Requester, len(rows))
	for i := range rows {
		out[i] = mappers.RequesterToDomain(&rows[i])
	}
	return out, total, nil
}
