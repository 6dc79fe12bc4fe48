package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crmdesk/internal/domain/organization"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

var organizationSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	model := mappers.OrganizationToModel(org)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("organization already exists", org.Name())
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	org.SetID(model.ID)
	return nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	model := mappers.OrganizationToModel(org)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OrganizationModel{}).
		Where("id = ?", model.ID).
		Select("name", "domain", "phone", "notes", "updated_at").
		Updates(model)
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewConflictError("organization already exists", org.Name())
		}
		return fmt.Errorf("failed to update organization: %w", result.Error)
	}
	return nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.OrganizationModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete organization: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("organization not found")
	}
	return nil
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("organization not found")
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return mappers.OrganizationToDomain(&model), nil
}

// GetByName returns (nil, nil) when no organization has that normalized name.
func (r *OrganizationRepository) GetByName(ctx context.Context, normalizedName string) (*organization.Organization, error) {
	var model models.OrganizationModel
	err := db.GetTxFromContext(ctx, r.db).Where("name = ?", normalizedName).Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get organization by name: %w", err)
	}
	return mappers.OrganizationToDomain(&model), nil
}

func (r *OrganizationRepository) List(ctx context.Context, filter query.ListFilter) ([]*organization.Organization, int64, error) {
	q := db.GetTxFromContext(ctx, r.db).Model(&models.OrganizationModel{})
	rows, total, err := findPage[models.OrganizationModel](q, filter, organizationSortFields, "name asc")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organizations: %w", err)
	}

	orgs := make([]*organization.Organization, len(rows))
	for i := range rows {
		orgs[i] = mappers.OrganizationToDomain(&rows[i])
	}
	return orgs, total, nil
}

// EnsureByName inserts the organization if the name is new and returns the
// stored row either way. Concurrent callers converge on the same row.
func (r *OrganizationRepository) EnsureByName(ctx context.Context, normalizedName string) (*organization.Organization, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	org, err := organization.NewOrganization(normalizedName, "", "", "")
	if err != nil {
		return nil, err
	}
	model := mappers.OrganizationToModel(org)

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure organization: %w", err)
	}

	existing, err := r.GetByName(ctx, org.Name())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("organization %q vanished after insert", org.Name())
	}
	return existing, nil
}
