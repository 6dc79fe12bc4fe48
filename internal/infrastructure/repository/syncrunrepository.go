package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/persistence/mappers"
	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/query"
)

type SyncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

func (r *SyncRunRepository) Create(ctx context.Context, run *syncrun.Run) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SyncRunToModel(run)).Error; err != nil {
		return fmt.Errorf("failed to create sync run: %w", err)
	}
	return nil
}

func (r *SyncRunRepository) Update(ctx context.Context, run *syncrun.Run) error {
	model := mappers.SyncRunToModel(run)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SyncRunModel{}).
		Where("id = ?", model.ID).
		Select("status", "imported", "failed", "pages", "failures", "error", "finished_at").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update sync run: %w", err)
	}
	return nil
}

func (r *SyncRunRepository) GetByID(ctx context.Context, id string) (*syncrun.Run, error) {
	var model models.SyncRunModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("sync run not found")
		}
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}
	return mappers.SyncRunToDomain(&model), nil
}

// List returns runs newest first.
func (r *SyncRunRepository) List(ctx context.Context, page query.PageFilter) ([]*syncrun.Run, int64, error) {
	page = page.Normalize()
	q := db.GetTxFromContext(ctx, r.db).Model(&models.SyncRunModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sync runs: %w", err)
	}

	var rows []models.SyncRunModel
	if err := q.Order("started_at desc").Offset(page.Offset()).Limit(page.Limit()).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sync runs: %w", err)
	}

	runs := make([]*syncrun.Run, len(rows))
	for i := range rows {
		runs[i] = mappers.SyncRunToDomain(&rows[i])
	}
	return runs, total, nil
}

func (r *SyncRunRepository) GetCursor(ctx context.Context, name string) (*syncrun.Cursor, error) {
	var model models.SyncCursorModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sync cursor: %w", err)
	}
	return &syncrun.Cursor{
		Name:      model.Name,
		Position:  model.Position.UTC(),
		UpdatedAt: model.UpdatedAt.UTC(),
	}, nil
}

func (r *SyncRunRepository) SaveCursor(ctx context.Context, cursor *syncrun.Cursor) error {
	model := &models.SyncCursorModel{
		Name:      cursor.Name,
		Position:  cursor.Position.UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	err := db.GetTxFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "updated_at"}),
	}).Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save sync cursor: %w", err)
	}
	cursor.UpdatedAt = model.UpdatedAt
	return nil
}
