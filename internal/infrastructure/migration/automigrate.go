package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"crmdesk/internal/infrastructure/persistence/models"
	"crmdesk/internal/shared/logger"
)

// GormAutoMigrateStrategy creates and widens tables from the gorm models.
// It never drops anything, so Down is unsupported.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Name() string {
	return StrategyAutoMigrate
}

func (s *GormAutoMigrateStrategy) Up(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	s.logger.Infow("auto-migration completed", "models", len(all))
	return nil
}

func (s *GormAutoMigrateStrategy) Down(context.Context, *gorm.DB, int) error {
	return ErrDownUnsupported
}

func (s *GormAutoMigrateStrategy) Version(context.Context, *gorm.DB) (Version, error) {
	return Version{}, nil
}
