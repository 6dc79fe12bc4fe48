package migration

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	sharedConfig "crmdesk/internal/shared/config"
	"crmdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy from the database config. sqlite always uses
// AutoMigrate since the SQL scripts target mysql and postgres.
func NewManager(cfg sharedConfig.DatabaseConfig, log logger.Interface) (*Manager, error) {
	strategy, err := strategyFor(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

func strategyFor(cfg sharedConfig.DatabaseConfig, log logger.Interface) (Strategy, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "" || driver == "sqlite" {
		return NewGormAutoMigrateStrategy(log), nil
	}

	switch strings.ToLower(cfg.MigrationStrategy) {
	case "", StrategyGoose:
		return NewGooseStrategy(driver, log), nil
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(cfg, log), nil
	case StrategyAutoMigrate, "auto":
		return NewGormAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", cfg.MigrationStrategy)
	}
}

// Up applies every pending migration.
func (m *Manager) Up(ctx context.Context, db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.Name())

	if err := m.strategy.Up(ctx, db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.Name(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.Name(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.Name())
	return nil
}

func (m *Manager) Down(ctx context.Context, db *gorm.DB, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := m.strategy.Down(ctx, db, steps); err != nil {
		return fmt.Errorf("rollback failed with strategy %s: %w", m.strategy.Name(), err)
	}
	return nil
}

func (m *Manager) Version(ctx context.Context, db *gorm.DB) (Version, error) {
	return m.strategy.Version(ctx, db)
}

// Strategy returns the current migration strategy
func (m *Manager) Strategy() Strategy {
	return m.strategy
}
