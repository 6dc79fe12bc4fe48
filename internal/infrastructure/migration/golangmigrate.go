package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	sharedConfig "crmdesk/internal/shared/config"
	"crmdesk/internal/shared/logger"
)

// GolangMigrateStrategy runs the embedded scripts with golang-migrate. It
// opens its own connection from the config because closing a migrate
// instance closes the database handle it was given.
type GolangMigrateStrategy struct {
	cfg    sharedConfig.DatabaseConfig
	logger logger.Interface
}

func NewGolangMigrateStrategy(cfg sharedConfig.DatabaseConfig, log logger.Interface) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{
		cfg:    cfg,
		logger: log.With("component", "migration.golang-migrate"),
	}
}

func (s *GolangMigrateStrategy) Name() string {
	return StrategyGolangMigrate
}

func (s *GolangMigrateStrategy) Up(_ context.Context, _ *gorm.DB) error {
	m, err := s.open()
	if err != nil {
		return err
	}
	defer s.close(m)

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		s.logger.Warnw("database is in dirty state, please fix manually")
		return fmt.Errorf("database is in dirty state at version %d", currentVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get final migration version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GolangMigrateStrategy) Down(_ context.Context, _ *gorm.DB, steps int) error {
	m, err := s.open()
	if err != nil {
		return err
	}
	defer s.close(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("down migration failed", "error", err)
		return fmt.Errorf("failed to run down migrations: %w", err)
	}

	s.logger.Infow("down migration completed successfully", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(_ context.Context, _ *gorm.DB) (Version, error) {
	m, err := s.open()
	if err != nil {
		return Version{}, err
	}
	defer s.close(m)

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Version{}, nil
	}
	if err != nil {
		return Version{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	return Version{Current: int64(v), Dirty: dirty}, nil
}

// Force sets the migration version and clears the dirty flag.
func (s *GolangMigrateStrategy) Force(version int) error {
	m, err := s.open()
	if err != nil {
		return err
	}
	defer s.close(m)

	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}
	s.logger.Infow("forced migration version", "version", version)
	return nil
}

func (s *GolangMigrateStrategy) open() (*migrate.Migrate, error) {
	fsys, dir, err := scriptsDir("migrate", s.cfg.Driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	var (
		driverName = s.cfg.Driver
		sqlName    = s.cfg.Driver
	)
	if s.cfg.Driver == "postgres" {
		sqlName = "pgx"
	}

	conn, err := sql.Open(sqlName, s.cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	var drv database.Driver
	switch s.cfg.Driver {
	case "mysql":
		drv, err = mysql.WithInstance(conn, &mysql.Config{})
	case "postgres":
		drv, err = pgxmigrate.WithInstance(conn, &pgxmigrate.Config{})
	default:
		err = fmt.Errorf("golang-migrate does not support driver %q", s.cfg.Driver)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, drv)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

func (s *GolangMigrateStrategy) close(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil || dbErr != nil {
		s.logger.Warnw("failed to close migrate instance", "source_error", srcErr, "database_error", dbErr)
	}
}
