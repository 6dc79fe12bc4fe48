package migration

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"crmdesk/internal/shared/logger"
)

// goose keeps its base FS, dialect and logger in package state.
var gooseMu sync.Mutex

type GooseStrategy struct {
	dialect string
	logger  logger.Interface
}

func NewGooseStrategy(dialect string, log logger.Interface) *GooseStrategy {
	return &GooseStrategy{
		dialect: dialect,
		logger:  log.With("component", "migration.goose"),
	}
}

func (s *GooseStrategy) Name() string {
	return StrategyGoose
}

func (s *GooseStrategy) Up(ctx context.Context, db *gorm.DB) error {
	return s.with(db, func(run gooseRun) error {
		from, err := goose.GetDBVersionContext(ctx, run.db)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}

		if err := goose.UpContext(ctx, run.db, run.dir); err != nil {
			s.logger.Errorw("migration failed", "error", err)
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		to, err := goose.GetDBVersionContext(ctx, run.db)
		if err != nil {
			return fmt.Errorf("failed to get final version: %w", err)
		}
		s.logger.Infow("migration completed successfully", "from_version", from, "to_version", to)
		return nil
	})
}

func (s *GooseStrategy) Down(ctx context.Context, db *gorm.DB, steps int) error {
	return s.with(db, func(run gooseRun) error {
		for i := 0; i < steps; i++ {
			if err := goose.DownContext(ctx, run.db, run.dir); err != nil {
				s.logger.Errorw("down migration failed", "error", err, "step", i+1)
				return fmt.Errorf("failed to run down migration: %w", err)
			}
		}
		s.logger.Infow("down migration completed successfully", "steps", steps)
		return nil
	})
}

func (s *GooseStrategy) Version(ctx context.Context, db *gorm.DB) (Version, error) {
	var v Version
	err := s.with(db, func(run gooseRun) error {
		current, err := goose.GetDBVersionContext(ctx, run.db)
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		v.Current = current
		return nil
	})
	return v, err
}

type gooseRun struct {
	db  *sql.DB
	dir string
}

func (s *GooseStrategy) with(db *gorm.DB, fn func(gooseRun) error) error {
	fsys, dir, err := scriptsDir("goose", s.dialect)
	if err != nil {
		return err
	}
	sqlConn, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{s.logger})
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return fn(gooseRun{db: sqlConn, dir: dir})
}

// gooseLogger routes goose's printf-style output through the app logger.
type gooseLogger struct {
	log logger.Interface
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}
