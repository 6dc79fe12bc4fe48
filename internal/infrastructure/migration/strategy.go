// Package migration applies the schema with one of three strategies: goose
// (default), golang-migrate, or gorm AutoMigrate for sqlite and development.
// SQL scripts are embedded, one directory per tool and dialect.
package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gorm.io/gorm"
)

//go:embed scripts
var scripts embed.FS

const (
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"
	StrategyAutoMigrate   = "gorm_auto_migrate"
)

// ErrDownUnsupported is returned by strategies that cannot roll back.
var ErrDownUnsupported = errors.New("down migrations are not supported by this strategy")

// Version describes where the schema stands.
type Version struct {
	Current int64 `json:"current"`
	Dirty   bool  `json:"dirty"`
}

// Strategy defines the interface for different migration strategies
type Strategy interface {
	Up(ctx context.Context, db *gorm.DB) error
	Down(ctx context.Context, db *gorm.DB, steps int) error
	Version(ctx context.Context, db *gorm.DB) (Version, error)
	Name() string
}

// scriptsDir returns the embedded directory for a tool and dialect.
func scriptsDir(tool, dialect string) (fs.FS, string, error) {
	dir := fmt.Sprintf("scripts/%s/%s", tool, dialect)
	if _, err := fs.Stat(scripts, dir); err != nil {
		return nil, "", fmt.Errorf("no %s scripts for dialect %q: %w", tool, dialect, err)
	}
	return scripts, dir, nil
}
