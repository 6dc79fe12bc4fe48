package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"crmdesk/internal/shared/logger"
)

var migrationName = regexp.MustCompile(`^[a-z0-9_]+$`)

// Generator writes new, empty migration files into the scripts tree for
// every dialect, in the layout the chosen tool expects.
type Generator struct {
	scriptsPath string
	dialects    []string
	logger      logger.Interface
	nowFn       func() time.Time
}

// NewGenerator takes the on-disk path of the scripts directory
// (internal/infrastructure/migration/scripts in the source tree).
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		dialects:    []string{"mysql", "postgres"},
		logger:      log.With("component", "migration.generator"),
		nowFn:       time.Now,
	}
}

// CreateMigration writes the files for name and returns their paths.
func (g *Generator) CreateMigration(tool, name string) ([]string, error) {
	if !migrationName.MatchString(name) {
		return nil, fmt.Errorf("migration name %q must be lowercase letters, digits and underscores", name)
	}

	now := g.nowFn()
	version := now.UTC().Format("20060102150405")
	var created []string

	for _, dialect := range g.dialects {
		var files map[string]string
		switch tool {
		case StrategyGoose:
			dir := filepath.Join(g.scriptsPath, "goose", dialect)
			files = map[string]string{
				filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version, name)): gooseTemplate(name, now),
			}
		case StrategyGolangMigrate:
			dir := filepath.Join(g.scriptsPath, "migrate", dialect)
			files = map[string]string{
				filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", version, name)):   upTemplate(name, now),
				filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", version, name)): downTemplate(name, now),
			}
		default:
			return nil, fmt.Errorf("strategy %q does not use migration files", tool)
		}

		for path, content := range files {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return created, fmt.Errorf("failed to create scripts directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return created, fmt.Errorf("failed to write migration file: %w", err)
			}
			created = append(created, path)
		}
	}

	g.logger.Infow("migration files created", "name", name, "tool", tool, "files", created)
	return created, nil
}

func gooseTemplate(name string, now time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

-- +goose Up

-- +goose Down

`, name, now.Format("2006-01-02 15:04:05"))
}

func upTemplate(name string, now time.Time) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s

`, name, now.Format("2006-01-02 15:04:05"))
}

func downTemplate(name string, now time.Time) string {
	return fmt.Sprintf(`-- Rollback Migration: %s
-- Created: %s

`, name, now.Format("2006-01-02 15:04:05"))
}
