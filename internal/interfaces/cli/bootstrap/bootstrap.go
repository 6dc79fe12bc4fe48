// Package bootstrap holds the startup steps shared by every command:
// config, logger and business timezone.
package bootstrap

import (
	"fmt"
	"os"

	"crmdesk/internal/infrastructure/config"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/logger"
)

// Init loads configuration for env and installs the process logger. The ENV
// variable overrides env when set.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = GinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// business timezone for date-only since values and day boundaries
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// GinMode maps an environment name to a gin mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
