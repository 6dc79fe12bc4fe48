package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "crmdesk/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Freshdesk    sharedConfig.FreshdeskConfig    `mapstructure:"freshdesk"`
	Sync         sharedConfig.SyncConfig         `mapstructure:"sync"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	RateLimit    sharedConfig.RateLimitConfig    `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configuration from the config file and CRMDESK_* environment
// variables. A missing config file is not an error; defaults and the
// environment are enough to start.
func Load(env, configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("CRMDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timezone", "America/Mexico_City")
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "crmdesk.db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.migration_strategy", "goose")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis is optional; an empty host disables it
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Freshdesk defaults
	v.SetDefault("freshdesk.domain", "")
	v.SetDefault("freshdesk.base_url", "")
	v.SetDefault("freshdesk.api_key", "")
	v.SetDefault("freshdesk.timeout_seconds", 30)
	v.SetDefault("freshdesk.per_page", 30)
	v.SetDefault("freshdesk.max_pages", 10)
	v.SetDefault("freshdesk.detail_concurrency", 10)
	v.SetDefault("freshdesk.requests_per_minute", 100)
	v.SetDefault("freshdesk.breaker.max_requests", 3)
	v.SetDefault("freshdesk.breaker.interval_seconds", 60)
	v.SetDefault("freshdesk.breaker.timeout_seconds", 120)
	v.SetDefault("freshdesk.breaker.min_requests", 10)
	v.SetDefault("freshdesk.breaker.failure_threshold", 0.6)

	// Sync defaults
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.interval_minutes", 60)
	v.SetDefault("sync.overlap_minutes", 60)
	v.SetDefault("sync.default_lookback_days", 7)
	v.SetDefault("sync.lock_ttl_minutes", 30)
	v.SetDefault("sync.alias_file", "")

	// Notification defaults
	v.SetDefault("notification.enabled", false)
	v.SetDefault("notification.smtp_host", "localhost")
	v.SetDefault("notification.smtp_port", 1025)
	v.SetDefault("notification.smtp_user", "")
	v.SetDefault("notification.smtp_password", "")
	v.SetDefault("notification.from_address", "noreply@crmdesk.local")
	v.SetDefault("notification.from_name", "CRM Desk")
	v.SetDefault("notification.recipients", []string{})

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests", 10)
	v.SetDefault("ratelimit.window_seconds", 60)
}
