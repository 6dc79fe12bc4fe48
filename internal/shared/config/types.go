package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects one of the supported gorm dialects.
// Driver is one of "mysql", "postgres" or "sqlite"; for sqlite, Database is the file path.
type DatabaseConfig struct {
	Driver            string `mapstructure:"driver"`
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	SSLMode           string `mapstructure:"ssl_mode"`
	MaxIdleConns      int    `mapstructure:"max_idle_conns"`
	MaxOpenConns      int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`
	MigrationStrategy string `mapstructure:"migration_strategy"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a redis endpoint is configured.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type BreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	IntervalSeconds  int     `mapstructure:"interval_seconds"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	MinRequests      uint32  `mapstructure:"min_requests"`
	FailureThreshold float64 `mapstructure:"failure_threshold"`
}

type FreshdeskConfig struct {
	Domain            string        `mapstructure:"domain"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	TimeoutSeconds    int           `mapstructure:"timeout_seconds"`
	PerPage           int           `mapstructure:"per_page"`
	MaxPages          int           `mapstructure:"max_pages"`
	DetailConcurrency int           `mapstructure:"detail_concurrency"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Breaker           BreakerConfig `mapstructure:"breaker"`
}

// GetBaseURL returns the explicit base URL when set, otherwise the
// account URL derived from the domain.
func (f *FreshdeskConfig) GetBaseURL() string {
	if f.BaseURL != "" {
		return f.BaseURL
	}
	return fmt.Sprintf("https://%s.freshdesk.com", f.Domain)
}

func (f *FreshdeskConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

type SyncConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	IntervalMinutes     int    `mapstructure:"interval_minutes"`
	OverlapMinutes      int    `mapstructure:"overlap_minutes"`
	DefaultLookbackDays int    `mapstructure:"default_lookback_days"`
	LockTTLMinutes      int    `mapstructure:"lock_ttl_minutes"`
	AliasFile           string `mapstructure:"alias_file"`
}

func (s *SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

func (s *SyncConfig) Overlap() time.Duration {
	return time.Duration(s.OverlapMinutes) * time.Minute
}

func (s *SyncConfig) DefaultLookback() time.Duration {
	return time.Duration(s.DefaultLookbackDays) * 24 * time.Hour
}

func (s *SyncConfig) LockTTL() time.Duration {
	return time.Duration(s.LockTTLMinutes) * time.Minute
}

type NotificationConfig struct {
	Enabled     bool     `mapstructure:"enabled"`
	SMTPHost    string   `mapstructure:"smtp_host"`
	SMTPPort    int      `mapstructure:"smtp_port"`
	SMTPUser    string   `mapstructure:"smtp_user"`
	SMTPPass    string   `mapstructure:"smtp_password"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}
