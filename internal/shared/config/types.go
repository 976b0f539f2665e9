// Package config defines the typed configuration sections shared across
// the application. Values are loaded by internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
	// AllowedOrigins is the CORS whitelist for browser kiosk frontends.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
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

func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	AccessExpMinute int    `mapstructure:"access_exp_minutes"`
}

// SessionConfig carries the tunables of the session engine.
type SessionConfig struct {
	// CodeLength is the initial access code length. Generation may exceed it
	// when the code space is contended.
	CodeLength int `mapstructure:"code_length"`
	// DefaultDuration is the default initial session duration in seconds.
	DefaultDuration int `mapstructure:"default_duration"`
	// WarningTimes are the remaining-seconds thresholds that trigger a
	// warning notification, highest first.
	WarningTimes []int `mapstructure:"warning_times"`
	// CountdownInterval is the decrement tick cadence in seconds.
	CountdownInterval int `mapstructure:"countdown_interval"`
	// WarningInterval is the warning scan cadence in seconds.
	WarningInterval int `mapstructure:"warning_interval"`
	// LockWait is the bounded per-session lock wait in milliseconds before
	// an operation fails with busy.
	LockWait int `mapstructure:"lock_wait_ms"`
	// AllowUnboundStart permits code redemption by a caller without an
	// authenticated workstation identity (permissive deployments).
	AllowUnboundStart bool `mapstructure:"allow_unbound_start"`
	// RetentionDays is how long terminated and expired sessions are kept
	// before the daily cleanup job deletes them.
	RetentionDays int `mapstructure:"retention_days"`
	// ValidateRateLimit is the per-IP request budget per minute on the
	// code validation endpoint.
	ValidateRateLimit int `mapstructure:"validate_rate_limit"`
}
