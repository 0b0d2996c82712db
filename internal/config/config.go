// Package config loads the API's settings from defaults, an optional YAML
// file and COURSELIB_* environment variables, in increasing precedence.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Limiter  LimiterConfig  `mapstructure:"limiter"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	Env             string        `mapstructure:"env" validate:"required,oneof=development staging production"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains the PostgreSQL connection pool settings.
type DatabaseConfig struct {
	DSN          string        `mapstructure:"dsn" validate:"required"`
	MaxOpenConns int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	MaxIdleTime  time.Duration `mapstructure:"max_idle_time" validate:"gte=0"`
	// ResetOnStart rolls every migration back before applying them again.
	ResetOnStart bool `mapstructure:"reset_on_start"`
}

// LimiterConfig controls the per-client token bucket.
type LimiterConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps" validate:"gt=0"`
	Burst   int     `mapstructure:"burst" validate:"gt=0"`
}

// CacheConfig controls the Cache-Control header on cacheable responses.
type CacheConfig struct {
	MaxAge time.Duration `mapstructure:"max_age" validate:"gte=0"`
}
