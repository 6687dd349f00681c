// Package container provides dependency injection and lifecycle management
// for the fiscal compliance service following Clean Architecture principles.
package container

import (
	"fmt"
	"time"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Storage configuration
	Storage StorageConfig

	// Alert engine configuration
	Alerts AlertsConfig

	// Server configuration
	Server ServerConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration

	// MigrationsDir is the path to migration files. Empty skips migrations.
	MigrationsDir string
}

// StorageConfig holds file storage settings.
type StorageConfig struct {
	// Dir is the base directory for uploaded fiscal documents
	Dir string

	// BaseURL prefixes the public URL of stored files
	BaseURL string
}

// AlertsConfig holds the alert engine windows.
type AlertsConfig struct {
	ExpiringLookaheadDays  int
	DeadlineWindowDays     int
	MissingAnnualFromMonth time.Month
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind to
	Host string

	// Port to listen on
	Port int

	// ReadTimeout for HTTP server
	ReadTimeout time.Duration

	// WriteTimeout for HTTP server
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/fiscal.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			MigrationsDir:   "migrations",
		},
		Storage: StorageConfig{
			Dir:     "data/fiscal-documents",
			BaseURL: "/files",
		},
		Alerts: AlertsConfig{
			ExpiringLookaheadDays:  60,
			DeadlineWindowDays:     30,
			MissingAnnualFromMonth: time.October,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}

	if c.Alerts.ExpiringLookaheadDays < 0 || c.Alerts.DeadlineWindowDays < 0 {
		return fmt.Errorf("alert windows must not be negative")
	}
	if m := c.Alerts.MissingAnnualFromMonth; m != 0 && (m < time.January || m > time.December) {
		return fmt.Errorf("alerts.missing_annual_from_month out of range: %d", m)
	}

	return nil
}
