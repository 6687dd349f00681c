package config

import (
	"time"

	"github.com/garyjia/fiscal-compliance/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
			MigrationsDir:   c.Database.MigrationsDir,
		},
		Storage: container.StorageConfig{
			Dir:     c.Storage.Dir,
			BaseURL: c.Storage.BaseURL,
		},
		Alerts: container.AlertsConfig{
			ExpiringLookaheadDays:  c.Alerts.ExpiringLookaheadDays,
			DeadlineWindowDays:     c.Alerts.DeadlineWindowDays,
			MissingAnnualFromMonth: time.Month(c.Alerts.MissingAnnualFromMonth),
		},
		Server: container.ServerConfig{
			Host:         c.Server.Host,
			Port:         c.Server.Port,
			ReadTimeout:  c.Server.ReadTimeout,
			WriteTimeout: c.Server.WriteTimeout,
		},
	}
}
