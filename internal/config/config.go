package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// StorageConfig holds uploaded file storage configuration
type StorageConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

// AlertsConfig holds the alert engine windows
type AlertsConfig struct {
	ExpiringLookaheadDays  int `mapstructure:"expiring_lookahead_days"`
	DeadlineWindowDays     int `mapstructure:"deadline_window_days"`
	MissingAnnualFromMonth int `mapstructure:"missing_annual_from_month"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
	Service    string `mapstructure:"service"`
}

// Load loads configuration from file and environment variables.
// An empty configPath or a missing file yields defaults plus environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.mode", "release")

	// Database defaults
	v.SetDefault("database.path", "data/fiscal.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.migrations_dir", "migrations")

	// Storage defaults
	v.SetDefault("storage.dir", "data/fiscal-documents")
	v.SetDefault("storage.base_url", "/files")

	// Alert defaults
	v.SetDefault("alerts.expiring_lookahead_days", 60)
	v.SetDefault("alerts.deadline_window_days", 30)
	v.SetDefault("alerts.missing_annual_from_month", 10)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.service", "fiscal-compliance")
}

// bindEnvVars binds environment variables to configuration.
// Every key is also reachable as FISCAL_<SECTION>_<KEY>.
func bindEnvVars(v *viper.Viper) error {
	v.SetEnvPrefix("FISCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"database.path": "FISCAL_DB_PATH",
		"storage.dir":   "FISCAL_STORAGE_DIR",
		"logger.level":  "FISCAL_LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required")
	}

	if c.Alerts.ExpiringLookaheadDays <= 0 {
		return fmt.Errorf("alerts.expiring_lookahead_days must be positive")
	}
	if c.Alerts.DeadlineWindowDays <= 0 {
		return fmt.Errorf("alerts.deadline_window_days must be positive")
	}
	if m := c.Alerts.MissingAnnualFromMonth; m < 1 || m > 12 {
		return fmt.Errorf("alerts.missing_annual_from_month must be a month number, got %d", m)
	}

	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
