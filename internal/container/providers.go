package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/metrics"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/persistence/repository"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/storage"
	"github.com/garyjia/fiscal-compliance/pkg/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	SqlDB          *sql.DB
	TransactionMgr *sqlite.DB
}

// StorageBundle holds storage-related components.
type StorageBundle struct {
	FileStorage port.FileStorage
}

// MetricsBundle holds the prometheus registry and the collectors registered on it.
type MetricsBundle struct {
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// ProvideDatabase creates database connection and transaction manager.
// Also runs any pending database migrations automatically.
func ProvideDatabase(ctx context.Context, cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	conn, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.MigrationsDir != "" {
		migrator := database.NewMigrator(conn, logger)
		if err := migrator.RunMigrations(ctx, cfg.MigrationsDir); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &DatabaseBundle{
		SqlDB:          conn.DB,
		TransactionMgr: sqlite.NewDB(conn.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories from a database connection.
func ProvideRepositories(sqlDB *sql.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Document: repository.NewDocumentRepository(sqlDB, logger),
		Reminder: repository.NewReminderRepository(sqlDB, logger),
	}, nil
}

// ProvideStorage creates the local file storage for uploaded documents.
func ProvideStorage(cfg *StorageConfig, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("storage config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &StorageBundle{
		FileStorage: storage.NewLocalFileStorage(cfg.Dir, cfg.BaseURL, logger),
	}, nil
}

// ProvideMetrics creates a dedicated registry with the service collectors
// plus the standard process and Go runtime collectors.
func ProvideMetrics() (*MetricsBundle, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}

	return &MetricsBundle{
		Registry: reg,
		Metrics:  metrics.New(reg),
	}, nil
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Repos     *RepositoryBundle
	TxManager port.TransactionManager
	Storage   port.FileStorage
	Metrics   port.MetricsRecorder
	Clock     port.Clock
	Alerts    AlertsConfig
	Logger    *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Storage == nil {
		return nil, fmt.Errorf("file storage is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	clock := deps.Clock
	if clock == nil {
		clock = port.SystemClock
	}

	// Create logger adapter for services
	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	checklistSvc := service.NewChecklistService(deps.Repos.Document, deps.Metrics, serviceLogger)
	alertSvc := service.NewAlertService(
		deps.Repos.Document,
		deps.Repos.Reminder,
		clock,
		service.AlertConfig{
			ExpiringLookaheadDays:  deps.Alerts.ExpiringLookaheadDays,
			DeadlineWindowDays:     deps.Alerts.DeadlineWindowDays,
			MissingAnnualFromMonth: deps.Alerts.MissingAnnualFromMonth,
		},
		deps.Metrics,
		serviceLogger,
	)

	return &ServiceBundle{
		Checklist: checklistSvc,
		Alert:     alertSvc,
		Document: service.NewDocumentService(
			deps.Repos.Document,
			deps.Storage,
			deps.TxManager,
			clock,
			serviceLogger,
		),
		Reminder: service.NewReminderService(deps.Repos.Reminder, clock, serviceLogger),
		Export: service.NewExportService(
			deps.Repos.Document,
			deps.Storage,
			checklistSvc,
			alertSvc,
			serviceLogger,
		),
	}, nil
}
