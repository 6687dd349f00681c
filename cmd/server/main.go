package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/internal/config"
	"github.com/garyjia/fiscal-compliance/internal/container"
	httpapi "github.com/garyjia/fiscal-compliance/internal/interfaces/http"
	"github.com/garyjia/fiscal-compliance/pkg/utils"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := os.Getenv("FISCAL_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
		Service:    cfg.Logger.Service,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting fiscal compliance service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return fmt.Errorf("create container: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("start container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Failed to close container", zap.Error(err))
		}
	}()

	gin.SetMode(cfg.Server.Mode)

	services := c.Services()
	server := httpapi.NewServer(
		httpapi.ServerConfig{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			FilesURL:        cfg.Storage.BaseURL,
			FilesDir:        cfg.Storage.Dir,
		},
		httpapi.Services{
			Checklist: services.Checklist,
			Alert:     services.Alert,
			Document:  services.Document,
			Reminder:  services.Reminder,
			Export:    services.Export,
		},
		c.Registry(),
		func(ctx context.Context) (bool, interface{}) {
			status := c.Health(ctx)
			return status.Overall, status.Components
		},
		c.Logger(),
	)

	// Blocks until SIGINT/SIGTERM, then shuts down gracefully
	return server.Start(ctx)
}
