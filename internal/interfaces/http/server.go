// Package http provides HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// HealthFunc reports whether the service dependencies are usable, plus per-component details
type HealthFunc func(ctx context.Context) (bool, interface{})

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// FilesURL and FilesDir expose uploaded documents. Only a path-only FilesURL is served.
	FilesURL string
	FilesDir string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		FilesURL:        "/files",
	}
}

// Services groups the application services the HTTP layer talks to
type Services struct {
	Checklist service.ChecklistService
	Alert     service.AlertService
	Document  service.DocumentService
	Reminder  service.ReminderService
	Export    service.ExportService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	gatherer   prometheus.Gatherer
	health     HealthFunc
	logger     Logger
}

// NewServer creates a new HTTP server with the given services.
// A nil gatherer leaves /metrics unregistered.
func NewServer(
	config ServerConfig,
	services Services,
	gatherer prometheus.Gatherer,
	health HealthFunc,
	logger Logger,
) *Server {
	router := gin.New()

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		gatherer: gatherer,
		health:   health,
		logger:   logger,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.Recovery())

	// Logging middleware
	s.router.Use(s.loggingMiddleware())

	s.router.Use(corsMiddleware())
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		// Process request
		c.Next()

		// Log request details
		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.health, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	if s.gatherer != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	if s.config.FilesDir != "" && strings.HasPrefix(s.config.FilesURL, "/") {
		s.router.Static(s.config.FilesURL, s.config.FilesDir)
	}

	// API routes
	clinic := s.router.Group("/api/v1/clinics/:clinicID")
	{
		clinic.GET("/checklist", handlers.GetChecklist)
		clinic.GET("/checklist/pending", handlers.GetPendingDocuments)

		clinic.GET("/alerts", handlers.GetAlerts)
		clinic.GET("/alerts/counts", handlers.GetAlertCounts)

		clinic.GET("/documents", handlers.ListDocuments)
		clinic.POST("/documents", handlers.UploadDocument)
		clinic.GET("/documents/counts", handlers.GetDocumentCounts)
		clinic.GET("/documents/:id", handlers.GetDocument)
		clinic.PATCH("/documents/:id", handlers.UpdateDocument)
		clinic.DELETE("/documents/:id", handlers.DeleteDocument)

		clinic.GET("/reminders", handlers.ListReminders)
		clinic.POST("/reminders", handlers.CreateReminder)
		clinic.PUT("/reminders/:id", handlers.UpdateReminder)
		clinic.DELETE("/reminders/:id", handlers.DeleteReminder)

		clinic.GET("/export/entries", handlers.GetExportEntries)
		clinic.GET("/export/summary", handlers.GetSummary)
		clinic.GET("/export/workbook", handlers.DownloadWorkbook)
		clinic.GET("/export/package", handlers.DownloadPackage)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
