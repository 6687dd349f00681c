package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	checklistService service.ChecklistService
	alertService     service.AlertService
	documentService  service.DocumentService
	reminderService  service.ReminderService
	exportService    service.ExportService
	health           HealthFunc
	now              func() time.Time
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, health HealthFunc, logger Logger) *Handlers {
	return &Handlers{
		checklistService: services.Checklist,
		alertService:     services.Alert,
		documentService:  services.Document,
		reminderService:  services.Reminder,
		exportService:    services.Export,
		health:           health,
		now:              time.Now,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string      `json:"status"`
	Timestamp  string      `json:"timestamp"`
	Version    string      `json:"version"`
	Components interface{} `json:"components,omitempty"`
}

// scope is the clinic, regime and fiscal year most read endpoints work on
type scope struct {
	clinicID string
	regime   entity.TaxRegime
	year     int
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}
	status := http.StatusOK

	if h.health != nil {
		healthy, details := h.health(c.Request.Context())
		response.Components = details
		if !healthy {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, Response{
		Success: status == http.StatusOK,
		Data:    response,
	})
}

// GetChecklist handles GET /api/v1/clinics/:clinicID/checklist
func (h *Handlers) GetChecklist(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	report, err := h.checklistService.EvaluateChecklist(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to evaluate checklist")
		return
	}

	h.respondOK(c, toChecklistResponse(report))
}

// GetPendingDocuments handles GET /api/v1/clinics/:clinicID/checklist/pending
func (h *Handlers) GetPendingDocuments(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	pending, err := h.checklistService.PendingDocuments(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to list pending documents")
		return
	}

	items := make([]ChecklistItemResponse, 0, len(pending))
	for _, item := range pending {
		items = append(items, toChecklistItemResponse(item))
	}
	h.respondOK(c, items)
}

// GetAlerts handles GET /api/v1/clinics/:clinicID/alerts
func (h *Handlers) GetAlerts(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	report, err := h.alertService.ComputeAlerts(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to compute alerts")
		return
	}

	resp := AlertsResponse{
		Alerts:         report.Alerts,
		SkippedSources: report.SkippedSources,
		Sources:        report.Sources,
	}
	if resp.Alerts == nil {
		resp.Alerts = []entity.FiscalAlert{}
	}
	if resp.SkippedSources == nil {
		resp.SkippedSources = []string{}
	}
	h.respondOK(c, resp)
}

// GetAlertCounts handles GET /api/v1/clinics/:clinicID/alerts/counts
func (h *Handlers) GetAlertCounts(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	counts, err := h.alertService.AlertCounts(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to count alerts")
		return
	}

	h.respondOK(c, counts)
}

// bindScope reads clinicID, regime and year. The year defaults to the current one.
func (h *Handlers) bindScope(c *gin.Context) (scope, bool) {
	sc := scope{
		clinicID: c.Param("clinicID"),
		regime:   entity.TaxRegime(c.Query("regime")),
	}
	if sc.regime == "" {
		h.badRequest(c, "regime is required")
		return sc, false
	}

	year, ok := h.yearParam(c)
	if !ok {
		return sc, false
	}
	sc.year = year
	return sc, true
}

// yearParam parses ?year=, falling back to the current year when absent
func (h *Handlers) yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return h.now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		h.badRequest(c, "invalid year")
		return 0, false
	}
	return year, true
}

func (h *Handlers) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   msg,
	})
}

// respondError maps service errors onto HTTP status codes.
// Validation messages are passed through; everything else gets msg.
func (h *Handlers) respondError(c *gin.Context, err error, msg string) {
	status := statusFor(err)

	switch status {
	case http.StatusBadRequest:
		msg = err.Error()
	case http.StatusNotFound:
		msg = "not found"
	default:
		h.logger.Error(msg,
			"path", c.Request.URL.Path,
			"clinic_id", c.Param("clinicID"),
			"error", err,
		)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   msg,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
