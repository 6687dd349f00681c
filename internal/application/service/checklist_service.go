package service

import (
	"context"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/catalog"
	"github.com/garyjia/fiscal-compliance/internal/domain/checklist"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// ChecklistService evaluates the document checklist of a clinic
type ChecklistService interface {
	EvaluateChecklist(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (*entity.ChecklistReport, error)
	PendingDocuments(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]entity.ChecklistItemState, error)
}

type checklistServiceImpl struct {
	docRepo port.DocumentRepository
	metrics port.MetricsRecorder
	logger  Logger
}

// NewChecklistService creates a new ChecklistService. metrics may be nil.
func NewChecklistService(docRepo port.DocumentRepository, metrics port.MetricsRecorder, logger Logger) ChecklistService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &checklistServiceImpl{
		docRepo: docRepo,
		metrics: metrics,
		logger:  logger,
	}
}

// EvaluateChecklist joins the regime's catalog with the clinic's documents for the year.
// A store failure fails the whole evaluation; no partial tree is returned.
func (s *checklistServiceImpl) EvaluateChecklist(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (*entity.ChecklistReport, error) {
	if err := validateScope(clinicID, regime, fiscalYear); err != nil {
		return nil, err
	}

	start := time.Now()
	docs, err := s.docRepo.QueryByClinicYearRegime(ctx, clinicID, fiscalYear, regime)
	if err != nil {
		s.logger.Error("Failed to load documents for checklist",
			"clinic_id", clinicID, "regime", regime, "fiscal_year", fiscalYear, "error", err)
		return nil, storeErr("failed to load documents", err)
	}

	report := checklist.Evaluate(catalog.ByRegime(regime), docs)
	s.metrics.ObserveChecklistEvaluation(regime, time.Since(start))

	s.logger.Info("Checklist evaluated",
		"clinic_id", clinicID, "regime", regime, "fiscal_year", fiscalYear,
		"completed", report.Completed, "total", report.Total)
	return report, nil
}

// PendingDocuments returns the required items still incomplete
func (s *checklistServiceImpl) PendingDocuments(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]entity.ChecklistItemState, error) {
	report, err := s.EvaluateChecklist(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return nil, err
	}
	return checklist.Pending(report), nil
}
