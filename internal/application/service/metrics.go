package service

import (
	"time"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

type noopMetrics struct{}

func (noopMetrics) ObserveChecklistEvaluation(entity.TaxRegime, time.Duration) {}
func (noopMetrics) ObserveAlertSource(string, string, time.Duration)       {}
func (noopMetrics) RecordAlerts(entity.AlertCounts)                        {}
