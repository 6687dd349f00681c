package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Metrics provides observability for checklist evaluation and alert computation
type Metrics struct {
	// Checklist evaluation latency by regime
	EvaluateLatency *prometheus.HistogramVec

	// Alert source latency by source
	SourceLatency *prometheus.HistogramVec

	// Alert source outcomes by source and status (ok, empty, degraded, failed)
	SourceOutcome *prometheus.CounterVec

	// Alerts emitted by urgency
	AlertsEmitted *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EvaluateLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fiscal_checklist_evaluate_duration_seconds",
			Help:    "Duration of checklist evaluation including the document query",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"regime"}),

		SourceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fiscal_alert_source_duration_seconds",
			Help:    "Duration of alert source queries by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		SourceOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fiscal_alert_source_outcomes_total",
			Help: "Alert source outcomes by source and status",
		}, []string{"source", "status"}),

		AlertsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fiscal_alerts_emitted_total",
			Help: "Alerts returned to callers by urgency",
		}, []string{"urgency"}),
	}
}

// ObserveChecklistEvaluation records the duration of a checklist evaluation
func (m *Metrics) ObserveChecklistEvaluation(regime entity.TaxRegime, d time.Duration) {
	if m != nil {
		m.EvaluateLatency.WithLabelValues(string(regime)).Observe(d.Seconds())
	}
}

// ObserveAlertSource records the duration and outcome of one alert source
func (m *Metrics) ObserveAlertSource(source, status string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
		m.SourceOutcome.WithLabelValues(source, status).Inc()
	}
}

// RecordAlerts adds the emitted alerts to the per-urgency counters
func (m *Metrics) RecordAlerts(counts entity.AlertCounts) {
	if m == nil {
		return
	}
	m.AlertsEmitted.WithLabelValues(string(entity.UrgencyCritical)).Add(float64(counts.Critical))
	m.AlertsEmitted.WithLabelValues(string(entity.UrgencyWarning)).Add(float64(counts.Warning))
	m.AlertsEmitted.WithLabelValues(string(entity.UrgencyInfo)).Add(float64(counts.Info))
}

// Verify interface compliance
var _ port.MetricsRecorder = (*Metrics)(nil)
