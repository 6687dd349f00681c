package port

import (
	"time"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// MetricsRecorder receives evaluation and alert observations
type MetricsRecorder interface {
	ObserveChecklistEvaluation(regime entity.TaxRegime, d time.Duration)
	ObserveAlertSource(source, status string, d time.Duration)
	RecordAlerts(counts entity.AlertCounts)
}

// Clock supplies the current time. Alert computations read it once per call.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now returns f()
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)
