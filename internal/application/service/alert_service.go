package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/alert"
	"github.com/garyjia/fiscal-compliance/internal/domain/catalog"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Alert source names
const (
	SourceExpiringDocuments = "expiring_documents"
	SourceReminders         = "reminders"
	SourceMissingAnnual     = "missing_annual"
)

// SourceStatus is the outcome of one alert source
type SourceStatus string

// Source status constants
const (
	SourceOK       SourceStatus = "ok"
	SourceEmpty    SourceStatus = "empty"
	SourceDegraded SourceStatus = "degraded"
	SourceFailed   SourceStatus = "failed"
)

// SourceResult is what one alert source produced
type SourceResult struct {
	Source string              `json:"source"`
	Status SourceStatus        `json:"status"`
	Alerts []entity.FiscalAlert `json:"-"`
	Err    error               `json:"-"`
}

// skipped reports whether the source could not contribute
func (r SourceResult) skipped() bool {
	return r.Status == SourceDegraded || r.Status == SourceFailed
}

// AlertReport is the merged, ordered alert list plus the sources that were skipped
type AlertReport struct {
	Alerts         []entity.FiscalAlert `json:"alerts"`
	SkippedSources []string             `json:"skipped_sources"`
	Sources        []SourceResult       `json:"sources"`
}

// AlertConfig tunes the alert windows
type AlertConfig struct {
	ExpiringLookaheadDays  int
	DeadlineWindowDays     int
	MissingAnnualFromMonth time.Month
}

// DefaultAlertConfig returns the standard alert windows
func DefaultAlertConfig() AlertConfig {
	return AlertConfig{
		ExpiringLookaheadDays:  60,
		DeadlineWindowDays:     alert.WarningWithinDays,
		MissingAnnualFromMonth: alert.MissingAnnualFromMonth,
	}
}

// AlertService computes prioritized fiscal alerts
type AlertService interface {
	ComputeAlerts(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (*AlertReport, error)
	AlertCounts(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (entity.AlertCounts, error)
}

type alertServiceImpl struct {
	docRepo      port.DocumentRepository
	reminderRepo port.ReminderRepository
	clock        port.Clock
	cfg          AlertConfig
	metrics      port.MetricsRecorder
	logger       Logger
}

// NewAlertService creates a new AlertService. clock and metrics may be nil;
// zero config values fall back to the defaults.
func NewAlertService(
	docRepo port.DocumentRepository,
	reminderRepo port.ReminderRepository,
	clock port.Clock,
	cfg AlertConfig,
	metrics port.MetricsRecorder,
	logger Logger,
) AlertService {
	def := DefaultAlertConfig()
	if cfg.ExpiringLookaheadDays <= 0 {
		cfg.ExpiringLookaheadDays = def.ExpiringLookaheadDays
	}
	if cfg.DeadlineWindowDays <= 0 {
		cfg.DeadlineWindowDays = def.DeadlineWindowDays
	}
	if cfg.MissingAnnualFromMonth < time.January || cfg.MissingAnnualFromMonth > time.December {
		cfg.MissingAnnualFromMonth = def.MissingAnnualFromMonth
	}
	if clock == nil {
		clock = port.SystemClock
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &alertServiceImpl{
		docRepo:      docRepo,
		reminderRepo: reminderRepo,
		clock:        clock,
		cfg:          cfg,
		metrics:      metrics,
		logger:       logger,
	}
}

// ComputeAlerts runs the three alert sources concurrently and merges their output.
// A failing source is logged and listed in SkippedSources; only invalid input or a
// cancelled context is returned as an error.
func (s *alertServiceImpl) ComputeAlerts(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (*AlertReport, error) {
	if err := validateScope(clinicID, regime, fiscalYear); err != nil {
		return nil, err
	}

	today := alert.Date(s.clock.Now())
	sources := []struct {
		name string
		run  func(ctx context.Context) ([]entity.FiscalAlert, int, error)
	}{
		{SourceExpiringDocuments, func(ctx context.Context) ([]entity.FiscalAlert, int, error) {
			return s.expiringAlerts(ctx, clinicID, today)
		}},
		{SourceReminders, func(ctx context.Context) ([]entity.FiscalAlert, int, error) {
			return s.reminderAlerts(ctx, clinicID, regime, today)
		}},
		{SourceMissingAnnual, func(ctx context.Context) ([]entity.FiscalAlert, int, error) {
			return s.missingAnnualAlerts(ctx, clinicID, regime, fiscalYear, today)
		}},
	}

	results := make([]SourceResult, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			start := time.Now()
			alerts, n, err := src.run(ctx)
			results[i] = classify(src.name, alerts, n, err)
			s.metrics.ObserveAlertSource(src.name, string(results[i].Status), time.Since(start))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &AlertReport{
		Alerts:         []entity.FiscalAlert{},
		SkippedSources: []string{},
		Sources:        results,
	}
	for _, r := range results {
		if r.skipped() {
			s.logger.Warn("Alert source skipped",
				"clinic_id", clinicID, "source", r.Source, "status", r.Status, "error", r.Err)
			report.SkippedSources = append(report.SkippedSources, r.Source)
			continue
		}
		report.Alerts = append(report.Alerts, r.Alerts...)
	}
	alert.Sort(report.Alerts)

	s.metrics.RecordAlerts(alert.Count(report.Alerts))
	return report, nil
}

// AlertCounts tallies the computed alerts by urgency
func (s *alertServiceImpl) AlertCounts(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (entity.AlertCounts, error) {
	report, err := s.ComputeAlerts(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return entity.AlertCounts{}, err
	}
	return alert.Count(report.Alerts), nil
}

func classify(source string, alerts []entity.FiscalAlert, records int, err error) SourceResult {
	r := SourceResult{Source: source, Alerts: alerts, Err: err}
	switch {
	case errors.Is(err, port.ErrFieldUnavailable):
		r.Status = SourceDegraded
		r.Alerts = nil
	case err != nil:
		r.Status = SourceFailed
		r.Alerts = nil
	case records == 0:
		r.Status = SourceEmpty
	default:
		r.Status = SourceOK
	}
	return r
}

// expiringAlerts covers documents expiring within the lookahead window, including already expired ones
func (s *alertServiceImpl) expiringAlerts(ctx context.Context, clinicID string, today time.Time) ([]entity.FiscalAlert, int, error) {
	until := today.AddDate(0, 0, s.cfg.ExpiringLookaheadDays)
	docs, err := s.docRepo.QueryExpiring(ctx, clinicID, until)
	if err != nil {
		return nil, 0, err
	}

	alerts := make([]entity.FiscalAlert, 0, len(docs))
	for _, doc := range docs {
		if doc.ExpirationDate == nil {
			continue
		}
		alerts = append(alerts, alert.FromExpiringDocument(today, doc))
	}
	return alerts, len(docs), nil
}

// reminderAlerts covers active reminders due within the deadline window, overdue ones included
func (s *alertServiceImpl) reminderAlerts(ctx context.Context, clinicID string, regime entity.TaxRegime, today time.Time) ([]entity.FiscalAlert, int, error) {
	reminders, err := s.reminderRepo.QueryActive(ctx, clinicID, regime)
	if err != nil {
		return nil, 0, err
	}

	alerts := make([]entity.FiscalAlert, 0, len(reminders))
	for _, r := range reminders {
		if alert.DaysUntil(today, r.DueDate) > s.cfg.DeadlineWindowDays {
			continue
		}
		alerts = append(alerts, alert.FromReminder(today, r))
	}
	return alerts, len(reminders), nil
}

// missingAnnualAlerts flags required annual items with no document, late in the year only.
// Any document of the fiscal year counts, whatever regime it was filed under.
func (s *alertServiceImpl) missingAnnualAlerts(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int, today time.Time) ([]entity.FiscalAlert, int, error) {
	if !alert.MissingAnnualDue(today, s.cfg.MissingAnnualFromMonth) {
		return nil, 0, nil
	}

	docs, err := s.docRepo.ListByClinic(ctx, clinicID, &fiscalYear)
	if err != nil {
		return nil, 0, err
	}

	present := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc.Subcategory == nil {
			continue
		}
		present[string(doc.Category)+":"+*doc.Subcategory] = struct{}{}
	}

	var alerts []entity.FiscalAlert
	items := catalog.ByRegime(regime)
	for _, item := range items {
		if !item.Required || item.Frequency != entity.FrequencyAnnual {
			continue
		}
		if _, ok := present[item.Key()]; ok {
			continue
		}
		alerts = append(alerts, alert.MissingAnnual(today, item, fiscalYear))
	}
	return alerts, len(alerts), nil
}
