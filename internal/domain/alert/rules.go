// Package alert classifies fiscal deadlines by urgency and builds the alerts
// raised for expiring documents, user deadlines and missing annual documents.
package alert

import (
	"fmt"
	"sort"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Urgency thresholds in days until due
const (
	CriticalWithinDays = 7
	WarningWithinDays  = 30
)

// MissingAnnualFromMonth is the first calendar month in which missing
// required annual documents raise alerts
const MissingAnnualFromMonth = time.October

// Date truncates t to midnight UTC of its calendar day
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole calendar days from today to due; negative when overdue
func DaysUntil(today, due time.Time) int {
	return int(Date(due).Sub(Date(today)).Hours() / 24)
}

// UrgencyFor maps days until due onto an urgency
func UrgencyFor(days int) entity.Urgency {
	switch {
	case days <= CriticalWithinDays:
		return entity.UrgencyCritical
	case days <= WarningWithinDays:
		return entity.UrgencyWarning
	default:
		return entity.UrgencyInfo
	}
}

// FromExpiringDocument builds the alert for a document with an expiration date.
// The document must have ExpirationDate set.
func FromExpiringDocument(today time.Time, doc *entity.FiscalDocument) entity.FiscalAlert {
	days := DaysUntil(today, *doc.ExpirationDate)

	a := entity.FiscalAlert{
		ID:            "expiring-" + doc.ID,
		Type:          entity.AlertExpiringDocument,
		Title:         "Documento vencendo",
		Description:   doc.Name,
		Category:      doc.Category,
		CategoryLabel: doc.Category.Label(),
		DueDate:       doc.ExpirationDate.Format(entity.DateLayout),
		DaysUntilDue:  days,
		Urgency:       UrgencyFor(days),
		DocumentID:    doc.ID,
	}
	if days <= 0 {
		a.Type = entity.AlertExpiredDocument
		a.Title = "Documento vencido"
	}
	return a
}

// FromReminder builds the deadline alert of a reminder
func FromReminder(today time.Time, r *entity.FiscalReminder) entity.FiscalAlert {
	days := DaysUntil(today, r.DueDate)
	return entity.FiscalAlert{
		ID:            "reminder-" + r.ID,
		Type:          entity.AlertDeadline,
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		CategoryLabel: r.Category.Label(),
		DueDate:       r.DueDate.Format(entity.DateLayout),
		DaysUntilDue:  days,
		Urgency:       UrgencyFor(days),
		ReminderID:    r.ID,
	}
}

// MissingAnnual builds the alert for a required annual item with no document.
// These alerts stay at warning: the real deadline depends on the regime.
func MissingAnnual(today time.Time, item entity.ChecklistItem, fiscalYear int) entity.FiscalAlert {
	due := YearEnd(fiscalYear)
	return entity.FiscalAlert{
		ID:            fmt.Sprintf("missing-%s-%s", item.Category, item.Subcategory),
		Type:          entity.AlertMissingDocument,
		Title:         "Documento obrigatório pendente",
		Description:   item.Label,
		Category:      item.Category,
		CategoryLabel: item.Category.Label(),
		DueDate:       due.Format(entity.DateLayout),
		DaysUntilDue:  DaysUntil(today, due),
		Urgency:       entity.UrgencyWarning,
	}
}

// YearEnd returns December 31 of the fiscal year
func YearEnd(fiscalYear int) time.Time {
	return time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// MissingAnnualDue reports whether missing annual documents are alerted in today's month
func MissingAnnualDue(today time.Time, fromMonth time.Month) bool {
	return today.Month() >= fromMonth
}

// Sort orders alerts by urgency rank, then by days until due. Index 0 is the most urgent.
func Sort(alerts []entity.FiscalAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Urgency.Rank(), alerts[j].Urgency.Rank()
		if ri != rj {
			return ri < rj
		}
		return alerts[i].DaysUntilDue < alerts[j].DaysUntilDue
	})
}

// Count tallies alerts by urgency
func Count(alerts []entity.FiscalAlert) entity.AlertCounts {
	var c entity.AlertCounts
	for _, a := range alerts {
		switch a.Urgency {
		case entity.UrgencyCritical:
			c.Critical++
		case entity.UrgencyWarning:
			c.Warning++
		default:
			c.Info++
		}
	}
	c.Total = len(alerts)
	return c
}
