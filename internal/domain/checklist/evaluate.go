// Package checklist joins catalog items against supplied documents and
// derives completion for items, sections and the whole checklist.
package checklist

import (
	"math"

	"github.com/garyjia/fiscal-compliance/internal/domain/catalog"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// quarterEnds are the closing months of each fiscal quarter
var quarterEnds = [...]int{3, 6, 9, 12}

// IsComplete applies the completion rule of the frequency to the matched documents.
//
// monthly requires all twelve distinct reference months; partial coverage is
// incomplete. quarterly requires a document in each window (q-3, q] for q in
// 3, 6, 9, 12. Everything else is complete with at least one document.
func IsComplete(freq entity.Frequency, docs []*entity.FiscalDocument) bool {
	if len(docs) == 0 {
		return false
	}

	switch freq.Normalize() {
	case entity.FrequencyMonthly:
		return len(referenceMonths(docs)) == 12
	case entity.FrequencyQuarterly:
		months := referenceMonths(docs)
		for _, q := range quarterEnds {
			if !coversWindow(months, q-3, q) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// referenceMonths collects distinct reference months in 1..12
func referenceMonths(docs []*entity.FiscalDocument) map[int]struct{} {
	months := make(map[int]struct{}, 12)
	for _, d := range docs {
		if m := d.Month(); m >= 1 && m <= 12 {
			months[m] = struct{}{}
		}
	}
	return months
}

// coversWindow reports whether any month falls in (from, to]
func coversWindow(months map[int]struct{}, from, to int) bool {
	for m := from + 1; m <= to; m++ {
		if _, ok := months[m]; ok {
			return true
		}
	}
	return false
}

// Match pairs each item with its documents and computes completion
func Match(items []entity.ChecklistItem, docs []*entity.FiscalDocument) []entity.ChecklistItemState {
	byKey := make(map[string][]*entity.FiscalDocument)
	for _, d := range docs {
		if d.Subcategory == nil {
			continue
		}
		key := string(d.Category) + ":" + *d.Subcategory
		byKey[key] = append(byKey[key], d)
	}

	states := make([]entity.ChecklistItemState, len(items))
	for i, item := range items {
		matched := byKey[item.Key()]
		if matched == nil {
			matched = []*entity.FiscalDocument{}
		}
		states[i] = entity.ChecklistItemState{
			ChecklistItem: item,
			Documents:     matched,
			IsComplete:    IsComplete(item.Frequency, matched),
		}
	}
	return states
}

// Percentage returns round(100*completed/total), or 0 when total is 0
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(completed) / float64(total)))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Summarize totals the section counts
func Summarize(sections []entity.ChecklistSection) (completed, total, percentage int) {
	for _, s := range sections {
		completed += s.CompletedCount
		total += s.TotalCount
	}
	return completed, total, Percentage(completed, total)
}

// Evaluate builds the full checklist report from catalog items and documents
func Evaluate(items []entity.ChecklistItem, docs []*entity.FiscalDocument) *entity.ChecklistReport {
	sections := catalog.GroupByCategory(Match(items, docs))
	if sections == nil {
		sections = []entity.ChecklistSection{}
	}

	completed, total, percentage := Summarize(sections)
	return &entity.ChecklistReport{
		Sections:   sections,
		Completed:  completed,
		Total:      total,
		Percentage: percentage,
	}
}

// Pending returns the required items that are not complete, in section order
func Pending(report *entity.ChecklistReport) []entity.ChecklistItemState {
	pending := []entity.ChecklistItemState{}
	for _, section := range report.Sections {
		for _, item := range section.Items {
			if item.Required && !item.IsComplete {
				pending = append(pending, item)
			}
		}
	}
	return pending
}
