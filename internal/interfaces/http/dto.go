package http

import (
	"fmt"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// DocumentResponse represents a fiscal document in API responses
type DocumentResponse struct {
	ID             string           `json:"id"`
	ClinicID       string           `json:"clinic_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	FileURL        string           `json:"file_url"`
	FileType       string           `json:"file_type"`
	MimeType       string           `json:"mime_type"`
	FileSize       int64            `json:"file_size"`
	TaxRegime      entity.TaxRegime `json:"tax_regime"`
	Category       entity.Category  `json:"category"`
	Subcategory    *string          `json:"subcategory,omitempty"`
	FiscalYear     int              `json:"fiscal_year"`
	ReferenceMonth *int             `json:"reference_month,omitempty"`
	ExpirationDate *string          `json:"expiration_date,omitempty"`
	UploadedBy     string           `json:"uploaded_by,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// ChecklistItemResponse represents one evaluated checklist item
type ChecklistItemResponse struct {
	Category    entity.Category    `json:"category"`
	Subcategory string             `json:"subcategory"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Required    bool               `json:"required"`
	Frequency   entity.Frequency   `json:"frequency"`
	IsComplete  bool               `json:"is_complete"`
	Documents   []DocumentResponse `json:"documents"`
}

// ChecklistSectionResponse represents one category section of the checklist
type ChecklistSectionResponse struct {
	Category       entity.Category         `json:"category"`
	Label          string                  `json:"label"`
	Icon           string                  `json:"icon"`
	CompletedCount int                     `json:"completed_count"`
	TotalCount     int                     `json:"total_count"`
	Items          []ChecklistItemResponse `json:"items"`
}

// ChecklistResponse represents the evaluated checklist
type ChecklistResponse struct {
	Sections   []ChecklistSectionResponse `json:"sections"`
	Completed  int                        `json:"completed"`
	Total      int                        `json:"total"`
	Percentage int                        `json:"percentage"`
}

// AlertsResponse represents the merged alert list
type AlertsResponse struct {
	Alerts         []entity.FiscalAlert   `json:"alerts"`
	SkippedSources []string               `json:"skipped_sources"`
	Sources        []service.SourceResult `json:"sources,omitempty"`
}

// ReminderResponse represents a fiscal reminder in API responses
type ReminderResponse struct {
	ID          string           `json:"id"`
	ClinicID    string           `json:"clinic_id"`
	TaxRegime   entity.TaxRegime `json:"tax_regime"`
	Category    entity.Category  `json:"category"`
	Subcategory *string          `json:"subcategory,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	DueDate     string           `json:"due_date"`
	Frequency   entity.Frequency `json:"frequency"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

// ReminderRequest is the body of reminder create and update calls
type ReminderRequest struct {
	TaxRegime   entity.TaxRegime `json:"tax_regime"`
	Category    entity.Category  `json:"category"`
	Subcategory *string          `json:"subcategory"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	DueDate     string           `json:"due_date"`
	Frequency   entity.Frequency `json:"frequency"`
	IsActive    *bool            `json:"is_active"`
}

// DocumentPatchRequest is the body of a document metadata update
type DocumentPatchRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	ReferenceMonth *int    `json:"reference_month"`
	ExpirationDate *string `json:"expiration_date"`
	Notes          *string `json:"notes"`
}

// SummaryResponse carries the shareable plain-text summary
type SummaryResponse struct {
	Summary string `json:"summary"`
}

func toReminderInput(req ReminderRequest) (service.ReminderInput, error) {
	due, err := parseDateParam(req.DueDate)
	if err != nil {
		return service.ReminderInput{}, fmt.Errorf("due_date: %w", err)
	}
	return service.ReminderInput{
		TaxRegime:   req.TaxRegime,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Frequency:   req.Frequency,
		IsActive:    req.IsActive,
	}, nil
}

func toDocumentUpdate(req DocumentPatchRequest) (entity.DocumentUpdate, error) {
	update := entity.DocumentUpdate{
		Name:           req.Name,
		Description:    req.Description,
		ReferenceMonth: req.ReferenceMonth,
		Notes:          req.Notes,
	}
	if req.ExpirationDate != nil {
		exp, err := parseDateParam(*req.ExpirationDate)
		if err != nil {
			return update, fmt.Errorf("expiration_date: %w", err)
		}
		update.ExpirationDate = &exp
	}
	return update, nil
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

func toDocumentResponse(doc *entity.FiscalDocument) DocumentResponse {
	resp := DocumentResponse{
		ID:             doc.ID,
		ClinicID:       doc.ClinicID,
		Name:           doc.Name,
		Description:    doc.Description,
		FileURL:        doc.FileURL,
		FileType:       doc.FileType,
		MimeType:       doc.MimeType,
		FileSize:       doc.FileSize,
		TaxRegime:      doc.TaxRegime,
		Category:       doc.Category,
		Subcategory:    doc.Subcategory,
		FiscalYear:     doc.FiscalYear,
		ReferenceMonth: doc.ReferenceMonth,
		UploadedBy:     doc.UploadedBy,
		Notes:          doc.Notes,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      doc.UpdatedAt.Format(time.RFC3339),
	}

	if doc.ExpirationDate != nil {
		exp := doc.ExpirationDate.Format(entity.DateLayout)
		resp.ExpirationDate = &exp
	}

	return resp
}

func toDocumentResponses(docs []*entity.FiscalDocument) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	return out
}

func toChecklistItemResponse(item entity.ChecklistItemState) ChecklistItemResponse {
	return ChecklistItemResponse{
		Category:    item.Category,
		Subcategory: item.Subcategory,
		Label:       item.Label,
		Description: item.Description,
		Required:    item.Required,
		Frequency:   item.Frequency,
		IsComplete:  item.IsComplete,
		Documents:   toDocumentResponses(item.Documents),
	}
}

func toChecklistResponse(report *entity.ChecklistReport) ChecklistResponse {
	resp := ChecklistResponse{
		Sections:   make([]ChecklistSectionResponse, 0, len(report.Sections)),
		Completed:  report.Completed,
		Total:      report.Total,
		Percentage: report.Percentage,
	}
	for _, section := range report.Sections {
		items := make([]ChecklistItemResponse, 0, len(section.Items))
		for _, item := range section.Items {
			items = append(items, toChecklistItemResponse(item))
		}
		resp.Sections = append(resp.Sections, ChecklistSectionResponse{
			Category:       section.Category,
			Label:          section.Label,
			Icon:           section.Icon,
			CompletedCount: section.CompletedCount,
			TotalCount:     section.TotalCount,
			Items:          items,
		})
	}
	return resp
}

func toReminderResponse(r *entity.FiscalReminder) ReminderResponse {
	return ReminderResponse{
		ID:          r.ID,
		ClinicID:    r.ClinicID,
		TaxRegime:   r.TaxRegime,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.Format(entity.DateLayout),
		Frequency:   r.Frequency,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}
