package entity

import "time"

// FiscalDocument is a supporting document uploaded by a clinic
type FiscalDocument struct {
	ID             string     `json:"id"`
	ClinicID       string     `json:"clinic_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	FileURL        string     `json:"file_url"`
	FilePath       string     `json:"file_path"`
	FileType       string     `json:"file_type"`
	MimeType       string     `json:"mime_type"`
	FileSize       int64      `json:"file_size"`
	TaxRegime      TaxRegime  `json:"tax_regime"`
	Category       Category   `json:"category"`
	Subcategory    *string    `json:"subcategory,omitempty"`
	FiscalYear     int        `json:"fiscal_year"`
	ReferenceMonth *int       `json:"reference_month,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	UploadedBy     string     `json:"uploaded_by,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SubcategoryValue returns the subcategory or "" when unset
func (d *FiscalDocument) SubcategoryValue() string {
	if d.Subcategory == nil {
		return ""
	}
	return *d.Subcategory
}

// Month returns the reference month or 0 when unset
func (d *FiscalDocument) Month() int {
	if d.ReferenceMonth == nil {
		return 0
	}
	return *d.ReferenceMonth
}

// DocumentUpdate carries the metadata fields that may change after upload.
// Nil fields are left untouched.
type DocumentUpdate struct {
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	ReferenceMonth *int       `json:"reference_month,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u DocumentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.ReferenceMonth == nil &&
		u.ExpirationDate == nil && u.Notes == nil
}

// ExportEntry is one downloadable file of an export
type ExportEntry struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Category Category `json:"category"`
}
