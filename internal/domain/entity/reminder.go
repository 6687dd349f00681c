package entity

import "time"

// FiscalReminder is a user-defined recurring deadline
type FiscalReminder struct {
	ID          string    `json:"id"`
	ClinicID    string    `json:"clinic_id"`
	TaxRegime   TaxRegime `json:"tax_regime"`
	Category    Category  `json:"category"`
	Subcategory *string   `json:"subcategory,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Frequency   Frequency `json:"frequency"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
