package entity

// AlertType classifies a fiscal alert
type AlertType string

// Alert type constants
const (
	AlertMissingDocument  AlertType = "missing_document"
	AlertExpiringDocument AlertType = "expiring_document"
	AlertExpiredDocument  AlertType = "expired_document"
	AlertDeadline         AlertType = "deadline"
)

// Urgency is the priority of an alert
type Urgency string

// Urgency constants, most urgent first
const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyInfo     Urgency = "info"
)

// Rank orders urgencies: critical 0, warning 1, info 2
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyWarning:
		return 1
	default:
		return 2
	}
}

// FiscalAlert is a derived, ephemeral alert. DaysUntilDue is negative when overdue.
type FiscalAlert struct {
	ID            string    `json:"id"`
	Type          AlertType `json:"type"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      Category  `json:"category"`
	CategoryLabel string    `json:"category_label"`
	DueDate       string    `json:"due_date"`
	DaysUntilDue  int       `json:"days_until_due"`
	Urgency       Urgency   `json:"urgency"`
	DocumentID    string    `json:"document_id,omitempty"`
	ReminderID    string    `json:"reminder_id,omitempty"`
}

// AlertCounts summarises alerts for badges
type AlertCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	Total    int `json:"total"`
}
