package port

import (
	"context"
	"errors"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")

	// ErrFieldUnavailable is returned when the store lacks a column the query needs,
	// e.g. before the migration that adds it has run
	ErrFieldUnavailable = errors.New("field not available in store")
)

// DocumentRepository defines persistence operations for FiscalDocument
type DocumentRepository interface {
	// QueryByClinicYearRegime returns every document of the clinic for the fiscal year
	// filed under the regime or under "all". One query, no per-item fan-out.
	QueryByClinicYearRegime(ctx context.Context, clinicID string, fiscalYear int, regime entity.TaxRegime) ([]*entity.FiscalDocument, error)

	// QueryExpiring returns documents with an expiration date on or before until,
	// soonest first. Returns ErrFieldUnavailable when expiration tracking is not provisioned.
	QueryExpiring(ctx context.Context, clinicID string, until time.Time) ([]*entity.FiscalDocument, error)

	// ListByClinic returns documents of the clinic, newest first; year filters when non-nil
	ListByClinic(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error)

	ListByCategory(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error)
	ListByMonth(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error)

	// GetByID returns ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error)

	Create(ctx context.Context, doc *entity.FiscalDocument) error
	UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) error
	Delete(ctx context.Context, id string) error

	// CountByCategory returns document counts per category for the fiscal year
	CountByCategory(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error)
}

// ReminderRepository defines persistence operations for FiscalReminder
type ReminderRepository interface {
	// QueryActive returns active reminders of the clinic for the regime, soonest first
	QueryActive(ctx context.Context, clinicID string, regime entity.TaxRegime) ([]*entity.FiscalReminder, error)

	// ListActive returns every active reminder of the clinic, soonest first
	ListActive(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error)

	GetByID(ctx context.Context, id string) (*entity.FiscalReminder, error)
	Create(ctx context.Context, reminder *entity.FiscalReminder) error
	Update(ctx context.Context, reminder *entity.FiscalReminder) error
	Delete(ctx context.Context, id string) error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
