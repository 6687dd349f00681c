package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/persistence/sqlite"
)

const reminderColumns = `id, clinic_id, tax_regime, category, subcategory, title, description,
	due_date, frequency, is_active, created_at, updated_at`

// ReminderRepository implements port.ReminderRepository
type ReminderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *sql.DB, logger *zap.Logger) port.ReminderRepository {
	return &ReminderRepository{
		db:     db,
		logger: logger,
	}
}

// QueryActive returns active reminders tagged with exactly the given regime, soonest first
func (r *ReminderRepository) QueryActive(ctx context.Context, clinicID string, regime entity.TaxRegime) ([]*entity.FiscalReminder, error) {
	query := `SELECT ` + reminderColumns + `
		FROM fiscal_document_reminders
		WHERE clinic_id = ? AND is_active = 1 AND tax_regime = ?
		ORDER BY due_date ASC`

	reminders, err := r.query(ctx, query, clinicID, string(regime))
	if err != nil {
		r.logger.Error("Failed to query active reminders",
			zap.String("clinic_id", clinicID),
			zap.String("regime", string(regime)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	return reminders, nil
}

// ListActive returns every active reminder of the clinic, soonest first
func (r *ReminderRepository) ListActive(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error) {
	query := `SELECT ` + reminderColumns + `
		FROM fiscal_document_reminders
		WHERE clinic_id = ? AND is_active = 1
		ORDER BY due_date ASC`

	reminders, err := r.query(ctx, query, clinicID)
	if err != nil {
		r.logger.Error("Failed to list reminders", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// GetByID retrieves a reminder by ID
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*entity.FiscalReminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM fiscal_document_reminders WHERE id = ?`

	reminders, err := r.query(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get reminder by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	if len(reminders) == 0 {
		return nil, port.ErrNotFound
	}
	return reminders[0], nil
}

// Create inserts a new reminder
func (r *ReminderRepository) Create(ctx context.Context, reminder *entity.FiscalReminder) error {
	query := `INSERT INTO fiscal_document_reminders (` + reminderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		reminder.ID,
		reminder.ClinicID,
		string(reminder.TaxRegime),
		string(reminder.Category),
		nullString(reminder.Subcategory),
		reminder.Title,
		reminder.Description,
		reminder.DueDate.Format(entity.DateLayout),
		string(reminder.Frequency),
		reminder.IsActive,
		reminder.CreatedAt,
		reminder.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create reminder", zap.String("id", reminder.ID), zap.Error(err))
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// Update overwrites the editable fields of a reminder
func (r *ReminderRepository) Update(ctx context.Context, reminder *entity.FiscalReminder) error {
	query := `
		UPDATE fiscal_document_reminders
		SET tax_regime = ?, category = ?, subcategory = ?, title = ?, description = ?,
			due_date = ?, frequency = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		string(reminder.TaxRegime),
		string(reminder.Category),
		nullString(reminder.Subcategory),
		reminder.Title,
		reminder.Description,
		reminder.DueDate.Format(entity.DateLayout),
		string(reminder.Frequency),
		reminder.IsActive,
		reminder.UpdatedAt,
		reminder.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update reminder", zap.String("id", reminder.ID), zap.Error(err))
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return requireAffected(result, reminder.ID)
}

// Delete removes a reminder
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `DELETE FROM fiscal_document_reminders WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete reminder", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return requireAffected(result, id)
}

func (r *ReminderRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.FiscalReminder, error) {
	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []*entity.FiscalReminder{}
	for rows.Next() {
		var (
			reminder    entity.FiscalReminder
			regime      string
			category    string
			subcategory sql.NullString
			dueDate     string
			frequency   string
		)
		err := rows.Scan(
			&reminder.ID,
			&reminder.ClinicID,
			&regime,
			&category,
			&subcategory,
			&reminder.Title,
			&reminder.Description,
			&dueDate,
			&frequency,
			&reminder.IsActive,
			&reminder.CreatedAt,
			&reminder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		due, err := parseDate(dueDate)
		if err != nil {
			return nil, fmt.Errorf("reminder %s: %w", reminder.ID, err)
		}
		reminder.DueDate = due
		reminder.TaxRegime = entity.TaxRegime(regime)
		reminder.Category = entity.Category(category)
		reminder.Frequency = entity.Frequency(frequency).Normalize()
		if subcategory.Valid {
			s := subcategory.String
			reminder.Subcategory = &s
		}
		reminders = append(reminders, &reminder)
	}
	return reminders, rows.Err()
}

// Verify interface compliance
var _ port.ReminderRepository = (*ReminderRepository)(nil)
