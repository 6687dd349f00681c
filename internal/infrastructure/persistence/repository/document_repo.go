package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
	"github.com/garyjia/fiscal-compliance/internal/infrastructure/persistence/sqlite"
)

const documentBaseColumns = `id, clinic_id, name, description, file_url, file_path, file_type, mime_type,
	file_size, tax_regime, category, subcategory, fiscal_year, reference_month,
	uploaded_by, notes, created_at, updated_at`

// DocumentRepository implements port.DocumentRepository on SQLite.
// It tolerates a schema without the expiration_date column.
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger

	// set once expiration_date has been seen; the column is never dropped
	hasExpiration atomic.Bool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) port.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// QueryByClinicYearRegime returns the documents filed under the regime or under "all"
func (r *DocumentRepository) QueryByClinicYearRegime(ctx context.Context, clinicID string, fiscalYear int, regime entity.TaxRegime) ([]*entity.FiscalDocument, error) {
	where := `clinic_id = ? AND fiscal_year = ?`
	args := []interface{}{clinicID, fiscalYear}
	if regime != entity.RegimeAll {
		where += ` AND tax_regime IN (?, 'all')`
		args = append(args, string(regime))
	}

	docs, err := r.selectDocuments(ctx, where, `created_at DESC`, args...)
	if err != nil {
		r.logger.Error("Failed to query documents by regime",
			zap.String("clinic_id", clinicID),
			zap.Int("fiscal_year", fiscalYear),
			zap.String("regime", string(regime)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	return docs, nil
}

// QueryExpiring returns documents expiring on or before until, soonest first
func (r *DocumentRepository) QueryExpiring(ctx context.Context, clinicID string, until time.Time) ([]*entity.FiscalDocument, error) {
	query := `SELECT ` + documentBaseColumns + `, expiration_date
		FROM fiscal_documents
		WHERE clinic_id = ? AND expiration_date IS NOT NULL AND expiration_date <= ?
		ORDER BY expiration_date ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, clinicID, until.Format(entity.DateLayout))
	if err != nil {
		if isMissingColumn(err) {
			r.logger.Warn("expiration_date column not found, migration needed", zap.String("clinic_id", clinicID))
			return nil, fmt.Errorf("query expiring documents: %w", port.ErrFieldUnavailable)
		}
		r.logger.Error("Failed to query expiring documents", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, fmt.Errorf("failed to query expiring documents: %w", err)
	}
	defer rows.Close()

	r.hasExpiration.Store(true)
	return scanDocuments(rows, true)
}

// ListByClinic returns the clinic's documents, newest first
func (r *DocumentRepository) ListByClinic(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error) {
	where := `clinic_id = ?`
	args := []interface{}{clinicID}
	if fiscalYear != nil {
		where += ` AND fiscal_year = ?`
		args = append(args, *fiscalYear)
	}

	docs, err := r.selectDocuments(ctx, where, `created_at DESC`, args...)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// ListByCategory returns the documents of one category for the fiscal year
func (r *DocumentRepository) ListByCategory(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error) {
	docs, err := r.selectDocuments(ctx, `clinic_id = ? AND category = ? AND fiscal_year = ?`, `created_at DESC`,
		clinicID, string(category), fiscalYear)
	if err != nil {
		r.logger.Error("Failed to list documents by category",
			zap.String("clinic_id", clinicID),
			zap.String("category", string(category)),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list documents by category: %w", err)
	}
	return docs, nil
}

// ListByMonth returns the documents referencing one month of the fiscal year
func (r *DocumentRepository) ListByMonth(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error) {
	docs, err := r.selectDocuments(ctx, `clinic_id = ? AND fiscal_year = ? AND reference_month = ?`, `category ASC, created_at DESC`,
		clinicID, fiscalYear, month)
	if err != nil {
		r.logger.Error("Failed to list documents by month",
			zap.String("clinic_id", clinicID),
			zap.Int("month", month),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list documents by month: %w", err)
	}
	return docs, nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	docs, err := r.selectDocuments(ctx, `id = ?`, `id`, id)
	if err != nil {
		r.logger.Error("Failed to get document by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if len(docs) == 0 {
		return nil, port.ErrNotFound
	}
	return docs[0], nil
}

// Create inserts a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	withExpiration, err := r.expirationAvailable(ctx)
	if err != nil {
		return err
	}

	columns := documentBaseColumns
	placeholders := `?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?`
	args := []interface{}{
		doc.ID,
		doc.ClinicID,
		doc.Name,
		doc.Description,
		doc.FileURL,
		doc.FilePath,
		doc.FileType,
		doc.MimeType,
		doc.FileSize,
		string(doc.TaxRegime),
		string(doc.Category),
		nullString(doc.Subcategory),
		doc.FiscalYear,
		nullInt(doc.ReferenceMonth),
		doc.UploadedBy,
		doc.Notes,
		doc.CreatedAt,
		doc.UpdatedAt,
	}
	if withExpiration {
		columns += `, expiration_date`
		placeholders += `, ?`
		args = append(args, nullDate(doc.ExpirationDate))
	} else if doc.ExpirationDate != nil {
		r.logger.Warn("Dropping expiration date, column not provisioned", zap.String("id", doc.ID))
	}

	query := `INSERT INTO fiscal_documents (` + columns + `) VALUES (` + placeholders + `)`
	if _, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to create document", zap.String("id", doc.ID), zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// UpdateMetadata applies the non-nil fields of update
func (r *DocumentRepository) UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) error {
	var (
		sets []string
		args []interface{}
	)
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.ReferenceMonth != nil {
		sets = append(sets, "reference_month = ?")
		args = append(args, *update.ReferenceMonth)
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *update.Notes)
	}
	if update.ExpirationDate != nil {
		ok, err := r.expirationAvailable(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("update expiration date: %w", port.ErrFieldUnavailable)
		}
		sets = append(sets, "expiration_date = ?")
		args = append(args, update.ExpirationDate.Format(entity.DateLayout))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := `UPDATE fiscal_documents SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update document", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update document: %w", err)
	}
	return requireAffected(result, id)
}

// Delete removes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, `DELETE FROM fiscal_documents WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete document", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return requireAffected(result, id)
}

// CountByCategory returns document counts per category; every category is present
func (r *DocumentRepository) CountByCategory(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error) {
	query := `
		SELECT category, COUNT(*)
		FROM fiscal_documents
		WHERE clinic_id = ? AND fiscal_year = ?
		GROUP BY category
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, clinicID, fiscalYear)
	if err != nil {
		r.logger.Error("Failed to count documents", zap.String("clinic_id", clinicID), zap.Error(err))
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.Category]int, len(entity.Categories))
	for _, c := range entity.Categories {
		counts[c] = 0
	}
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[entity.Category(category)] = n
	}
	return counts, rows.Err()
}

func (r *DocumentRepository) selectDocuments(ctx context.Context, where, orderBy string, args ...interface{}) ([]*entity.FiscalDocument, error) {
	withExpiration, err := r.expirationAvailable(ctx)
	if err != nil {
		return nil, err
	}

	columns := documentBaseColumns
	if withExpiration {
		columns += `, expiration_date`
	}
	query := `SELECT ` + columns + ` FROM fiscal_documents WHERE ` + where + ` ORDER BY ` + orderBy

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDocuments(rows, withExpiration)
}

// expirationAvailable reports whether fiscal_documents has the expiration_date column
func (r *DocumentRepository) expirationAvailable(ctx context.Context) (bool, error) {
	if r.hasExpiration.Load() {
		return true, nil
	}

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, `SELECT name FROM pragma_table_info('fiscal_documents')`)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("failed to inspect schema: %w", err)
		}
		if name == "expiration_date" {
			r.hasExpiration.Store(true)
			return true, nil
		}
	}
	return false, rows.Err()
}

func scanDocuments(rows *sql.Rows, withExpiration bool) ([]*entity.FiscalDocument, error) {
	docs := []*entity.FiscalDocument{}
	for rows.Next() {
		var (
			doc         entity.FiscalDocument
			regime      string
			category    string
			subcategory sql.NullString
			month       sql.NullInt64
			expiration  sql.NullString
		)
		dest := []interface{}{
			&doc.ID,
			&doc.ClinicID,
			&doc.Name,
			&doc.Description,
			&doc.FileURL,
			&doc.FilePath,
			&doc.FileType,
			&doc.MimeType,
			&doc.FileSize,
			&regime,
			&category,
			&subcategory,
			&doc.FiscalYear,
			&month,
			&doc.UploadedBy,
			&doc.Notes,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		}
		if withExpiration {
			dest = append(dest, &expiration)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		doc.TaxRegime = entity.TaxRegime(regime)
		doc.Category = entity.Category(category)
		if subcategory.Valid {
			s := subcategory.String
			doc.Subcategory = &s
		}
		if month.Valid {
			m := int(month.Int64)
			doc.ReferenceMonth = &m
		}
		if expiration.Valid {
			d, err := parseDate(expiration.String)
			if err != nil {
				return nil, fmt.Errorf("document %s: %w", doc.ID, err)
			}
			doc.ExpirationDate = &d
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

// isMissingColumn recognises SQLite's error for a column absent from the schema
func isMissingColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such column")
}

func requireAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: %w", id, port.ErrNotFound)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(entity.DateLayout), Valid: true}
}

// parseDate accepts plain dates and the timestamp forms older rows may carry
func parseDate(s string) (time.Time, error) {
	if len(s) >= len(entity.DateLayout) {
		if t, err := time.Parse(entity.DateLayout, s[:len(entity.DateLayout)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date " + s)
}

// Verify interface compliance
var _ port.DocumentRepository = (*DocumentRepository)(nil)
