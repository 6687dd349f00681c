package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Mock repositories
type mockDocumentRepo struct {
	queryByClinicYearRegimeFunc func(ctx context.Context, clinicID string, fiscalYear int, regime entity.TaxRegime) ([]*entity.FiscalDocument, error)
	queryExpiringFunc           func(ctx context.Context, clinicID string, until time.Time) ([]*entity.FiscalDocument, error)
	listByClinicFunc            func(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error)
	listByCategoryFunc          func(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error)
	listByMonthFunc             func(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error)
	getByIDFunc                 func(ctx context.Context, id string) (*entity.FiscalDocument, error)
	createFunc                  func(ctx context.Context, doc *entity.FiscalDocument) error
	updateMetadataFunc          func(ctx context.Context, id string, update entity.DocumentUpdate) error
	deleteFunc                  func(ctx context.Context, id string) error
	countByCategoryFunc         func(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error)

	mu          sync.Mutex
	regimeCalls int
	listCalls   int
}

func (m *mockDocumentRepo) QueryByClinicYearRegime(ctx context.Context, clinicID string, fiscalYear int, regime entity.TaxRegime) ([]*entity.FiscalDocument, error) {
	m.mu.Lock()
	m.regimeCalls++
	m.mu.Unlock()
	if m.queryByClinicYearRegimeFunc != nil {
		return m.queryByClinicYearRegimeFunc(ctx, clinicID, fiscalYear, regime)
	}
	return []*entity.FiscalDocument{}, nil
}

func (m *mockDocumentRepo) QueryExpiring(ctx context.Context, clinicID string, until time.Time) ([]*entity.FiscalDocument, error) {
	if m.queryExpiringFunc != nil {
		return m.queryExpiringFunc(ctx, clinicID, until)
	}
	return []*entity.FiscalDocument{}, nil
}

func (m *mockDocumentRepo) ListByClinic(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.listByClinicFunc != nil {
		return m.listByClinicFunc(ctx, clinicID, fiscalYear)
	}
	return []*entity.FiscalDocument{}, nil
}

func (m *mockDocumentRepo) ListByCategory(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error) {
	if m.listByCategoryFunc != nil {
		return m.listByCategoryFunc(ctx, clinicID, category, fiscalYear)
	}
	return []*entity.FiscalDocument{}, nil
}

func (m *mockDocumentRepo) ListByMonth(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error) {
	if m.listByMonthFunc != nil {
		return m.listByMonthFunc(ctx, clinicID, fiscalYear, month)
	}
	return []*entity.FiscalDocument{}, nil
}

func (m *mockDocumentRepo) GetByID(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.FiscalDocument{ID: id}, nil
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *entity.FiscalDocument) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, doc)
	}
	return nil
}

func (m *mockDocumentRepo) UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) error {
	if m.updateMetadataFunc != nil {
		return m.updateMetadataFunc(ctx, id, update)
	}
	return nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentRepo) CountByCategory(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error) {
	if m.countByCategoryFunc != nil {
		return m.countByCategoryFunc(ctx, clinicID, fiscalYear)
	}
	return map[entity.Category]int{}, nil
}

type mockReminderRepo struct {
	queryActiveFunc func(ctx context.Context, clinicID string, regime entity.TaxRegime) ([]*entity.FiscalReminder, error)
	listActiveFunc  func(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error)
	getByIDFunc     func(ctx context.Context, id string) (*entity.FiscalReminder, error)
	createFunc      func(ctx context.Context, r *entity.FiscalReminder) error
	updateFunc      func(ctx context.Context, r *entity.FiscalReminder) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockReminderRepo) QueryActive(ctx context.Context, clinicID string, regime entity.TaxRegime) ([]*entity.FiscalReminder, error) {
	if m.queryActiveFunc != nil {
		return m.queryActiveFunc(ctx, clinicID, regime)
	}
	return []*entity.FiscalReminder{}, nil
}

func (m *mockReminderRepo) ListActive(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx, clinicID)
	}
	return []*entity.FiscalReminder{}, nil
}

func (m *mockReminderRepo) GetByID(ctx context.Context, id string) (*entity.FiscalReminder, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.FiscalReminder{ID: id, IsActive: true}, nil
}

func (m *mockReminderRepo) Create(ctx context.Context, r *entity.FiscalReminder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, r)
	}
	return nil
}

func (m *mockReminderRepo) Update(ctx context.Context, r *entity.FiscalReminder) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, r)
	}
	return nil
}

func (m *mockReminderRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

// mockStorage keeps blobs in memory
type mockStorage struct {
	saveFunc   func(ctx context.Context, path string, content []byte) error
	deleteFunc func(ctx context.Context, path string) error

	mu    sync.Mutex
	files map[string][]byte
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: make(map[string][]byte)}
}

func (m *mockStorage) Save(ctx context.Context, path string, content []byte) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, path, content); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	return nil
}

func (m *mockStorage) Read(ctx context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return content, nil
}

func (m *mockStorage) Exists(ctx context.Context, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *mockStorage) GetFullPath(relativePath string) string {
	return "/data/" + relativePath
}

func (m *mockStorage) URL(relativePath string) string {
	return "/files/" + relativePath
}

// mockLogger records warnings so tests can assert on skipped sources
type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Warn(msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}

func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockMetrics struct {
	mu      sync.Mutex
	sources map[string]string
	counts  entity.AlertCounts
	evals   int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{sources: make(map[string]string)}
}

func (m *mockMetrics) ObserveChecklistEvaluation(regime entity.TaxRegime, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evals++
}

func (m *mockMetrics) ObserveAlertSource(source, status string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sources[source] = status
}

func (m *mockMetrics) RecordAlerts(counts entity.AlertCounts) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = counts
}

func fixedClock(t time.Time) port.Clock {
	return port.ClockFunc(func() time.Time { return t })
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func doc(id string, category entity.Category, sub string, month int) *entity.FiscalDocument {
	d := &entity.FiscalDocument{
		ID:         id,
		ClinicID:   "clinic-1",
		Name:       id,
		Category:   category,
		TaxRegime:  entity.RegimeSimples,
		FiscalYear: 2024,
	}
	if sub != "" {
		d.Subcategory = strPtr(sub)
	}
	if month > 0 {
		d.ReferenceMonth = intPtr(month)
	}
	return d
}
