package http

import (
	"context"
	"sync"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

type mockChecklistService struct {
	evaluateFunc func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (*entity.ChecklistReport, error)
	pendingFunc  func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]entity.ChecklistItemState, error)
}

func (m *mockChecklistService) EvaluateChecklist(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (*entity.ChecklistReport, error) {
	if m.evaluateFunc != nil {
		return m.evaluateFunc(ctx, clinicID, regime, year)
	}
	return &entity.ChecklistReport{}, nil
}

func (m *mockChecklistService) PendingDocuments(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]entity.ChecklistItemState, error) {
	if m.pendingFunc != nil {
		return m.pendingFunc(ctx, clinicID, regime, year)
	}
	return nil, nil
}

type mockAlertService struct {
	computeFunc func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (*service.AlertReport, error)
	countsFunc  func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (entity.AlertCounts, error)
}

func (m *mockAlertService) ComputeAlerts(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (*service.AlertReport, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, clinicID, regime, year)
	}
	return &service.AlertReport{}, nil
}

func (m *mockAlertService) AlertCounts(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (entity.AlertCounts, error) {
	if m.countsFunc != nil {
		return m.countsFunc(ctx, clinicID, regime, year)
	}
	return entity.AlertCounts{}, nil
}

type mockDocumentService struct {
	uploadFunc         func(ctx context.Context, req service.UploadRequest) (*entity.FiscalDocument, error)
	getFunc            func(ctx context.Context, id string) (*entity.FiscalDocument, error)
	listFunc           func(ctx context.Context, clinicID string, year *int) ([]*entity.FiscalDocument, error)
	listByCategoryFunc func(ctx context.Context, clinicID string, category entity.Category, year int) ([]*entity.FiscalDocument, error)
	listByMonthFunc    func(ctx context.Context, clinicID string, year, month int) ([]*entity.FiscalDocument, error)
	updateFunc         func(ctx context.Context, id string, update entity.DocumentUpdate) (*entity.FiscalDocument, error)
	deleteFunc         func(ctx context.Context, id string) error
	countsFunc         func(ctx context.Context, clinicID string, year int) (map[entity.Category]int, error)
}

func (m *mockDocumentService) Upload(ctx context.Context, req service.UploadRequest) (*entity.FiscalDocument, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, req)
	}
	return &entity.FiscalDocument{ID: "doc-new", ClinicID: req.ClinicID}, nil
}

func (m *mockDocumentService) Get(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockDocumentService) List(ctx context.Context, clinicID string, year *int) ([]*entity.FiscalDocument, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, clinicID, year)
	}
	return nil, nil
}

func (m *mockDocumentService) ListByCategory(ctx context.Context, clinicID string, category entity.Category, year int) ([]*entity.FiscalDocument, error) {
	if m.listByCategoryFunc != nil {
		return m.listByCategoryFunc(ctx, clinicID, category, year)
	}
	return nil, nil
}

func (m *mockDocumentService) ListByMonth(ctx context.Context, clinicID string, year, month int) ([]*entity.FiscalDocument, error) {
	if m.listByMonthFunc != nil {
		return m.listByMonthFunc(ctx, clinicID, year, month)
	}
	return nil, nil
}

func (m *mockDocumentService) UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) (*entity.FiscalDocument, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, update)
	}
	return &entity.FiscalDocument{ID: id}, nil
}

func (m *mockDocumentService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentService) DocumentCounts(ctx context.Context, clinicID string, year int) (map[entity.Category]int, error) {
	if m.countsFunc != nil {
		return m.countsFunc(ctx, clinicID, year)
	}
	return map[entity.Category]int{}, nil
}

type mockReminderService struct {
	listFunc   func(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error)
	getFunc    func(ctx context.Context, id string) (*entity.FiscalReminder, error)
	createFunc func(ctx context.Context, clinicID string, in service.ReminderInput) (*entity.FiscalReminder, error)
	updateFunc func(ctx context.Context, id string, in service.ReminderInput) (*entity.FiscalReminder, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockReminderService) List(ctx context.Context, clinicID string) ([]*entity.FiscalReminder, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, clinicID)
	}
	return nil, nil
}

func (m *mockReminderService) Get(ctx context.Context, id string) (*entity.FiscalReminder, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockReminderService) Create(ctx context.Context, clinicID string, in service.ReminderInput) (*entity.FiscalReminder, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, clinicID, in)
	}
	return &entity.FiscalReminder{ID: "r-new", ClinicID: clinicID, DueDate: in.DueDate}, nil
}

func (m *mockReminderService) Update(ctx context.Context, id string, in service.ReminderInput) (*entity.FiscalReminder, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, in)
	}
	return &entity.FiscalReminder{ID: id, DueDate: in.DueDate}, nil
}

func (m *mockReminderService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockExportService struct {
	entriesFunc  func(ctx context.Context, clinicID string, year int, regime *entity.TaxRegime) ([]entity.ExportEntry, error)
	summaryFunc  func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (string, error)
	workbookFunc func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]byte, error)
	packageFunc  func(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]byte, error)
}

func (m *mockExportService) ExportEntries(ctx context.Context, clinicID string, year int, regime *entity.TaxRegime) ([]entity.ExportEntry, error) {
	if m.entriesFunc != nil {
		return m.entriesFunc(ctx, clinicID, year, regime)
	}
	return nil, nil
}

func (m *mockExportService) SummaryText(report *entity.ChecklistReport, regime entity.TaxRegime, year int) string {
	return ""
}

func (m *mockExportService) Summary(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) (string, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, clinicID, regime, year)
	}
	return "", nil
}

func (m *mockExportService) Workbook(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]byte, error) {
	if m.workbookFunc != nil {
		return m.workbookFunc(ctx, clinicID, regime, year)
	}
	return []byte("xlsx"), nil
}

func (m *mockExportService) Package(ctx context.Context, clinicID string, regime entity.TaxRegime, year int) ([]byte, error) {
	if m.packageFunc != nil {
		return m.packageFunc(ctx, clinicID, regime, year)
	}
	return []byte("zip"), nil
}

type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *mockLogger) Info(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Warn(msg string, keysAndValues ...interface{}) {}
func (l *mockLogger) Error(msg string, keysAndValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
