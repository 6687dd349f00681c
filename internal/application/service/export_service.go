package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/checklist"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// Workbook sheet names
const (
	SheetChecklist = "Checklist"
	SheetAlerts    = "Alerts"
)

// ExportService produces shareable exports of a clinic's fiscal documentation
type ExportService interface {
	ExportEntries(ctx context.Context, clinicID string, fiscalYear int, regime *entity.TaxRegime) ([]entity.ExportEntry, error)
	SummaryText(report *entity.ChecklistReport, regime entity.TaxRegime, fiscalYear int) string
	Summary(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (string, error)
	Workbook(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]byte, error)
	Package(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]byte, error)
}

type exportServiceImpl struct {
	docRepo   port.DocumentRepository
	storage   port.FileStorage
	checklist ChecklistService
	alerts    AlertService
	logger    Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	docRepo port.DocumentRepository,
	storage port.FileStorage,
	checklistSvc ChecklistService,
	alertSvc AlertService,
	logger Logger,
) ExportService {
	return &exportServiceImpl{
		docRepo:   docRepo,
		storage:   storage,
		checklist: checklistSvc,
		alerts:    alertSvc,
		logger:    logger,
	}
}

// ExportEntries lists name, url and category of every document of the year.
// With a regime only documents filed under it (or under "all") are listed.
func (s *exportServiceImpl) ExportEntries(ctx context.Context, clinicID string, fiscalYear int, regime *entity.TaxRegime) ([]entity.ExportEntry, error) {
	docs, err := s.exportDocuments(ctx, clinicID, fiscalYear, regime)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.ExportEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, entity.ExportEntry{
			Name:     doc.Name,
			URL:      doc.FileURL,
			Category: doc.Category,
		})
	}
	return entries, nil
}

func (s *exportServiceImpl) exportDocuments(ctx context.Context, clinicID string, fiscalYear int, regime *entity.TaxRegime) ([]*entity.FiscalDocument, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if err := validateYear(fiscalYear); err != nil {
		return nil, err
	}

	var (
		docs []*entity.FiscalDocument
		err  error
	)
	if regime != nil {
		if !regime.Valid() {
			return nil, invalidf("unknown tax regime %q", *regime)
		}
		docs, err = s.docRepo.QueryByClinicYearRegime(ctx, clinicID, fiscalYear, *regime)
	} else {
		docs, err = s.docRepo.ListByClinic(ctx, clinicID, &fiscalYear)
	}
	if err != nil {
		return nil, storeErr("failed to load documents for export", err)
	}
	return docs, nil
}

// SummaryText renders the checklist report as plain text for sharing
func (s *exportServiceImpl) SummaryText(report *entity.ChecklistReport, regime entity.TaxRegime, fiscalYear int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Documentação fiscal %d - %s\n", fiscalYear, regime.Label())
	fmt.Fprintf(&b, "Progresso: %d de %d itens (%d%%)\n", report.Completed, report.Total, report.Percentage)

	if len(report.Sections) > 0 {
		b.WriteString("\n")
	}
	for _, section := range report.Sections {
		mark := " "
		if section.TotalCount > 0 && section.CompletedCount == section.TotalCount {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s: %d/%d\n", mark, section.Label, section.CompletedCount, section.TotalCount)
	}

	pending := checklist.Pending(report)
	if len(pending) > 0 {
		b.WriteString("\nPendentes obrigatórios:\n")
		for _, item := range pending {
			fmt.Fprintf(&b, "- %s (%s)\n", item.Label, item.Category.Label())
		}
	}
	return b.String()
}

// Summary evaluates the checklist and renders it with SummaryText
func (s *exportServiceImpl) Summary(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) (string, error) {
	report, err := s.checklist.EvaluateChecklist(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return "", err
	}
	return s.SummaryText(report, regime, fiscalYear), nil
}

// Workbook renders the checklist and the current alerts as an XLSX file
func (s *exportServiceImpl) Workbook(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]byte, error) {
	report, err := s.checklist.EvaluateChecklist(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.ComputeAlerts(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return nil, err
	}
	return s.buildWorkbook(report, alerts.Alerts)
}

func (s *exportServiceImpl) buildWorkbook(report *entity.ChecklistReport, alerts []entity.FiscalAlert) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetChecklist); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAlerts); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Seção", "Item", "Frequência", "Obrigatório", "Documentos", "Completo"},
	}
	for _, section := range report.Sections {
		for _, item := range section.Items {
			rows = append(rows, []interface{}{
				section.Label,
				item.Label,
				string(item.Frequency),
				yesNo(item.Required),
				len(item.Documents),
				yesNo(item.IsComplete),
			})
		}
	}
	rows = append(rows, []interface{}{"Total", fmt.Sprintf("%d/%d", report.Completed, report.Total), "", "", "", fmt.Sprintf("%d%%", report.Percentage)})
	if err := writeRows(f, SheetChecklist, rows); err != nil {
		return nil, err
	}

	rows = [][]interface{}{
		{"Urgência", "Tipo", "Título", "Descrição", "Categoria", "Vencimento", "Dias"},
	}
	for _, a := range alerts {
		rows = append(rows, []interface{}{
			string(a.Urgency),
			string(a.Type),
			a.Title,
			a.Description,
			a.CategoryLabel,
			a.DueDate,
			a.DaysUntilDue,
		})
	}
	if err := writeRows(f, SheetAlerts, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// Package bundles the workbook, the summary text and every stored file of the
// regime's documents into a ZIP archive. Files missing from storage are skipped.
func (s *exportServiceImpl) Package(ctx context.Context, clinicID string, regime entity.TaxRegime, fiscalYear int) ([]byte, error) {
	report, err := s.checklist.EvaluateChecklist(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alerts.ComputeAlerts(ctx, clinicID, regime, fiscalYear)
	if err != nil {
		return nil, err
	}
	workbook, err := s.buildWorkbook(report, alerts.Alerts)
	if err != nil {
		return nil, err
	}
	docs, err := s.exportDocuments(ctx, clinicID, fiscalYear, &regime)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addZipFile(zw, "checklist.xlsx", workbook); err != nil {
		return nil, err
	}
	if err := addZipFile(zw, "resumo.txt", []byte(s.SummaryText(report, regime, fiscalYear))); err != nil {
		return nil, err
	}

	used := make(map[string]int)
	for _, doc := range docs {
		content, err := s.storage.Read(ctx, doc.FilePath)
		if err != nil {
			s.logger.Warn("Skipping document missing from storage", "id", doc.ID, "path", doc.FilePath, "error", err)
			continue
		}
		if err := addZipFile(zw, archiveName(doc, used), content); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	s.logger.Info("Export package built", "clinic_id", clinicID, "fiscal_year", fiscalYear, "documents", len(docs), "bytes", buf.Len())
	return buf.Bytes(), nil
}

func addZipFile(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}

// archiveName places a document under its category folder, keeping the stored
// extension and disambiguating repeated names
func archiveName(doc *entity.FiscalDocument, used map[string]int) string {
	base := strings.NewReplacer("/", "_", "\\", "_").Replace(doc.Name)
	if base == "" {
		base = doc.ID
	}
	ext := path.Ext(doc.FilePath)
	if ext != "" && !strings.EqualFold(path.Ext(base), ext) {
		base += ext
	}

	name := path.Join(string(doc.Category), base)
	if n := used[name]; n > 0 {
		stem := strings.TrimSuffix(base, path.Ext(base))
		name = path.Join(string(doc.Category), fmt.Sprintf("%s (%d)%s", stem, n, path.Ext(base)))
	}
	used[path.Join(string(doc.Category), base)]++
	return name
}
