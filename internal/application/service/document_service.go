package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/fiscal-compliance/internal/application/port"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

// MaxUploadSize is the largest accepted document file, in bytes
const MaxUploadSize = 20 * 1024 * 1024

// allowedMimeTypes maps accepted MIME types to the stored file extension
var allowedMimeTypes = map[string]string{
	"image/jpeg":               "jpg",
	"image/png":                "png",
	"image/gif":                "gif",
	"image/webp":               "webp",
	"image/heic":               "heic",
	"image/heif":               "heif",
	"application/pdf":          "pdf",
	"application/vnd.ms-excel": "xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
	"application/xml": "xml",
	"text/xml":        "xml",
}

// IsAllowedMimeType reports whether uploads of the MIME type are accepted
func IsAllowedMimeType(mimeType string) bool {
	_, ok := allowedMimeTypes[strings.ToLower(mimeType)]
	return ok
}

// FileTypeFor derives the stored file type from the MIME type
func FileTypeFor(mimeType string) string {
	mimeType = strings.ToLower(mimeType)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return entity.FileTypeImage
	case mimeType == "application/pdf":
		return entity.FileTypePDF
	default:
		return entity.FileTypeDocument
	}
}

// UploadRequest carries a new document file and its metadata
type UploadRequest struct {
	ClinicID       string           `validate:"required"`
	UploadedBy     string           `validate:"omitempty,max=128"`
	FileName       string           `validate:"required,max=255"`
	MimeType       string           `validate:"required"`
	Content        []byte           `validate:"required,min=1"`
	Name           string           `validate:"omitempty,max=255"`
	Description    string           `validate:"omitempty,max=2000"`
	TaxRegime      entity.TaxRegime `validate:"required,regime"`
	Category       entity.Category  `validate:"required,category"`
	Subcategory    *string          `validate:"omitempty,max=64"`
	FiscalYear     int              `validate:"required,gte=2000,lte=2100"`
	ReferenceMonth *int             `validate:"omitempty,gte=1,lte=12"`
	ExpirationDate *time.Time
	Notes          string `validate:"omitempty,max=2000"`
}

// DocumentService manages uploaded fiscal documents
type DocumentService interface {
	Upload(ctx context.Context, req UploadRequest) (*entity.FiscalDocument, error)
	Get(ctx context.Context, id string) (*entity.FiscalDocument, error)
	List(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error)
	ListByCategory(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error)
	ListByMonth(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error)
	UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) (*entity.FiscalDocument, error)
	Delete(ctx context.Context, id string) error
	DocumentCounts(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error)
}

type documentServiceImpl struct {
	docRepo   port.DocumentRepository
	storage   port.FileStorage
	txManager port.TransactionManager
	clock     port.Clock
	logger    Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	docRepo port.DocumentRepository,
	storage port.FileStorage,
	txManager port.TransactionManager,
	clock port.Clock,
	logger Logger,
) DocumentService {
	if clock == nil {
		clock = port.SystemClock
	}
	return &documentServiceImpl{
		docRepo:   docRepo,
		storage:   storage,
		txManager: txManager,
		clock:     clock,
		logger:    logger,
	}
}

// Upload stores the file and records the document. The blob is removed again when
// the record cannot be written.
func (s *documentServiceImpl) Upload(ctx context.Context, req UploadRequest) (*entity.FiscalDocument, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ext, ok := allowedMimeTypes[strings.ToLower(req.MimeType)]
	if !ok {
		return nil, invalidf("file type %q not allowed", req.MimeType)
	}
	if len(req.Content) > MaxUploadSize {
		return nil, invalidf("file exceeds %d bytes", MaxUploadSize)
	}

	now := s.clock.Now()
	blobPath := path.Join(
		req.ClinicID,
		fmt.Sprint(req.FiscalYear),
		string(req.Category),
		fmt.Sprintf("%d-%s.%s", now.UnixMilli(), uuid.NewString()[:8], ext),
	)

	name := req.Name
	if name == "" {
		name = req.FileName
	}
	doc := &entity.FiscalDocument{
		ID:             uuid.NewString(),
		ClinicID:       req.ClinicID,
		Name:           name,
		Description:    req.Description,
		FileURL:        s.storage.URL(blobPath),
		FilePath:       blobPath,
		FileType:       FileTypeFor(req.MimeType),
		MimeType:       req.MimeType,
		FileSize:       int64(len(req.Content)),
		TaxRegime:      req.TaxRegime,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		FiscalYear:     req.FiscalYear,
		ReferenceMonth: req.ReferenceMonth,
		ExpirationDate: dateOnly(req.ExpirationDate),
		UploadedBy:     req.UploadedBy,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.Save(ctx, blobPath, req.Content); err != nil {
		s.logger.Error("Failed to store document file", "clinic_id", req.ClinicID, "path", blobPath, "error", err)
		return nil, fmt.Errorf("failed to store file: %w: %w", ErrStoreUnavailable, err)
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.docRepo.Create(txCtx, doc)
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, blobPath); delErr != nil {
			s.logger.Error("Failed to remove orphaned file", "path", blobPath, "error", delErr)
		}
		s.logger.Error("Failed to create document record", "clinic_id", req.ClinicID, "error", err)
		return nil, storeErr("failed to create document", err)
	}

	s.logger.Info("Document uploaded",
		"id", doc.ID, "clinic_id", doc.ClinicID, "category", doc.Category, "size", doc.FileSize)
	return doc, nil
}

// Get returns a document by id
func (s *documentServiceImpl) Get(ctx context.Context, id string) (*entity.FiscalDocument, error) {
	if id == "" {
		return nil, invalidf("document id is required")
	}
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("failed to get document", err)
	}
	return doc, nil
}

// List returns the clinic's documents, optionally for one fiscal year
func (s *documentServiceImpl) List(ctx context.Context, clinicID string, fiscalYear *int) ([]*entity.FiscalDocument, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if fiscalYear != nil {
		if err := validateYear(*fiscalYear); err != nil {
			return nil, err
		}
	}
	docs, err := s.docRepo.ListByClinic(ctx, clinicID, fiscalYear)
	if err != nil {
		return nil, storeErr("failed to list documents", err)
	}
	return docs, nil
}

func (s *documentServiceImpl) ListByCategory(ctx context.Context, clinicID string, category entity.Category, fiscalYear int) ([]*entity.FiscalDocument, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if !category.Valid() {
		return nil, invalidf("unknown category %q", category)
	}
	if err := validateYear(fiscalYear); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListByCategory(ctx, clinicID, category, fiscalYear)
	if err != nil {
		return nil, storeErr("failed to list documents by category", err)
	}
	return docs, nil
}

func (s *documentServiceImpl) ListByMonth(ctx context.Context, clinicID string, fiscalYear, month int) ([]*entity.FiscalDocument, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if err := validateYear(fiscalYear); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, invalidf("month %d out of range", month)
	}
	docs, err := s.docRepo.ListByMonth(ctx, clinicID, fiscalYear, month)
	if err != nil {
		return nil, storeErr("failed to list documents by month", err)
	}
	return docs, nil
}

// UpdateMetadata changes the mutable fields of a document and returns the updated record
func (s *documentServiceImpl) UpdateMetadata(ctx context.Context, id string, update entity.DocumentUpdate) (*entity.FiscalDocument, error) {
	if id == "" {
		return nil, invalidf("document id is required")
	}
	if update.IsEmpty() {
		return nil, invalidf("nothing to update")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, invalidf("name cannot be empty")
	}
	if update.ReferenceMonth != nil && (*update.ReferenceMonth < 1 || *update.ReferenceMonth > 12) {
		return nil, invalidf("reference month %d out of range", *update.ReferenceMonth)
	}
	update.ExpirationDate = dateOnly(update.ExpirationDate)

	var updated *entity.FiscalDocument
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.UpdateMetadata(txCtx, id, update); err != nil {
			return err
		}
		doc, err := s.docRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, storeErr("failed to update document", err)
	}

	s.logger.Info("Document metadata updated", "id", id)
	return updated, nil
}

// Delete removes the stored file and then the record
func (s *documentServiceImpl) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if doc.FilePath != "" && s.storage.Exists(ctx, doc.FilePath) {
		if err := s.storage.Delete(ctx, doc.FilePath); err != nil {
			s.logger.Error("Failed to delete document file", "id", id, "path", doc.FilePath, "error", err)
			return fmt.Errorf("failed to delete file: %w: %w", ErrStoreUnavailable, err)
		}
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return storeErr("failed to delete document", err)
	}

	s.logger.Info("Document deleted", "id", id, "clinic_id", doc.ClinicID)
	return nil
}

// DocumentCounts returns the number of documents per category for the fiscal year
func (s *documentServiceImpl) DocumentCounts(ctx context.Context, clinicID string, fiscalYear int) (map[entity.Category]int, error) {
	if clinicID == "" {
		return nil, invalidf("clinic id is required")
	}
	if err := validateYear(fiscalYear); err != nil {
		return nil, err
	}
	counts, err := s.docRepo.CountByCategory(ctx, clinicID, fiscalYear)
	if err != nil {
		return nil, storeErr("failed to count documents", err)
	}
	return counts, nil
}

// dateOnly truncates t to UTC midnight of its calendar date
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
