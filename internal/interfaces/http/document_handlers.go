package http

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/garyjia/fiscal-compliance/internal/application/service"
	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
	"github.com/garyjia/fiscal-compliance/pkg/utils"
)

// multipart overhead allowed on top of the file itself
const uploadFormSlack = 1 << 20

// ListDocuments handles GET /api/v1/clinics/:clinicID/documents
func (h *Handlers) ListDocuments(c *gin.Context) {
	clinicID := c.Param("clinicID")
	ctx := c.Request.Context()

	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid year")
			return
		}
		year = &y
	}

	category := entity.Category(c.Query("category"))
	rawMonth := c.Query("month")
	if (category != "" || rawMonth != "") && year == nil {
		h.badRequest(c, "year is required when filtering by category or month")
		return
	}

	var (
		docs []*entity.FiscalDocument
		err  error
	)
	switch {
	case category != "":
		docs, err = h.documentService.ListByCategory(ctx, clinicID, category, *year)
	case rawMonth != "":
		month, convErr := strconv.Atoi(rawMonth)
		if convErr != nil {
			h.badRequest(c, "invalid month")
			return
		}
		docs, err = h.documentService.ListByMonth(ctx, clinicID, *year, month)
	default:
		docs, err = h.documentService.List(ctx, clinicID, year)
	}
	if err != nil {
		h.respondError(c, err, "failed to list documents")
		return
	}

	h.respondOK(c, toDocumentResponses(docs))
}

// UploadDocument handles POST /api/v1/clinics/:clinicID/documents (multipart/form-data)
func (h *Handlers) UploadDocument(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxUploadSize+uploadFormSlack)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, "file is required")
		return
	}
	if fileHeader.Size > service.MaxUploadSize {
		h.badRequest(c, fmt.Sprintf("file exceeds %d MB", service.MaxUploadSize>>20))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.badRequest(c, "unreadable file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		h.badRequest(c, "unreadable file")
		return
	}

	mimeType := detectMimeType(fileHeader.Header.Get("Content-Type"), content)

	req := service.UploadRequest{
		ClinicID:    c.Param("clinicID"),
		UploadedBy:  utils.SanitizeString(c.PostForm("uploaded_by")),
		FileName:    utils.SanitizeFileName(fileHeader.Filename),
		MimeType:    mimeType,
		Content:     content,
		Name:        utils.SanitizeString(c.PostForm("name")),
		Description: utils.SanitizeString(c.PostForm("description")),
		TaxRegime:   entity.TaxRegime(c.PostForm("tax_regime")),
		Category:    entity.Category(c.PostForm("category")),
		Notes:       utils.SanitizeString(c.PostForm("notes")),
	}
	if req.Name == "" {
		req.Name = utils.BaseName(req.FileName)
	}
	if sub := c.PostForm("subcategory"); sub != "" {
		req.Subcategory = &sub
	}

	if req.FiscalYear, err = strconv.Atoi(c.PostForm("fiscal_year")); err != nil {
		h.badRequest(c, "invalid fiscal_year")
		return
	}
	if raw := c.PostForm("reference_month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "invalid reference_month")
			return
		}
		req.ReferenceMonth = &month
	}
	if raw := c.PostForm("expiration_date"); raw != "" {
		exp, err := parseDateParam(raw)
		if err != nil {
			h.badRequest(c, "expiration_date: "+err.Error())
			return
		}
		req.ExpirationDate = &exp
	}

	doc, err := h.documentService.Upload(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "failed to upload document")
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    toDocumentResponse(doc),
	})
}

// GetDocument handles GET /api/v1/clinics/:clinicID/documents/:id
func (h *Handlers) GetDocument(c *gin.Context) {
	doc, ok := h.clinicDocument(c)
	if !ok {
		return
	}
	h.respondOK(c, toDocumentResponse(doc))
}

// UpdateDocument handles PATCH /api/v1/clinics/:clinicID/documents/:id
func (h *Handlers) UpdateDocument(c *gin.Context) {
	var req DocumentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	update, err := toDocumentUpdate(req)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	doc, ok := h.clinicDocument(c)
	if !ok {
		return
	}

	updated, err := h.documentService.UpdateMetadata(c.Request.Context(), doc.ID, update)
	if err != nil {
		h.respondError(c, err, "failed to update document")
		return
	}

	h.respondOK(c, toDocumentResponse(updated))
}

// DeleteDocument handles DELETE /api/v1/clinics/:clinicID/documents/:id
func (h *Handlers) DeleteDocument(c *gin.Context) {
	doc, ok := h.clinicDocument(c)
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), doc.ID); err != nil {
		h.respondError(c, err, "failed to delete document")
		return
	}

	h.respondOK(c, gin.H{"id": doc.ID})
}

// GetDocumentCounts handles GET /api/v1/clinics/:clinicID/documents/counts
func (h *Handlers) GetDocumentCounts(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	counts, err := h.documentService.DocumentCounts(c.Request.Context(), c.Param("clinicID"), year)
	if err != nil {
		h.respondError(c, err, "failed to count documents")
		return
	}

	h.respondOK(c, counts)
}

// clinicDocument loads :id and hides documents of other clinics behind a 404
func (h *Handlers) clinicDocument(c *gin.Context) (*entity.FiscalDocument, bool) {
	doc, err := h.documentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to load document")
		return nil, false
	}
	if doc.ClinicID != c.Param("clinicID") {
		h.respondError(c, service.ErrNotFound, "")
		return nil, false
	}
	return doc, true
}

// detectMimeType trusts the declared part type and sniffs the content otherwise
func detectMimeType(declared string, content []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(mimetype.Detect(content).String())
	return mediaType
}
