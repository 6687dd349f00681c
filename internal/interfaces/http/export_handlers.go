package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/fiscal-compliance/internal/domain/entity"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipContentType  = "application/zip"
)

// GetExportEntries handles GET /api/v1/clinics/:clinicID/export/entries.
// Without ?regime= every document of the year is listed.
func (h *Handlers) GetExportEntries(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	var regime *entity.TaxRegime
	if raw := c.Query("regime"); raw != "" {
		r := entity.TaxRegime(raw)
		regime = &r
	}

	entries, err := h.exportService.ExportEntries(c.Request.Context(), c.Param("clinicID"), year, regime)
	if err != nil {
		h.respondError(c, err, "failed to list export entries")
		return
	}

	if entries == nil {
		entries = []entity.ExportEntry{}
	}
	h.respondOK(c, entries)
}

// GetSummary handles GET /api/v1/clinics/:clinicID/export/summary
func (h *Handlers) GetSummary(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	text, err := h.exportService.Summary(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to build summary")
		return
	}

	h.respondOK(c, SummaryResponse{Summary: text})
}

// DownloadWorkbook handles GET /api/v1/clinics/:clinicID/export/workbook
func (h *Handlers) DownloadWorkbook(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	data, err := h.exportService.Workbook(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to build workbook")
		return
	}

	attachment(c, fmt.Sprintf("checklist-fiscal-%d-%s.xlsx", sc.year, sc.regime), xlsxContentType, data)
}

// DownloadPackage handles GET /api/v1/clinics/:clinicID/export/package
func (h *Handlers) DownloadPackage(c *gin.Context) {
	sc, ok := h.bindScope(c)
	if !ok {
		return
	}

	data, err := h.exportService.Package(c.Request.Context(), sc.clinicID, sc.regime, sc.year)
	if err != nil {
		h.respondError(c, err, "failed to build package")
		return
	}

	attachment(c, fmt.Sprintf("documentos-fiscais-%d-%s.zip", sc.year, sc.regime), zipContentType, data)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
