package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matan1995el-lgtm/aliexpres/internal/service"
	"github.com/matan1995el-lgtm/aliexpres/internal/utils"
)

// maxImportBytes caps import payloads at 10 MiB.
const maxImportBytes = 10 << 20

// ExportHandler handles JSON and CSV export/import HTTP endpoints.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /v1/export
func (h *ExportHandler) Export(c *gin.Context) {
	doc := h.exportService.Export()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tracker-export-%s.json"`, time.Now().UTC().Format("2006-01-02")))
	c.JSON(200, doc)
}

// Import handles POST /v1/import
func (h *ExportHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		utils.Error(c, 400, "INVALID_BODY", "Could not read request body")
		return
	}

	if err := h.exportService.Import(c.Request.Context(), raw); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Import completed", nil)
}

// ExportCSV handles GET /v1/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data := h.exportService.ExportCSV()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="products-%s.csv"`, time.Now().UTC().Format("2006-01-02")))
	c.Data(200, "text/csv; charset=utf-8", data)
}

// ImportCSV handles POST /v1/import/csv
func (h *ExportHandler) ImportCSV(c *gin.Context) {
	added, err := h.exportService.ImportCSV(c.Request.Context(), io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, fmt.Sprintf("Imported %d products", len(added)), added)
}
