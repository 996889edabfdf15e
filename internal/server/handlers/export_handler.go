package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/velocitymart/internal/domain/models"
	"github.com/mamadbah2/velocitymart/internal/export"
)

// ExportHandler serves the slotting plan downloads.
type ExportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewExportHandler constructs the download handler.
func NewExportHandler(svc ReportService, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// CSV streams the plan exactly as loaded.
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, export.CSVFileName, export.CSVContentType, export.CSV)
}

// XLSX streams the plan as a workbook.
func (h *ExportHandler) XLSX(c *gin.Context) {
	h.serve(c, export.XLSXFileName, export.XLSXContentType, export.XLSX)
}

func (h *ExportHandler) serve(c *gin.Context, filename, contentType string, encode func(models.Table) ([]byte, error)) {
	plan, err := h.svc.SlottingPlan(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading slotting plan", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load datasets"})
		return
	}

	body, err := encode(plan)
	if err != nil {
		h.logger.Error("failed encoding slotting plan", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to export slotting plan"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
