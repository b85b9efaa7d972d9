package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/service/export"
)

// ReportExporter defines the export operations the HTTP layer depends on.
type ReportExporter interface {
	CSV() ([]byte, error)
	PushToSheet(ctx context.Context, sheetRange string) error
}

// ReportHandler serves the report download and spreadsheet push routes.
type ReportHandler struct {
	exporter   ReportExporter
	sheetRange string
	sheetsOn   bool
	logger     *zap.Logger
}

// NewReportHandler constructs the report HTTP adapter.
func NewReportHandler(exporter ReportExporter, sheetRange string, sheetsOn bool, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{exporter: exporter, sheetRange: sheetRange, sheetsOn: sheetsOn, logger: logger}
}

// DownloadCSV streams the cost report as a CSV attachment.
func (h *ReportHandler) DownloadCSV(c *gin.Context) {
	data, err := h.exporter.CSV()
	if err != nil {
		h.logger.Error("failed to render csv report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ReportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// PushToSheet appends the cost report to the configured spreadsheet.
func (h *ReportHandler) PushToSheet(c *gin.Context) {
	if !h.sheetsOn {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet export is not configured"})
		return
	}

	if err := h.exporter.PushToSheet(c.Request.Context(), h.sheetRange); err != nil {
		h.logger.Error("failed to push report to sheet", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to push report"})
		return
	}

	c.Status(http.StatusAccepted)
}
