package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/services"
)

// ExportHandler handles CSV export HTTP requests
type ExportHandler struct {
	exportService services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportProducts streams the product catalog as CSV
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	setCSVHeaders(c, "products")
	if err := h.exportService.WriteProductsCSV(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err, "Failed to export products")
		return
	}
}

// ExportCustomers streams the customer list as CSV
func (h *ExportHandler) ExportCustomers(c *gin.Context) {
	setCSVHeaders(c, "customers")
	if err := h.exportService.WriteCustomersCSV(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err, "Failed to export customers")
		return
	}
}

// ExportInvoices streams the live invoice register as CSV
func (h *ExportHandler) ExportInvoices(c *gin.Context) {
	setCSVHeaders(c, "invoices")
	if err := h.exportService.WriteInvoicesCSV(c.Request.Context(), c.Writer); err != nil {
		respondError(c, err, "Failed to export invoices")
		return
	}
}

func setCSVHeaders(c *gin.Context, name string) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
