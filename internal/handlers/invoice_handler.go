package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/services"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService services.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// CreateInvoice assembles and stores a new invoice
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req services.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// ListInvoices returns the live invoice set
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice returns a single invoice by ID
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceDocument returns the printable invoice view with the buyer
// resolved and the active tax regime
func (h *InvoiceHandler) GetInvoiceDocument(c *gin.Context) {
	id := c.Param("id")

	document, err := h.invoiceService.GetInvoiceDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to build invoice document")
		return
	}

	c.JSON(http.StatusOK, document)
}

// UpdateInvoice re-assembles an existing invoice from fresh form values
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id := c.Param("id")

	var req services.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice deletes an invoice by ID
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
