package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/services"
)

// FiscalYearHandler handles financial-year HTTP requests
type FiscalYearHandler struct {
	fiscalYearService services.FiscalYearService
}

// NewFiscalYearHandler creates a new fiscal year handler
func NewFiscalYearHandler(fiscalYearService services.FiscalYearService) *FiscalYearHandler {
	return &FiscalYearHandler{
		fiscalYearService: fiscalYearService,
	}
}

// GetCurrentYear returns the live financial year token
func (h *FiscalYearHandler) GetCurrentYear(c *gin.Context) {
	token, err := h.fiscalYearService.CurrentFinancialYear(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get financial year")
		return
	}

	c.JSON(http.StatusOK, gin.H{"financialYear": token})
}

// Rollover archives the live invoice set under the current financial year
// and advances the token by one year pair
func (h *FiscalYearHandler) Rollover(c *gin.Context) {
	result, err := h.fiscalYearService.SaveAndStartNewYear(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to roll over financial year")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Restart archives the live invoice set under today's nominal financial
// year and clears it, keeping the token at today's year
func (h *FiscalYearHandler) Restart(c *gin.Context) {
	result, err := h.fiscalYearService.StartNewFinancialYear(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to restart financial year")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListArchives returns the archived financial year tokens
func (h *FiscalYearHandler) ListArchives(c *gin.Context) {
	tokens, err := h.fiscalYearService.ListArchivedYears(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list archives")
		return
	}

	c.JSON(http.StatusOK, gin.H{"archives": tokens})
}

// GetArchive returns an archived year's invoice snapshot
func (h *FiscalYearHandler) GetArchive(c *gin.Context) {
	token := c.Param("year")

	archive, err := h.fiscalYearService.GetArchivedYear(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "Failed to get archive")
		return
	}

	c.JSON(http.StatusOK, archive)
}
