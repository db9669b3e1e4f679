package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/services"
)

// maxBackupSize caps import payloads at 50MB
const maxBackupSize = 50 * 1024 * 1024

// BackupHandler handles backup export/import HTTP requests
type BackupHandler struct {
	backupService services.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService services.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// Export writes the full data set as a downloadable JSON document
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.backupService.ExportAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to export backup")
		return
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, doc)
}

// Import destructively replaces all collections from an uploaded backup
// document. A parse failure leaves the data untouched.
func (h *BackupHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBackupSize))
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.backupService.ImportRaw(c.Request.Context(), data); err != nil {
		respondError(c, err, "Failed to import backup")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Backup imported successfully"})
}
