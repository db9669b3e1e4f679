package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/repositories"
	"gst-invoice-api/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps domain errors onto HTTP status codes. Validation
// failures and malformed input are the caller's fault; everything
// unrecognized is a server error.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case repositories.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case repositories.IsDuplicate(err):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "Duplicate entry",
			Message: err.Error(),
		})
	case services.IsValidationError(err), repositories.IsValidation(err), errors.Is(err, services.ErrMalformedBackup):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   action,
			Message: err.Error(),
		})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}
