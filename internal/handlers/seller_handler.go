package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/services"
)

// SellerHandler handles current-seller HTTP requests
type SellerHandler struct {
	sellerService services.SellerService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService services.SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
	}
}

// SetSellerFromCustomerRequest selects an existing customer record as the
// current seller
type SetSellerFromCustomerRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// GetSeller returns the configured seller profile
func (h *SellerHandler) GetSeller(c *gin.Context) {
	seller, err := h.sellerService.GetSeller(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get seller")
		return
	}

	c.JSON(http.StatusOK, seller)
}

// SetSeller stores the current seller profile
func (h *SellerHandler) SetSeller(c *gin.Context) {
	var seller models.Customer
	if err := c.ShouldBindJSON(&seller); err != nil {
		respondBadRequest(c, err)
		return
	}

	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}

	if err := h.sellerService.SetSeller(c.Request.Context(), &seller); err != nil {
		respondError(c, err, "Failed to set seller")
		return
	}

	c.JSON(http.StatusOK, seller)
}

// SetSellerFromCustomer copies an existing customer into the current
// seller setting
func (h *SellerHandler) SetSellerFromCustomer(c *gin.Context) {
	var req SetSellerFromCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	seller, err := h.sellerService.SetSellerFromCustomer(c.Request.Context(), req.CustomerID)
	if err != nil {
		respondError(c, err, "Failed to set seller from customer")
		return
	}

	c.JSON(http.StatusOK, seller)
}
