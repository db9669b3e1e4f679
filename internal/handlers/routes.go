package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"gst-invoice-api/internal/middleware"
	"gst-invoice-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Services      *services.ServiceContainer
	AuthService   *middleware.AuthService
	AuthUsername  string
	AuthPassword  string
	TokenDuration time.Duration
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	productHandler := NewProductHandler(config.Services.ProductService)
	customerHandler := NewCustomerHandler(config.Services.CustomerService)
	invoiceHandler := NewInvoiceHandler(config.Services.InvoiceService)
	sellerHandler := NewSellerHandler(config.Services.SellerService)
	fiscalYearHandler := NewFiscalYearHandler(config.Services.FiscalYearService)
	backupHandler := NewBackupHandler(config.Services.BackupService)
	exportHandler := NewExportHandler(config.Services.ExportService)
	authHandler := NewAuthHandler(config.AuthService, config.AuthUsername, config.AuthPassword, config.TokenDuration)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "gst-invoice-api",
			"version": "1.0.0",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Authentication routes (no auth required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)

			authProtected := auth.Group("")
			authProtected.Use(middleware.Authentication(config.AuthService))
			{
				authProtected.GET("/me", authHandler.GetCurrentUser)
			}
		}

		// Protected API routes
		api := v1.Group("")
		api.Use(middleware.Authentication(config.AuthService))
		{
			products := api.Group("/products")
			{
				products.POST("", productHandler.CreateProduct)
				products.GET("", productHandler.ListProducts)
				products.GET("/search", productHandler.SearchProducts)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			customers := api.Group("/customers")
			{
				customers.POST("", customerHandler.CreateCustomer)
				customers.GET("", customerHandler.ListCustomers)
				customers.GET("/search", customerHandler.SearchCustomers)
				customers.GET("/:id", customerHandler.GetCustomer)
				customers.PUT("/:id", customerHandler.UpdateCustomer)
				customers.DELETE("/:id", customerHandler.DeleteCustomer)
			}

			invoices := api.Group("/invoices")
			{
				invoices.POST("", invoiceHandler.CreateInvoice)
				invoices.GET("", invoiceHandler.ListInvoices)
				invoices.GET("/:id", invoiceHandler.GetInvoice)
				invoices.GET("/:id/document", invoiceHandler.GetInvoiceDocument)
				invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
				invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
			}

			seller := api.Group("/seller")
			{
				seller.GET("", sellerHandler.GetSeller)
				seller.PUT("", sellerHandler.SetSeller)
				seller.POST("/from-customer", sellerHandler.SetSellerFromCustomer)
			}

			fiscalYear := api.Group("/fiscal-year")
			{
				fiscalYear.GET("", fiscalYearHandler.GetCurrentYear)
				fiscalYear.POST("/rollover", fiscalYearHandler.Rollover)
				fiscalYear.POST("/restart", fiscalYearHandler.Restart)
				fiscalYear.GET("/archives", fiscalYearHandler.ListArchives)
				fiscalYear.GET("/archives/:year", fiscalYearHandler.GetArchive)
			}

			backup := api.Group("/backup")
			{
				backup.GET("/export", backupHandler.Export)
				backup.POST("/import", backupHandler.Import)
			}

			export := api.Group("/export")
			{
				export.GET("/products.csv", exportHandler.ExportProducts)
				export.GET("/customers.csv", exportHandler.ExportCustomers)
				export.GET("/invoices.csv", exportHandler.ExportInvoices)
			}
		}
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine) {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	// Request size limit sized for backup imports
	router.Use(middleware.RequestSizeLimit(50 * 1024 * 1024))

	router.Use(middleware.ContentTypeValidation("application/json"))
	router.Use(middleware.RequestValidation())

	// Rate limiting (100 requests per second, burst of 200)
	router.Use(middleware.RateLimiter(100, 200))

	router.Use(middleware.RequestLogger())
	router.Use(middleware.AuditLogger())
	router.Use(middleware.ErrorHandler())
}
