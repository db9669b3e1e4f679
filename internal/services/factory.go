package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ProductService    ProductService
	CustomerService   CustomerService
	SellerService     SellerService
	InvoiceService    InvoiceService
	FiscalYearService FiscalYearService
	BackupService     BackupService
	ExportService     ExportService
	TaxService        *TaxService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repoManager repositories.RepositoryManager, logger *logrus.Logger) (*ServiceContainer, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("repository manager cannot be nil")
	}
	if logger == nil {
		logger = logrus.New()
	}

	taxService := NewTaxService(logger)

	sellerService := NewSellerService(repoManager.Settings(), repoManager.Customers(), logger)
	productService := NewProductService(repoManager.Products())
	customerService := NewCustomerService(repoManager.Customers(), sellerService)

	invoiceService := NewInvoiceService(
		repoManager.Invoices(),
		repoManager.Customers(),
		repoManager.Products(),
		sellerService,
		taxService,
		logger,
	)

	fiscalYearService := NewFiscalYearService(repoManager, logger)
	backupService := NewBackupService(repoManager, logger)
	exportService := NewExportService(repoManager.Products(), repoManager.Customers(), repoManager.Invoices())

	return &ServiceContainer{
		ProductService:    productService,
		CustomerService:   customerService,
		SellerService:     sellerService,
		InvoiceService:    invoiceService,
		FiscalYearService: fiscalYearService,
		BackupService:     backupService,
		ExportService:     exportService,
		TaxService:        taxService,
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.ProductService == nil {
		return fmt.Errorf("product service is nil")
	}
	if sc.CustomerService == nil {
		return fmt.Errorf("customer service is nil")
	}
	if sc.SellerService == nil {
		return fmt.Errorf("seller service is nil")
	}
	if sc.InvoiceService == nil {
		return fmt.Errorf("invoice service is nil")
	}
	if sc.FiscalYearService == nil {
		return fmt.Errorf("fiscal year service is nil")
	}
	if sc.BackupService == nil {
		return fmt.Errorf("backup service is nil")
	}
	if sc.ExportService == nil {
		return fmt.Errorf("export service is nil")
	}
	if sc.TaxService == nil {
		return fmt.Errorf("tax service is nil")
	}
	return nil
}
