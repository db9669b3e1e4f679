package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

const csvDateLayout = "2006-01-02"

// exportService implements the ExportService interface. Exports are
// read-only views over the live collections; amounts are formatted with
// two decimals and dates with a plain ISO layout so spreadsheets parse
// them without locale surprises.
type exportService struct {
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
}

// NewExportService creates a new export service instance
func NewExportService(productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository, invoiceRepo repositories.InvoiceRepository) ExportService {
	return &exportService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// WriteProductsCSV writes the product catalog as CSV
func (s *exportService) WriteProductsCSV(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"ID", "Name", "Description", "HSN Code", "CGST %", "SGST %", "IGST %", "Price", "Unit", "Created At"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, product := range products {
		row := []string{
			product.ID,
			product.Name,
			product.GetDescription(),
			product.HSNCode,
			formatRate(product.CGST),
			formatRate(product.SGST),
			formatRate(product.IGST),
			formatAmount(product.Price),
			string(product.Unit),
			product.CreatedAt.Format(csvDateLayout),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCustomersCSV writes the customer list as CSV. Bank details stay
// out of the export; they are invoice-rendering data, not directory data.
func (s *exportService) WriteCustomersCSV(ctx context.Context, w io.Writer) error {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"ID", "Name", "Address", "GSTIN", "State", "State Code", "Contact", "Email", "PAN", "Created At"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, customer := range customers {
		row := []string{
			customer.ID,
			customer.Name,
			customer.Address,
			customer.GSTIN,
			customer.State,
			customer.StateCode,
			customer.Contact,
			customer.Email,
			customer.PAN,
			customer.CreatedAt.Format(csvDateLayout),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteInvoicesCSV writes the live invoice register as CSV, one row per
// invoice with its regime totals
func (s *exportService) WriteInvoicesCSV(ctx context.Context, w io.Writer) error {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list invoices: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"Invoice No", "Date", "Buyer", "Buyer GSTIN", "Items", "Subtotal", "CGST", "SGST", "IGST", "Total Tax", "Grand Total"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, invoice := range invoices {
		row := []string{
			invoice.InvoiceNumber,
			invoice.Date.Format(csvDateLayout),
			invoiceBuyerName(invoice),
			invoiceBuyerGSTIN(invoice),
			strconv.Itoa(len(invoice.Items)),
			formatAmount(invoice.TotalAmount),
			formatAmount(invoice.CGSTAmount),
			formatAmount(invoice.SGSTAmount),
			formatAmount(invoice.IGSTAmount),
			formatAmount(invoice.TotalTaxAmount),
			formatAmount(invoice.TotalAmount + invoice.TotalTaxAmount),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func invoiceBuyerName(invoice *models.Invoice) string {
	if invoice.Buyer != nil {
		return invoice.Buyer.Name
	}
	return invoice.BuyerName
}

func invoiceBuyerGSTIN(invoice *models.Invoice) string {
	if invoice.Buyer != nil {
		return invoice.Buyer.GSTIN
	}
	return invoice.BuyerGSTIN
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
