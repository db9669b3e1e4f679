package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"gst-invoice-api/internal/models"
)

func newExportFixture() (*fakeRepoManager, ExportService) {
	manager := newFakeRepoManager()
	service := NewExportService(manager.Products(), manager.Customers(), manager.Invoices())
	return manager, service
}

func TestWriteProductsCSV(t *testing.T) {
	manager, service := newExportFixture()

	product := models.NewProduct("Steel Pipe", "7306", 250.00, models.UnitPiece)
	product.CGST = 9
	product.SGST = 9
	manager.store.products = []*models.Product{product}

	var buf bytes.Buffer
	if err := service.WriteProductsCSV(context.Background(), &buf); err != nil {
		t.Fatalf("WriteProductsCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d rows, want header plus one product", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Name" {
		t.Errorf("header = %v", records[0])
	}
	row := records[1]
	if row[1] != "Steel Pipe" || row[3] != "7306" {
		t.Errorf("row = %v, want product name and HSN", row)
	}
	if row[4] != "9" {
		t.Errorf("CGST column = %q, want %q", row[4], "9")
	}
	if row[7] != "250.00" {
		t.Errorf("Price column = %q, want %q", row[7], "250.00")
	}
}

func TestWriteCustomersCSVOmitsBankDetails(t *testing.T) {
	manager, service := newExportFixture()

	customer := models.NewCustomer("Sharma Traders")
	customer.GSTIN = "27AAAPL1234C1Z5"
	customer.BankDetails = &models.BankDetails{AccountNumber: "12345678901"}
	manager.store.customers = []*models.Customer{customer}

	var buf bytes.Buffer
	if err := service.WriteCustomersCSV(context.Background(), &buf); err != nil {
		t.Fatalf("WriteCustomersCSV returned error: %v", err)
	}

	if bytes.Contains(buf.Bytes(), []byte("12345678901")) {
		t.Error("bank account number leaked into the customer export")
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header plus one customer", len(records))
	}
	if records[1][3] != "27AAAPL1234C1Z5" {
		t.Errorf("GSTIN column = %q", records[1][3])
	}
}

func TestWriteInvoicesCSV(t *testing.T) {
	manager, service := newExportFixture()

	manager.store.invoices = []*models.Invoice{
		{
			InvoiceNumber: "INV-0001",
			Date:          time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			Buyer:         &models.Buyer{Name: "Sharma Traders", GSTIN: "27AAAPL1234C1Z5"},
			Items: []models.InvoiceItem{
				{Amount: 500}, {Amount: 500},
			},
			TotalAmount:    1000,
			CGSTAmount:     90,
			SGSTAmount:     90,
			TotalTaxAmount: 180,
		},
	}

	var buf bytes.Buffer
	if err := service.WriteInvoicesCSV(context.Background(), &buf); err != nil {
		t.Fatalf("WriteInvoicesCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header plus one invoice", len(records))
	}

	row := records[1]
	if row[0] != "INV-0001" {
		t.Errorf("Invoice No = %q", row[0])
	}
	if row[1] != "2024-06-15" {
		t.Errorf("Date = %q, want ISO layout", row[1])
	}
	if row[2] != "Sharma Traders" {
		t.Errorf("Buyer = %q", row[2])
	}
	if row[4] != "2" {
		t.Errorf("Items = %q, want the line count", row[4])
	}
	if row[10] != "1180.00" {
		t.Errorf("Grand Total = %q, want %q", row[10], "1180.00")
	}
}

func TestWriteInvoicesCSVEmpty(t *testing.T) {
	_, service := newExportFixture()

	var buf bytes.Buffer
	if err := service.WriteInvoicesCSV(context.Background(), &buf); err != nil {
		t.Fatalf("WriteInvoicesCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d rows, want the header only", len(records))
	}
}
