package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gst-invoice-api/internal/models"
)

type invoiceFixture struct {
	manager *fakeRepoManager
	service InvoiceService
	product *models.Product
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	manager := newFakeRepoManager()

	product := models.NewProduct("Steel Pipe", "7306", 250.00, models.UnitPiece)
	product.CGST = 9
	product.SGST = 9
	manager.store.products = []*models.Product{product}

	seller := &models.Customer{
		ID:        "seller-1",
		Name:      "Acme Industries",
		State:     "Maharashtra",
		StateCode: "27",
		GSTIN:     "27AAAPL1234C1Z5",
	}
	data, err := json.Marshal(seller)
	if err != nil {
		t.Fatalf("failed to marshal seller: %v", err)
	}
	manager.store.settings[SettingKeyCurrentSeller] = data

	sellerService := NewSellerService(manager.Settings(), manager.Customers(), nil)
	service := NewInvoiceService(
		manager.Invoices(),
		manager.Customers(),
		manager.Products(),
		sellerService,
		NewTaxService(nil),
		nil,
	)

	return &invoiceFixture{manager: manager, service: service, product: product}
}

func (f *invoiceFixture) request() *InvoiceRequest {
	return &InvoiceRequest{
		BuyerName:      "Walk-in Buyer",
		BuyerState:     "Maharashtra",
		BuyerStateCode: "27",
		Items: []InvoiceItemRequest{
			{ProductID: f.product.ID, Quantity: 2},
		},
	}
}

func TestCreateInvoiceAssemblesDocument(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.service.CreateInvoice(context.Background(), f.request())
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	if invoice.InvoiceNumber != "INV-0001" {
		t.Errorf("InvoiceNumber = %q, want %q", invoice.InvoiceNumber, "INV-0001")
	}
	if len(invoice.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(invoice.Items))
	}
	item := invoice.Items[0]
	if item.ProductName != "Steel Pipe" || item.HSNCode != "7306" {
		t.Errorf("item snapshot = %q/%q, want product name and HSN copied", item.ProductName, item.HSNCode)
	}
	if item.Amount != 500.00 {
		t.Errorf("item Amount = %v, want 500.00", item.Amount)
	}

	if invoice.TotalAmount != 500.00 {
		t.Errorf("TotalAmount = %v, want 500.00", invoice.TotalAmount)
	}
	if invoice.CGSTAmount != 45.00 || invoice.SGSTAmount != 45.00 {
		t.Errorf("CGST/SGST = %v/%v, want 45/45", invoice.CGSTAmount, invoice.SGSTAmount)
	}
	if invoice.TotalTaxAmount != 90.00 {
		t.Errorf("TotalTaxAmount = %v, want 90.00", invoice.TotalTaxAmount)
	}
	if invoice.TotalAmountInWords != "Five Hundred Rupees Only" {
		t.Errorf("TotalAmountInWords = %q", invoice.TotalAmountInWords)
	}
	if invoice.TotalTaxAmountInWords != "Ninety Rupees Only" {
		t.Errorf("TotalTaxAmountInWords = %q", invoice.TotalTaxAmountInWords)
	}

	if invoice.Seller == nil || invoice.Seller.ID != "seller-1" {
		t.Error("seller not stamped onto the invoice")
	}
	if invoice.Buyer == nil || invoice.Buyer.Name != "Walk-in Buyer" {
		t.Error("resolved buyer not stamped onto the invoice")
	}

	if len(f.manager.store.invoices) != 1 {
		t.Errorf("stored %d invoices, want 1", len(f.manager.store.invoices))
	}
}

func TestCreateInvoicePriceOverride(t *testing.T) {
	f := newInvoiceFixture(t)

	price := 100.00
	req := f.request()
	req.Items[0].Price = &price

	invoice, err := f.service.CreateInvoice(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	if invoice.Items[0].Price != 100.00 {
		t.Errorf("item Price = %v, want the override 100.00", invoice.Items[0].Price)
	}
	if invoice.Items[0].Amount != 200.00 {
		t.Errorf("item Amount = %v, want 200.00 recomputed from the override", invoice.Items[0].Amount)
	}
}

func TestCreateInvoiceSequence(t *testing.T) {
	f := newInvoiceFixture(t)

	for _, want := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		invoice, err := f.service.CreateInvoice(context.Background(), f.request())
		if err != nil {
			t.Fatalf("CreateInvoice returned error: %v", err)
		}
		if invoice.InvoiceNumber != want {
			t.Errorf("InvoiceNumber = %q, want %q", invoice.InvoiceNumber, want)
		}
	}
}

func TestCreateInvoiceMissingSeller(t *testing.T) {
	f := newInvoiceFixture(t)
	delete(f.manager.store.settings, SettingKeyCurrentSeller)

	_, err := f.service.CreateInvoice(context.Background(), f.request())
	if !errors.Is(err, ErrMissingSeller) {
		t.Errorf("error = %v, want ErrMissingSeller", err)
	}
}

func TestCreateInvoiceUnknownProduct(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.Items[0].ProductID = "missing"

	_, err := f.service.CreateInvoice(context.Background(), req)
	if !errors.Is(err, ErrIncompleteItem) {
		t.Errorf("error = %v, want ErrIncompleteItem", err)
	}
}

func TestCreateInvoiceExistingBuyerMissing(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.UseExistingBuyer = true
	req.BuyerID = "nobody"

	_, err := f.service.CreateInvoice(context.Background(), req)
	if !errors.Is(err, ErrMissingBuyer) {
		t.Errorf("error = %v, want ErrMissingBuyer", err)
	}
}

func TestCreateInvoiceInvalidGSTIN(t *testing.T) {
	f := newInvoiceFixture(t)

	req := f.request()
	req.BuyerGSTIN = "NOT-A-GSTIN"

	_, err := f.service.CreateInvoice(context.Background(), req)
	if !errors.Is(err, ErrInvalidGSTIN) {
		t.Errorf("error = %v, want ErrInvalidGSTIN", err)
	}
}

func TestCreateInvoiceInterStateBuyer(t *testing.T) {
	f := newInvoiceFixture(t)
	f.product.CGST = 0
	f.product.SGST = 0
	f.product.IGST = 18

	req := f.request()
	req.BuyerState = "Delhi"
	req.BuyerStateCode = "07"

	invoice, err := f.service.CreateInvoice(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	if invoice.IGSTAmount != 90.00 {
		t.Errorf("IGSTAmount = %v, want 90.00", invoice.IGSTAmount)
	}
	if invoice.CGSTAmount != 0 || invoice.SGSTAmount != 0 {
		t.Errorf("CGST/SGST = %v/%v, want 0/0", invoice.CGSTAmount, invoice.SGSTAmount)
	}
}

func TestUpdateInvoicePreservesIdentity(t *testing.T) {
	f := newInvoiceFixture(t)

	created, err := f.service.CreateInvoice(context.Background(), f.request())
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	itemID := created.Items[0].ID

	req := f.request()
	req.Items[0].Quantity = 5

	updated, err := f.service.UpdateInvoice(context.Background(), created.ID, req)
	if err != nil {
		t.Fatalf("UpdateInvoice returned error: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed from %q to %q across update", created.ID, updated.ID)
	}
	if updated.InvoiceNumber != created.InvoiceNumber {
		t.Errorf("InvoiceNumber changed from %q to %q across update", created.InvoiceNumber, updated.InvoiceNumber)
	}
	if updated.Items[0].ID != itemID {
		t.Errorf("item ID changed from %q to %q for the same product line", itemID, updated.Items[0].ID)
	}
	if updated.TotalAmount != 1250.00 {
		t.Errorf("TotalAmount = %v, want 1250.00 after quantity change", updated.TotalAmount)
	}
}

func TestGetInvoiceDocumentDeletedBuyer(t *testing.T) {
	f := newInvoiceFixture(t)
	customer := &models.Customer{ID: "c1", Name: "Sharma Traders", StateCode: "27"}
	f.manager.store.customers = []*models.Customer{customer}

	req := f.request()
	req.UseExistingBuyer = true
	req.BuyerID = "c1"
	req.BuyerName = ""

	created, err := f.service.CreateInvoice(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	// The customer goes away; the invoice must still render
	f.manager.store.customers = nil

	doc, err := f.service.GetInvoiceDocument(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetInvoiceDocument returned error: %v", err)
	}

	if doc.Buyer.Name != "N/A" {
		t.Errorf("Buyer.Name = %q, want sentinel %q", doc.Buyer.Name, "N/A")
	}
	if doc.Regime != RegimeInterState {
		t.Errorf("Regime = %q, want inter-state for an unknown buyer state", doc.Regime)
	}
}

func TestGetInvoiceDocumentIsStable(t *testing.T) {
	f := newInvoiceFixture(t)

	created, err := f.service.CreateInvoice(context.Background(), f.request())
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	first, err := f.service.GetInvoiceDocument(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetInvoiceDocument returned error: %v", err)
	}
	second, err := f.service.GetInvoiceDocument(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetInvoiceDocument returned error: %v", err)
	}

	if *first.Buyer != *second.Buyer {
		t.Errorf("buyer resolution differs across calls: %+v vs %+v", first.Buyer, second.Buyer)
	}
	if first.Regime != second.Regime {
		t.Errorf("regime differs across calls: %q vs %q", first.Regime, second.Regime)
	}
}
