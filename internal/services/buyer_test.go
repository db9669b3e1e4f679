package services

import (
	"errors"
	"testing"

	"gst-invoice-api/internal/models"
)

func TestResolveBuyerExistingCustomer(t *testing.T) {
	customer := &models.Customer{
		ID:        "cust-1",
		Name:      "Sharma Traders",
		Address:   "12 MG Road, Pune",
		GSTIN:     "27AAAPL1234C1Z5",
		State:     "Maharashtra",
		StateCode: "27",
		Contact:   "9876543210",
		Email:     "accounts@sharmatraders.in",
		PAN:       "AAAPL1234C",
	}
	lookup := func(id string) (*models.Customer, error) {
		if id == customer.ID {
			return customer, nil
		}
		return nil, nil
	}

	invoice := &models.Invoice{ID: "inv-1", UseExistingBuyer: true, BuyerID: "cust-1"}
	buyer := ResolveBuyer(invoice, lookup, nil)

	if buyer.ID != "cust-1" {
		t.Errorf("Buyer.ID = %q, want %q", buyer.ID, "cust-1")
	}
	if buyer.Name != "Sharma Traders" {
		t.Errorf("Buyer.Name = %q, want %q", buyer.Name, "Sharma Traders")
	}
	if buyer.GSTIN != "27AAAPL1234C1Z5" {
		t.Errorf("Buyer.GSTIN = %q, want %q", buyer.GSTIN, "27AAAPL1234C1Z5")
	}
	if buyer.StateCode != "27" {
		t.Errorf("Buyer.StateCode = %q, want %q", buyer.StateCode, "27")
	}
}

func TestResolveBuyerDeletedCustomer(t *testing.T) {
	lookup := func(id string) (*models.Customer, error) {
		return nil, nil
	}

	invoice := &models.Invoice{ID: "inv-1", UseExistingBuyer: true, BuyerID: "gone"}
	buyer := ResolveBuyer(invoice, lookup, nil)

	if buyer.ID != "" {
		t.Errorf("Buyer.ID = %q, want empty for a sentinel buyer", buyer.ID)
	}
	for field, got := range map[string]string{
		"Name":      buyer.Name,
		"Address":   buyer.Address,
		"GSTIN":     buyer.GSTIN,
		"State":     buyer.State,
		"StateCode": buyer.StateCode,
		"Contact":   buyer.Contact,
		"Email":     buyer.Email,
		"PAN":       buyer.PAN,
	} {
		if got != "N/A" {
			t.Errorf("Buyer.%s = %q, want %q", field, got, "N/A")
		}
	}
}

func TestResolveBuyerLookupError(t *testing.T) {
	lookup := func(id string) (*models.Customer, error) {
		return nil, errors.New("database unavailable")
	}

	invoice := &models.Invoice{ID: "inv-1", UseExistingBuyer: true, BuyerID: "cust-1"}
	buyer := ResolveBuyer(invoice, lookup, nil)

	if buyer == nil {
		t.Fatal("ResolveBuyer returned nil on lookup error")
	}
	if buyer.Name != "N/A" {
		t.Errorf("Buyer.Name = %q, want sentinel %q", buyer.Name, "N/A")
	}
}

func TestResolveBuyerOneTime(t *testing.T) {
	lookup := func(id string) (*models.Customer, error) {
		t.Fatal("lookup must not be called for a one-time buyer")
		return nil, nil
	}

	invoice := &models.Invoice{
		ID:             "inv-1",
		BuyerName:      "Walk-in Buyer",
		BuyerState:     "Karnataka",
		BuyerStateCode: "29",
	}
	buyer := ResolveBuyer(invoice, lookup, nil)

	if buyer.ID != models.BuyerOneTimeID {
		t.Errorf("Buyer.ID = %q, want %q", buyer.ID, models.BuyerOneTimeID)
	}
	if buyer.Name != "Walk-in Buyer" {
		t.Errorf("Buyer.Name = %q, want %q", buyer.Name, "Walk-in Buyer")
	}
	if buyer.StateCode != "29" {
		t.Errorf("Buyer.StateCode = %q, want %q", buyer.StateCode, "29")
	}
	if buyer.GSTIN != "N/A" {
		t.Errorf("Buyer.GSTIN = %q, want %q for an unset field", buyer.GSTIN, "N/A")
	}
	if buyer.Email != "N/A" {
		t.Errorf("Buyer.Email = %q, want %q for an unset field", buyer.Email, "N/A")
	}
}
