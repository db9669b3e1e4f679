package services

import (
	"testing"

	"gst-invoice-api/internal/models"
)

func TestComputeTaxesIntraState(t *testing.T) {
	service := NewTaxService(nil)

	items := []models.InvoiceItem{
		{Amount: 500, CGST: 9, SGST: 9},
		{Amount: 500, CGST: 9, SGST: 9},
	}

	result := service.ComputeTaxes(items, "27", "27")

	if result.Regime != RegimeIntraState {
		t.Errorf("Regime = %q, want %q", result.Regime, RegimeIntraState)
	}
	if result.Subtotal != 1000 {
		t.Errorf("Subtotal = %v, want 1000", result.Subtotal)
	}
	if result.CGSTAmount != 90 || result.SGSTAmount != 90 {
		t.Errorf("CGST/SGST = %v/%v, want 90/90", result.CGSTAmount, result.SGSTAmount)
	}
	if result.IGSTAmount != 0 {
		t.Errorf("IGSTAmount = %v, want 0", result.IGSTAmount)
	}
	if result.TotalTax != 180 {
		t.Errorf("TotalTax = %v, want 180", result.TotalTax)
	}
	if result.CGSTRate != 9 || result.SGSTRate != 9 {
		t.Errorf("Derived rates = %v/%v, want 9/9", result.CGSTRate, result.SGSTRate)
	}
	if result.Inconsistent {
		t.Error("Inconsistent set for a clean intra-state invoice")
	}
}

func TestComputeTaxesInterState(t *testing.T) {
	service := NewTaxService(nil)

	items := []models.InvoiceItem{
		{Amount: 1000, IGST: 18},
	}

	result := service.ComputeTaxes(items, "27", "07")

	if result.Regime != RegimeInterState {
		t.Errorf("Regime = %q, want %q", result.Regime, RegimeInterState)
	}
	if result.IGSTAmount != 180 {
		t.Errorf("IGSTAmount = %v, want 180", result.IGSTAmount)
	}
	if result.CGSTAmount != 0 || result.SGSTAmount != 0 {
		t.Errorf("CGST/SGST = %v/%v, want 0/0", result.CGSTAmount, result.SGSTAmount)
	}
	if result.TotalTax != 180 {
		t.Errorf("TotalTax = %v, want 180", result.TotalTax)
	}
	if result.IGSTRate != 18 {
		t.Errorf("Derived IGST rate = %v, want 18", result.IGSTRate)
	}
}

func TestComputeTaxesEmptyItems(t *testing.T) {
	service := NewTaxService(nil)

	result := service.ComputeTaxes(nil, "27", "27")

	if result.Subtotal != 0 || result.TotalTax != 0 {
		t.Errorf("Subtotal/TotalTax = %v/%v, want 0/0", result.Subtotal, result.TotalTax)
	}
	if result.Regime != RegimeIntraState {
		t.Errorf("Regime = %q, want %q", result.Regime, RegimeIntraState)
	}
}

func TestComputeTaxesRounding(t *testing.T) {
	service := NewTaxService(nil)

	// 333.33 * 9% = 29.9997, rounds to 30.00
	items := []models.InvoiceItem{
		{Amount: 333.33, CGST: 9, SGST: 9},
	}

	result := service.ComputeTaxes(items, "27", "27")

	if result.CGSTAmount != 30.00 {
		t.Errorf("CGSTAmount = %v, want 30.00", result.CGSTAmount)
	}
	if result.TotalTax != 60.00 {
		t.Errorf("TotalTax = %v, want 60.00", result.TotalTax)
	}
}

func TestComputeTaxesInconsistentRates(t *testing.T) {
	service := NewTaxService(nil)

	// Mixed item data: one item priced intra-state, one inter-state.
	// Amounts are still summed faithfully; the flag marks the conflict.
	items := []models.InvoiceItem{
		{Amount: 1000, CGST: 9, SGST: 9},
		{Amount: 1000, IGST: 18},
	}

	result := service.ComputeTaxes(items, "27", "27")

	if !result.Inconsistent {
		t.Error("Inconsistent not set for mixed regime rates")
	}
	if result.CGSTAmount != 90 || result.IGSTAmount != 180 {
		t.Errorf("CGST/IGST = %v/%v, want 90/180", result.CGSTAmount, result.IGSTAmount)
	}
	if result.TotalTax != 360 {
		t.Errorf("TotalTax = %v, want 360", result.TotalTax)
	}
}

func TestRegimeFor(t *testing.T) {
	tests := []struct {
		name        string
		sellerState string
		buyerState  string
		want        TaxRegime
	}{
		{
			name:        "same state",
			sellerState: "27",
			buyerState:  "27",
			want:        RegimeIntraState,
		},
		{
			name:        "different states",
			sellerState: "27",
			buyerState:  "07",
			want:        RegimeInterState,
		},
		{
			name:        "unknown buyer state",
			sellerState: "27",
			buyerState:  "",
			want:        RegimeInterState,
		},
		{
			name:        "both empty",
			sellerState: "",
			buyerState:  "",
			want:        RegimeInterState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := regimeFor(tt.sellerState, tt.buyerState)
			if got != tt.want {
				t.Errorf("regimeFor(%q, %q) = %q, want %q", tt.sellerState, tt.buyerState, got, tt.want)
			}
		})
	}
}
