package services

import (
	"math"

	"gst-invoice-api/internal/models"

	"github.com/sirupsen/logrus"
)

// TaxRegime identifies which tax split applies to an invoice
type TaxRegime string

const (
	// RegimeIntraState applies CGST+SGST (buyer and seller share a state)
	RegimeIntraState TaxRegime = "intra-state"

	// RegimeInterState applies IGST (states differ or buyer state unknown)
	RegimeInterState TaxRegime = "inter-state"
)

// TaxResult holds the aggregate tax amounts computed for an invoice.
// Amounts are the source of truth: they are summed from per-item rates,
// and the invoice-level rates are derived back from the amounts for
// display. The regime decides which columns the invoice exposes as
// active; it never alters the sums.
type TaxResult struct {
	Regime     TaxRegime `json:"regime"`
	Subtotal   float64   `json:"subtotal"`
	CGSTAmount float64   `json:"cgstAmount"`
	SGSTAmount float64   `json:"sgstAmount"`
	IGSTAmount float64   `json:"igstAmount"`
	TotalTax   float64   `json:"totalTax"`
	CGSTRate   float64   `json:"cgstRate"`
	SGSTRate   float64   `json:"sgstRate"`
	IGSTRate   float64   `json:"igstRate"`

	// Inconsistent is set when both regimes carry non-zero amounts at
	// once, which signals contradictory item-level rate data
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// TaxService computes India GST splits for invoices
type TaxService struct {
	logger *logrus.Logger
}

// NewTaxService creates a new tax service
func NewTaxService(logger *logrus.Logger) *TaxService {
	if logger == nil {
		logger = logrus.New()
	}
	return &TaxService{logger: logger}
}

// ComputeTaxes turns a list of invoice items plus the seller and buyer
// state codes into aggregate tax amounts and the applicable regime.
// The regime decision is per invoice: matching state codes mean
// intra-state (CGST+SGST); differing or unknown buyer state means
// inter-state (IGST).
func (s *TaxService) ComputeTaxes(items []models.InvoiceItem, sellerStateCode, buyerStateCode string) TaxResult {
	result := TaxResult{Regime: regimeFor(sellerStateCode, buyerStateCode)}

	if len(items) == 0 {
		return result
	}

	var subtotal, cgst, sgst, igst float64
	for _, item := range items {
		subtotal += item.Amount
		cgst += item.Amount * item.CGST / 100
		sgst += item.Amount * item.SGST / 100
		igst += item.Amount * item.IGST / 100
	}

	result.Subtotal = round2(subtotal)
	result.CGSTAmount = round2(cgst)
	result.SGSTAmount = round2(sgst)
	result.IGSTAmount = round2(igst)
	result.TotalTax = round2(result.CGSTAmount + result.SGSTAmount + result.IGSTAmount)

	// Rates are informational, derived from the amounts
	if result.Subtotal > 0 {
		result.CGSTRate = round2(result.CGSTAmount / result.Subtotal * 100)
		result.SGSTRate = round2(result.SGSTAmount / result.Subtotal * 100)
		result.IGSTRate = round2(result.IGSTAmount / result.Subtotal * 100)
	}

	intraStateTax := result.CGSTAmount + result.SGSTAmount
	if intraStateTax > 0 && result.IGSTAmount > 0 {
		result.Inconsistent = true
		s.logger.WithFields(logrus.Fields{
			"cgst_amount": result.CGSTAmount,
			"sgst_amount": result.SGSTAmount,
			"igst_amount": result.IGSTAmount,
		}).Warn("Invoice items carry both intra-state and inter-state rates")
	}

	return result
}

// regimeFor decides the tax regime from the state codes. An unknown
// buyer state is treated as inter-state.
func regimeFor(sellerStateCode, buyerStateCode string) TaxRegime {
	if buyerStateCode != "" && buyerStateCode == sellerStateCode {
		return RegimeIntraState
	}
	return RegimeInterState
}

// round2 rounds to 2 decimal places, half-up
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
