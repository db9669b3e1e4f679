package services

import (
	"gst-invoice-api/internal/models"

	"github.com/sirupsen/logrus"
)

// buyerFieldMissing is the placeholder for absent buyer fields
const buyerFieldMissing = "N/A"

// CustomerLookup resolves a customer ID to a customer record. A nil
// result with no error means the customer does not exist.
type CustomerLookup func(id string) (*models.Customer, error)

// ResolveBuyer normalizes an invoice's buyer into the uniform Buyer view.
// It is a pure function of the invoice and the lookup table, invoked both
// at edit-load time and display time, and must produce identical output
// both times.
//
// It never fails: a deleted customer degrades to a sentinel buyer with
// every field "N/A" so historical invoices still render.
func ResolveBuyer(invoice *models.Invoice, lookup CustomerLookup, logger *logrus.Logger) *models.Buyer {
	if logger == nil {
		logger = logrus.New()
	}

	if invoice.UseExistingBuyer {
		customer, err := lookup(invoice.BuyerID)
		if err != nil || customer == nil {
			logger.WithFields(logrus.Fields{
				"invoice_id": invoice.ID,
				"buyer_id":   invoice.BuyerID,
			}).Warn("Buyer customer not found; rendering sentinel buyer")
			return sentinelBuyer()
		}

		return &models.Buyer{
			ID:        customer.ID,
			Name:      customer.Name,
			Address:   customer.Address,
			GSTIN:     customer.GSTIN,
			State:     customer.State,
			StateCode: customer.StateCode,
			Contact:   customer.Contact,
			Email:     customer.Email,
			PAN:       customer.PAN,
		}
	}

	return &models.Buyer{
		ID:        models.BuyerOneTimeID,
		Name:      orMissing(invoice.BuyerName),
		Address:   orMissing(invoice.BuyerAddress),
		GSTIN:     orMissing(invoice.BuyerGSTIN),
		State:     orMissing(invoice.BuyerState),
		StateCode: orMissing(invoice.BuyerStateCode),
		Contact:   orMissing(invoice.BuyerContact),
		Email:     orMissing(invoice.BuyerEmail),
		PAN:       orMissing(invoice.BuyerPAN),
	}
}

// sentinelBuyer stands in for a deleted customer on a historical invoice
func sentinelBuyer() *models.Buyer {
	return &models.Buyer{
		ID:        "",
		Name:      buyerFieldMissing,
		Address:   buyerFieldMissing,
		GSTIN:     buyerFieldMissing,
		State:     buyerFieldMissing,
		StateCode: buyerFieldMissing,
		Contact:   buyerFieldMissing,
		Email:     buyerFieldMissing,
		PAN:       buyerFieldMissing,
	}
}

func orMissing(value string) string {
	if value == "" {
		return buyerFieldMissing
	}
	return value
}
