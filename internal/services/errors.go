package services

import (
	"errors"
)

// Validation errors raised before any write. Handlers surface them as
// actionable 400 responses.
var (
	// ErrMissingSeller is returned when no seller is configured
	ErrMissingSeller = errors.New("no seller configured: set up the seller profile before creating invoices")

	// ErrEmptyInvoice is returned when an invoice has no items
	ErrEmptyInvoice = errors.New("invoice must have at least one item")

	// ErrIncompleteItem is returned when an item does not reference a product
	ErrIncompleteItem = errors.New("every invoice item must reference a product")

	// ErrMissingBuyer is returned when an existing buyer is selected but
	// no buyer ID is set or resolvable
	ErrMissingBuyer = errors.New("buyer is required when using an existing customer")

	// ErrMissingBuyerName is returned when a one-time buyer has no name
	ErrMissingBuyerName = errors.New("buyer name is required for a one-time buyer")

	// ErrInvalidGSTIN is returned on GSTIN format validation failure
	ErrInvalidGSTIN = errors.New("invalid GSTIN format")

	// ErrInvalidPAN is returned on PAN format validation failure
	ErrInvalidPAN = errors.New("invalid PAN format")

	// ErrMalformedBackup is returned when an import document cannot be
	// parsed; nothing is written in that case
	ErrMalformedBackup = errors.New("malformed backup document")
)

// IsValidationError reports whether err belongs to the pre-write
// validation taxonomy
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrMissingSeller,
		ErrEmptyInvoice,
		ErrIncompleteItem,
		ErrMissingBuyer,
		ErrMissingBuyerName,
		ErrInvalidGSTIN,
		ErrInvalidPAN,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
