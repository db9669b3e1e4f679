package services

import (
	"fmt"
	"regexp"
	"strconv"

	"gst-invoice-api/internal/models"
)

// invoiceNumberPattern matches the sequential display id "INV-####"
var invoiceNumberPattern = regexp.MustCompile(`^INV-(\d+)$`)

// NextInvoiceNumber derives the next sequential invoice number from the
// live invoice set: the maximum parsed INV- suffix plus one, zero-padded
// to 4 digits. Invoices whose numbers do not match the pattern count as
// zero, so a non-empty set with no parseable numbers still yields
// "INV-0001". Never fails.
//
// The live set only spans the current financial year; after archival the
// sequence restarts from INV-0001.
func NextInvoiceNumber(existing []*models.Invoice) string {
	max := 0
	for _, inv := range existing {
		matches := invoiceNumberPattern.FindStringSubmatch(inv.InvoiceNumber)
		if matches == nil {
			continue
		}
		if n, err := strconv.Atoi(matches[1]); err == nil && n > max {
			max = n
		}
	}

	return fmt.Sprintf("INV-%04d", max+1)
}
