package services

import (
	"testing"

	"gst-invoice-api/internal/models"
)

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name:     "empty set starts the sequence",
			existing: nil,
			want:     "INV-0001",
		},
		{
			name:     "max plus one",
			existing: []string{"INV-0001", "INV-0003", "INV-0002"},
			want:     "INV-0004",
		},
		{
			name:     "gaps are not reused",
			existing: []string{"INV-0001", "INV-0009"},
			want:     "INV-0010",
		},
		{
			name:     "unparseable numbers count as zero",
			existing: []string{"DRAFT-7", "2024/15", ""},
			want:     "INV-0001",
		},
		{
			name:     "mixed parseable and unparseable",
			existing: []string{"legacy-note", "INV-0042"},
			want:     "INV-0043",
		},
		{
			name:     "padding grows past four digits",
			existing: []string{"INV-9999"},
			want:     "INV-10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoices := make([]*models.Invoice, len(tt.existing))
			for i, number := range tt.existing {
				invoices[i] = &models.Invoice{InvoiceNumber: number}
			}

			got := NextInvoiceNumber(invoices)
			if got != tt.want {
				t.Errorf("NextInvoiceNumber(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}
