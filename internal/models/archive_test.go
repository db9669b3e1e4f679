package models

import (
	"testing"
	"time"
)

func TestFinancialYearFor(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "april starts the new year",
			date: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			want: "2024-2025",
		},
		{
			name: "december stays in the same year",
			date: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: "2024-2025",
		},
		{
			name: "january belongs to the prior year",
			date: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			want: "2023-2024",
		},
		{
			name: "march 31 closes the year",
			date: time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC),
			want: "2024-2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinancialYearFor(tt.date)
			if got != tt.want {
				t.Errorf("FinancialYearFor(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestNextFinancialYear(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{
			name:  "advance one pair",
			token: "2024-2025",
			want:  "2025-2026",
		},
		{
			name:    "non-consecutive years",
			token:   "2024-2026",
			wantErr: true,
		},
		{
			name:    "not a token",
			token:   "garbage",
			wantErr: true,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextFinancialYear(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NextFinancialYear(%q) expected error", tt.token)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextFinancialYear(%q) returned error: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("NextFinancialYear(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestArchiveKeyRoundTrip(t *testing.T) {
	key := ArchiveKey("2024-2025")
	if key != "fy-archive:2024-2025" {
		t.Errorf("ArchiveKey = %q, want %q", key, "fy-archive:2024-2025")
	}

	token, ok := TokenFromArchiveKey(key)
	if !ok {
		t.Fatal("TokenFromArchiveKey rejected an archive key")
	}
	if token != "2024-2025" {
		t.Errorf("TokenFromArchiveKey = %q, want %q", token, "2024-2025")
	}

	if _, ok := TokenFromArchiveKey("currentSeller"); ok {
		t.Error("TokenFromArchiveKey accepted a non-archive key")
	}
}

func TestNewFinancialYearArchive(t *testing.T) {
	invoices := []*Invoice{
		{TotalAmount: 1000.50},
		{TotalAmount: 2500.25},
	}

	archive := NewFinancialYearArchive(invoices)

	if archive.Summary.TotalInvoices != 2 {
		t.Errorf("TotalInvoices = %d, want 2", archive.Summary.TotalInvoices)
	}
	if archive.Summary.TotalAmount != 3500.75 {
		t.Errorf("TotalAmount = %v, want 3500.75", archive.Summary.TotalAmount)
	}
	if archive.ArchivedDate.IsZero() {
		t.Error("ArchivedDate not set")
	}
}

func TestNewFinancialYearArchiveEmpty(t *testing.T) {
	archive := NewFinancialYearArchive(nil)

	if archive.Summary.TotalInvoices != 0 {
		t.Errorf("TotalInvoices = %d, want 0", archive.Summary.TotalInvoices)
	}
	if archive.Summary.TotalAmount != 0 {
		t.Errorf("TotalAmount = %v, want 0", archive.Summary.TotalAmount)
	}
}
