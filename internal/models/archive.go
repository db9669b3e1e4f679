package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ArchiveKeyPrefix is the settings-store key prefix for financial year
// archive buckets, e.g. "fy-archive:2024-2025".
const ArchiveKeyPrefix = "fy-archive:"

// ArchiveSummary holds the aggregate figures captured at rollover time
type ArchiveSummary struct {
	TotalInvoices int     `json:"totalInvoices"`
	TotalAmount   float64 `json:"totalAmount"`
}

// FinancialYearArchive is the immutable snapshot of a completed year's
// invoice set, stored under its "startYear-endYear" token.
type FinancialYearArchive struct {
	Invoices     []*Invoice     `json:"invoices"`
	Summary      ArchiveSummary `json:"summary"`
	ArchivedDate time.Time      `json:"archivedDate"`
}

// NewFinancialYearArchive snapshots the given live invoice set
func NewFinancialYearArchive(invoices []*Invoice) *FinancialYearArchive {
	var total float64
	for _, inv := range invoices {
		total += inv.TotalAmount
	}

	return &FinancialYearArchive{
		Invoices: invoices,
		Summary: ArchiveSummary{
			TotalInvoices: len(invoices),
			TotalAmount:   roundToTwoDecimals(total),
		},
		ArchivedDate: time.Now(),
	}
}

// FinancialYearFor returns the "YYYY-YYYY+1" token of the April-March
// financial year containing the given date.
func FinancialYearFor(t time.Time) string {
	year := t.Year()
	if t.Month() >= time.April {
		return fmt.Sprintf("%d-%d", year, year+1)
	}
	return fmt.Sprintf("%d-%d", year-1, year)
}

// NextFinancialYear advances a "YYYY-YYYY+1" token by one year pair
func NextFinancialYear(token string) (string, error) {
	parts := strings.SplitN(token, "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid financial year token: %s", token)
	}

	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid financial year token: %s", token)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("invalid financial year token: %s", token)
	}
	if end != start+1 {
		return "", fmt.Errorf("invalid financial year token: %s", token)
	}

	return fmt.Sprintf("%d-%d", start+1, end+1), nil
}

// ArchiveKey builds the settings-store key for a financial year token
func ArchiveKey(token string) string {
	return ArchiveKeyPrefix + token
}

// TokenFromArchiveKey extracts the financial year token from an archive
// settings key. Returns false if the key is not an archive key.
func TokenFromArchiveKey(key string) (string, bool) {
	if !strings.HasPrefix(key, ArchiveKeyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, ArchiveKeyPrefix), true
}
