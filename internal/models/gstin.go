package models

import (
	"fmt"
	"regexp"
	"strings"
)

// GSTIN layout: 2-digit state code, 10-character PAN, entity number,
// a literal 'Z', and a check character.
var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// ValidateGSTIN checks that a GSTIN is syntactically valid
func ValidateGSTIN(gstin string) error {
	if !gstinPattern.MatchString(strings.ToUpper(gstin)) {
		return fmt.Errorf("invalid GSTIN format: %s", gstin)
	}
	return nil
}

// ValidatePAN checks that a PAN is syntactically valid
func ValidatePAN(pan string) error {
	if !panPattern.MatchString(strings.ToUpper(pan)) {
		return fmt.Errorf("invalid PAN format: %s", pan)
	}
	return nil
}

// PANFromGSTIN derives the 10-character PAN embedded in a GSTIN
// (characters 3-12). Returns an error if the GSTIN is malformed.
func PANFromGSTIN(gstin string) (string, error) {
	gstin = strings.ToUpper(gstin)
	if err := ValidateGSTIN(gstin); err != nil {
		return "", err
	}
	return gstin[2:12], nil
}

// StateCodeFromGSTIN extracts the 2-digit state code prefix of a GSTIN
func StateCodeFromGSTIN(gstin string) (string, error) {
	gstin = strings.ToUpper(gstin)
	if err := ValidateGSTIN(gstin); err != nil {
		return "", err
	}
	return gstin[:2], nil
}
