package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unit represents a unit of measure for a product
type Unit string

const (
	UnitPiece   Unit = "pcs"
	UnitNumber  Unit = "nos"
	UnitKg      Unit = "kg"
	UnitGram    Unit = "g"
	UnitLitre   Unit = "l"
	UnitMl      Unit = "ml"
	UnitMetre   Unit = "m"
	UnitBox     Unit = "box"
	UnitDozen   Unit = "dozen"
	UnitPair    Unit = "pair"
	UnitSet     Unit = "set"
	UnitHour    Unit = "hour"
	UnitService Unit = "service"
)

// ValidUnits lists the accepted units of measure
var ValidUnits = []Unit{
	UnitPiece, UnitNumber, UnitKg, UnitGram, UnitLitre, UnitMl,
	UnitMetre, UnitBox, UnitDozen, UnitPair, UnitSet, UnitHour, UnitService,
}

// Product represents a product in the catalog. CGST/SGST/IGST are the
// individual percentage rates; which of them applies is decided per
// invoice based on the buyer's state, not here.
type Product struct {
	ID          string    `json:"id" db:"id" validate:"required,uuid"`
	CompanyID   string    `json:"companyId" db:"company_id"`
	Name        string    `json:"name" db:"name" validate:"required,min=1,max=255"`
	Description *string   `json:"description,omitempty" db:"description"`
	HSNCode     string    `json:"hsnCode" db:"hsn_code"`
	CGST        float64   `json:"cgst" db:"cgst" validate:"min=0,max=100"`
	SGST        float64   `json:"sgst" db:"sgst" validate:"min=0,max=100"`
	IGST        float64   `json:"igst" db:"igst" validate:"min=0,max=100"`
	Price       float64   `json:"price" db:"price" validate:"required,gt=0"`
	Unit        Unit      `json:"unit" db:"unit" validate:"required"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// NewProduct creates a new product with generated ID and timestamps
func NewProduct(name, hsnCode string, price float64, unit Unit) *Product {
	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		Name:      name,
		HSNCode:   hsnCode,
		Price:     price,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GSTRate returns the total GST percentage for display (cgst+sgst+igst)
func (p *Product) GSTRate() float64 {
	return roundToTwoDecimals(p.CGST + p.SGST + p.IGST)
}

// Validate validates the product data
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product ID is required")
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product name is required")
	}

	if len(p.Name) > 255 {
		return fmt.Errorf("product name cannot exceed 255 characters")
	}

	if p.Price <= 0 {
		return fmt.Errorf("product price must be greater than zero")
	}

	if p.CGST < 0 || p.SGST < 0 || p.IGST < 0 {
		return fmt.Errorf("tax rates cannot be negative")
	}

	if !p.Unit.IsValid() {
		return fmt.Errorf("invalid unit of measure: %s", p.Unit)
	}

	return nil
}

// IsValid reports whether the unit is one of the accepted units
func (u Unit) IsValid() bool {
	for _, valid := range ValidUnits {
		if u == valid {
			return true
		}
	}
	return false
}

// SetDescription sets the product description
func (p *Product) SetDescription(description string) {
	if strings.TrimSpace(description) == "" {
		p.Description = nil
	} else {
		p.Description = &description
	}
}

// GetDescription returns the product description or empty string if nil
func (p *Product) GetDescription() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// GetSearchableText returns text that can be used for searching
func (p *Product) GetSearchableText() string {
	parts := []string{p.Name, p.HSNCode}
	if p.Description != nil && *p.Description != "" {
		parts = append(parts, *p.Description)
	}
	return strings.Join(parts, " ")
}

// UpdateTimestamp updates the UpdatedAt timestamp
func (p *Product) UpdateTimestamp() {
	p.UpdatedAt = time.Now()
}

// roundToTwoDecimals rounds a float64 to 2 decimal places (half-up)
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// roundToThreeDecimals rounds a float64 to 3 decimal places (half-up).
// Used for fractional quantities.
func roundToThreeDecimals(value float64) float64 {
	return math.Round(value*1000) / 1000
}
