package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BankDetails holds the bank account details printed on invoices
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	Branch        string `json:"branch"`
	IFSCCode      string `json:"ifscCode"`
}

// Customer represents a customer in the system. The tenant's own seller
// profile is created through the same form and has the same shape; the
// chosen record is copied into the currentSeller setting.
type Customer struct {
	ID          string       `json:"id" db:"id" validate:"required,uuid"`
	CompanyID   string       `json:"companyId" db:"company_id"`
	Name        string       `json:"name" db:"name" validate:"required,min=1,max=255"`
	Address     string       `json:"address" db:"address"`
	GSTIN       string       `json:"gstin" db:"gstin"`
	State       string       `json:"state" db:"state"`
	StateCode   string       `json:"stateCode" db:"state_code"`
	Contact     string       `json:"contact" db:"contact"`
	Email       string       `json:"email" db:"email" validate:"omitempty,email"`
	PAN         string       `json:"pan" db:"pan"`
	Notes       *string      `json:"notes,omitempty" db:"notes"`
	Logo        *string      `json:"logo,omitempty" db:"logo"`
	BankDetails *BankDetails `json:"bankDetails,omitempty" db:"bank_details"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// NewCustomer creates a new customer with generated ID and timestamps
func NewCustomer(name string) *Customer {
	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the customer data
func (c *Customer) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("customer ID is required")
	}

	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("customer name is required")
	}

	if c.GSTIN != "" {
		if err := ValidateGSTIN(c.GSTIN); err != nil {
			return err
		}
	}

	if c.PAN != "" {
		if err := ValidatePAN(c.PAN); err != nil {
			return err
		}
	}

	if c.StateCode != "" && len(c.StateCode) != 2 {
		return fmt.Errorf("state code must be a 2-digit string: %s", c.StateCode)
	}

	return nil
}

// DerivePAN fills the PAN from the GSTIN when the PAN is empty and the
// GSTIN is valid. No-op otherwise.
func (c *Customer) DerivePAN() {
	if c.PAN != "" || c.GSTIN == "" {
		return
	}
	if pan, err := PANFromGSTIN(c.GSTIN); err == nil {
		c.PAN = pan
	}
}

// GetSearchableText returns text that can be used for searching
func (c *Customer) GetSearchableText() string {
	parts := []string{c.Name}
	for _, s := range []string{c.GSTIN, c.Email, c.Contact, c.State} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// GetNotes returns the customer notes or empty string if nil
func (c *Customer) GetNotes() string {
	if c.Notes == nil {
		return ""
	}
	return *c.Notes
}

// SetNotes sets the customer notes
func (c *Customer) SetNotes(notes string) {
	if notes == "" {
		c.Notes = nil
	} else {
		c.Notes = &notes
	}
}

// UpdateTimestamp updates the UpdatedAt timestamp
func (c *Customer) UpdateTimestamp() {
	c.UpdatedAt = time.Now()
}
