package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BuyerOneTimeID marks a buyer synthesized from free-text invoice fields
const BuyerOneTimeID = "one-time"

// Buyer is the uniform buyer view an invoice renders with, whether the
// buyer came from a stored customer or from one-time invoice fields.
type Buyer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"stateCode"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	PAN       string `json:"pan"`
}

// InvoiceItem is a line on an invoice. Product name, HSN code, rates and
// price are snapshots taken at invoice time; later product edits must not
// alter historical invoices.
type InvoiceItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	HSNCode     string  `json:"hsnCode"`
	GSTRate     float64 `json:"gstRate"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	IGST        float64 `json:"igst"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
}

// NewInvoiceItem creates an item from a product snapshot, computing the
// line amount from quantity and unit price.
func NewInvoiceItem(product *Product, quantity float64) *InvoiceItem {
	item := &InvoiceItem{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		HSNCode:     product.HSNCode,
		GSTRate:     product.GSTRate(),
		CGST:        product.CGST,
		SGST:        product.SGST,
		IGST:        product.IGST,
		Quantity:    roundToThreeDecimals(quantity),
		Price:       product.Price,
	}
	item.RecalculateAmount()
	return item
}

// RecalculateAmount recomputes the line amount (= quantity x price)
func (i *InvoiceItem) RecalculateAmount() {
	i.Amount = roundToTwoDecimals(i.Quantity * i.Price)
}

// Validate validates the invoice item data
func (i *InvoiceItem) Validate() error {
	if i.ProductID == "" {
		return fmt.Errorf("invoice item must reference a product")
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("invoice item quantity must be positive")
	}
	if i.Price < 0 {
		return fmt.Errorf("invoice item price cannot be negative")
	}
	return nil
}

// Invoice represents a tax invoice. Seller, buyer and product data are
// embedded as full snapshots so the invoice remains historically accurate
// when the source records are edited or deleted.
type Invoice struct {
	ID            string    `json:"id" db:"id" validate:"required"`
	CompanyID     string    `json:"companyId" db:"company_id"`
	InvoiceNumber string    `json:"invoiceNumber" db:"invoice_number"`
	Date          time.Time `json:"date" db:"date"`

	// Shipment/reference metadata, pass-through free text
	EWayBillNumber    string `json:"eWayBillNumber,omitempty" db:"eway_bill_number"`
	DeliveryNote      string `json:"deliveryNote,omitempty" db:"delivery_note"`
	ModeOfPayment     string `json:"modeOfPayment,omitempty" db:"mode_of_payment"`
	Reference         string `json:"reference,omitempty" db:"reference"`
	OtherReferences   string `json:"otherReferences,omitempty" db:"other_references"`
	BuyerOrderNo      string `json:"buyerOrderNo,omitempty" db:"buyer_order_no"`
	BuyerOrderDate    string `json:"buyerOrderDate,omitempty" db:"buyer_order_date"`
	DispatchDocNo     string `json:"dispatchDocNo,omitempty" db:"dispatch_doc_no"`
	DispatchedThrough string `json:"dispatchedThrough,omitempty" db:"dispatched_through"`
	Destination       string `json:"destination,omitempty" db:"destination"`
	TermsOfDelivery   string `json:"termsOfDelivery,omitempty" db:"terms_of_delivery"`

	SellerID string    `json:"sellerId" db:"seller_id"`
	Seller   *Customer `json:"seller,omitempty"`

	UseExistingBuyer bool   `json:"useExistingBuyer" db:"use_existing_buyer"`
	BuyerID          string `json:"buyerId,omitempty" db:"buyer_id"`
	Buyer            *Buyer `json:"buyer,omitempty"`

	// One-time buyer fields, populated when UseExistingBuyer is false
	BuyerName      string `json:"buyerName,omitempty" db:"buyer_name"`
	BuyerAddress   string `json:"buyerAddress,omitempty" db:"buyer_address"`
	BuyerGSTIN     string `json:"buyerGstin,omitempty" db:"buyer_gstin"`
	BuyerState     string `json:"buyerState,omitempty" db:"buyer_state"`
	BuyerStateCode string `json:"buyerStateCode,omitempty" db:"buyer_state_code"`
	BuyerContact   string `json:"buyerContact,omitempty" db:"buyer_contact"`
	BuyerEmail     string `json:"buyerEmail,omitempty" db:"buyer_email"`
	BuyerPAN       string `json:"buyerPan,omitempty" db:"buyer_pan"`

	Items []InvoiceItem `json:"items"`

	CGSTRate float64 `json:"cgstRate" db:"cgst_rate"`
	SGSTRate float64 `json:"sgstRate" db:"sgst_rate"`
	IGSTRate float64 `json:"igstRate" db:"igst_rate"`

	CGSTAmount float64 `json:"cgstAmount" db:"cgst_amount"`
	SGSTAmount float64 `json:"sgstAmount" db:"sgst_amount"`
	IGSTAmount float64 `json:"igstAmount" db:"igst_amount"`

	TotalAmount           float64 `json:"totalAmount" db:"total_amount"`
	TotalTaxAmount        float64 `json:"totalTaxAmount" db:"total_tax_amount"`
	TotalAmountInWords    string  `json:"totalAmountInWords" db:"total_amount_in_words"`
	TotalTaxAmountInWords string  `json:"totalTaxAmountInWords" db:"total_tax_amount_in_words"`

	BankDetails *BankDetails `json:"bankDetails,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewInvoice creates a new invoice with generated ID and timestamps
func NewInvoice() *Invoice {
	now := time.Now()
	return &Invoice{
		ID:        uuid.New().String(),
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the invoice data
func (inv *Invoice) Validate() error {
	if inv.ID == "" {
		return fmt.Errorf("invoice ID is required")
	}

	if inv.InvoiceNumber == "" {
		return fmt.Errorf("invoice number is required")
	}

	if inv.Date.IsZero() {
		return fmt.Errorf("invoice date is required")
	}

	if len(inv.Items) == 0 {
		return fmt.Errorf("invoice must have at least one item")
	}

	for i, item := range inv.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	if inv.UseExistingBuyer && inv.BuyerID == "" {
		return fmt.Errorf("buyer ID is required when using an existing buyer")
	}

	return nil
}

// UpdateTimestamp updates the UpdatedAt timestamp
func (inv *Invoice) UpdateTimestamp() {
	inv.UpdatedAt = time.Now()
}
