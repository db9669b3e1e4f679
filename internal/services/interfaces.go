package services

import (
	"context"
	"io"
	"time"

	"gst-invoice-api/internal/models"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]*models.Product, error)
}

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	SearchCustomers(ctx context.Context, query string, limit int) ([]*models.Customer, error)
}

// SellerService manages the singular current-seller setting
type SellerService interface {
	// GetSeller returns the configured seller, or ErrMissingSeller
	GetSeller(ctx context.Context) (*models.Customer, error)

	// SetSeller stores the current seller setting
	SetSeller(ctx context.Context, seller *models.Customer) error

	// SetSellerFromCustomer copies an existing customer record into the
	// current seller setting
	SetSellerFromCustomer(ctx context.Context, customerID string) (*models.Customer, error)
}

// InvoiceService assembles, stores and renders invoices
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *InvoiceRequest) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, req *InvoiceRequest) (*models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*models.Invoice, error)
	GetInvoiceDocument(ctx context.Context, id string) (*InvoiceDocument, error)
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
}

// FiscalYearService partitions invoices by April-March financial year
type FiscalYearService interface {
	// CurrentFinancialYear returns the live FY token
	CurrentFinancialYear(ctx context.Context) (string, error)

	// StartNewFinancialYear archives the live set under today's nominal
	// FY token and clears it. Calling it twice within one fiscal year
	// re-archives under the same key, overwriting the prior archive.
	StartNewFinancialYear(ctx context.Context) (*RolloverResult, error)

	// SaveAndStartNewYear archives the live set under the current FY
	// token and deterministically advances the token by one year pair.
	// Repeated calls never collide on an archive key.
	SaveAndStartNewYear(ctx context.Context) (*RolloverResult, error)

	// ListArchivedYears returns the archived FY tokens
	ListArchivedYears(ctx context.Context) ([]string, error)

	// GetArchivedYear returns an archived year's snapshot verbatim
	GetArchivedYear(ctx context.Context, token string) (*models.FinancialYearArchive, error)
}

// BackupService exports and imports the full data set
type BackupService interface {
	// ExportAll snapshots every collection plus the current seller
	ExportAll(ctx context.Context) (*models.BackupDocument, error)

	// ImportAll destructively replaces all collections from a backup
	// document, all-or-nothing
	ImportAll(ctx context.Context, doc *models.BackupDocument) error

	// ImportRaw parses a backup JSON document and imports it. A parse
	// failure aborts before any write.
	ImportRaw(ctx context.Context, data []byte) error
}

// ExportService writes collections as CSV for spreadsheet use
type ExportService interface {
	WriteProductsCSV(ctx context.Context, w io.Writer) error
	WriteCustomersCSV(ctx context.Context, w io.Writer) error
	WriteInvoicesCSV(ctx context.Context, w io.Writer) error
}

// InvoiceDocument is the printable invoice view: the stored record with
// the buyer resolved to the uniform view and the active tax regime.
type InvoiceDocument struct {
	Invoice *models.Invoice `json:"invoice"`
	Buyer   *models.Buyer   `json:"buyer"`
	Regime  TaxRegime       `json:"regime"`
}

// RolloverResult describes a completed financial year rollover
type RolloverResult struct {
	ArchivedYear     string                `json:"archivedYear"`
	NewFinancialYear string                `json:"newFinancialYear"`
	Summary          models.ArchiveSummary `json:"summary"`
}

// CreateProductRequest carries the fields for creating a product
type CreateProductRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=255"`
	Description *string     `json:"description,omitempty"`
	HSNCode     string      `json:"hsnCode"`
	CGST        float64     `json:"cgst" validate:"min=0,max=100"`
	SGST        float64     `json:"sgst" validate:"min=0,max=100"`
	IGST        float64     `json:"igst" validate:"min=0,max=100"`
	Price       float64     `json:"price" validate:"required,gt=0"`
	Unit        models.Unit `json:"unit" validate:"required"`
}

// UpdateProductRequest carries optional fields for updating a product
type UpdateProductRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description,omitempty"`
	HSNCode     *string      `json:"hsnCode,omitempty"`
	CGST        *float64     `json:"cgst,omitempty" validate:"omitempty,min=0,max=100"`
	SGST        *float64     `json:"sgst,omitempty" validate:"omitempty,min=0,max=100"`
	IGST        *float64     `json:"igst,omitempty" validate:"omitempty,min=0,max=100"`
	Price       *float64     `json:"price,omitempty" validate:"omitempty,gt=0"`
	Unit        *models.Unit `json:"unit,omitempty"`
}

// CreateCustomerRequest carries the fields for creating a customer. When
// IsSeller is set, the created record is also copied into the current
// seller setting.
type CreateCustomerRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Address     string              `json:"address"`
	GSTIN       string              `json:"gstin"`
	State       string              `json:"state"`
	StateCode   string              `json:"stateCode" validate:"omitempty,len=2"`
	Contact     string              `json:"contact"`
	Email       string              `json:"email" validate:"omitempty,email"`
	PAN         string              `json:"pan"`
	Notes       *string             `json:"notes,omitempty"`
	Logo        *string             `json:"logo,omitempty"`
	BankDetails *models.BankDetails `json:"bankDetails,omitempty"`
	IsSeller    bool                `json:"isSeller"`
}

// UpdateCustomerRequest carries optional fields for updating a customer
type UpdateCustomerRequest struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address     *string             `json:"address,omitempty"`
	GSTIN       *string             `json:"gstin,omitempty"`
	State       *string             `json:"state,omitempty"`
	StateCode   *string             `json:"stateCode,omitempty" validate:"omitempty,len=2"`
	Contact     *string             `json:"contact,omitempty"`
	Email       *string             `json:"email,omitempty" validate:"omitempty,email"`
	PAN         *string             `json:"pan,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Logo        *string             `json:"logo,omitempty"`
	BankDetails *models.BankDetails `json:"bankDetails,omitempty"`
}

// InvoiceItemRequest is one line of an invoice form
type InvoiceItemRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  float64  `json:"quantity" validate:"required,gt=0"`
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// InvoiceRequest carries the raw form values an invoice is assembled from
type InvoiceRequest struct {
	Date *time.Time `json:"date,omitempty"`

	EWayBillNumber    string `json:"eWayBillNumber,omitempty"`
	DeliveryNote      string `json:"deliveryNote,omitempty"`
	ModeOfPayment     string `json:"modeOfPayment,omitempty"`
	Reference         string `json:"reference,omitempty"`
	OtherReferences   string `json:"otherReferences,omitempty"`
	BuyerOrderNo      string `json:"buyerOrderNo,omitempty"`
	BuyerOrderDate    string `json:"buyerOrderDate,omitempty"`
	DispatchDocNo     string `json:"dispatchDocNo,omitempty"`
	DispatchedThrough string `json:"dispatchedThrough,omitempty"`
	Destination       string `json:"destination,omitempty"`
	TermsOfDelivery   string `json:"termsOfDelivery,omitempty"`

	UseExistingBuyer bool   `json:"useExistingBuyer"`
	BuyerID          string `json:"buyerId,omitempty"`

	BuyerName      string `json:"buyerName,omitempty"`
	BuyerAddress   string `json:"buyerAddress,omitempty"`
	BuyerGSTIN     string `json:"buyerGstin,omitempty"`
	BuyerState     string `json:"buyerState,omitempty"`
	BuyerStateCode string `json:"buyerStateCode,omitempty"`
	BuyerContact   string `json:"buyerContact,omitempty"`
	BuyerEmail     string `json:"buyerEmail,omitempty"`
	BuyerPAN       string `json:"buyerPan,omitempty"`

	Items []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}
