package repositories

import (
	"context"

	"gst-invoice-api/internal/models"
)

// TenantScope tags every read and write with the owning company. It is
// applied once at the repository layer; callers never pass company
// predicates themselves.
type TenantScope struct {
	CompanyID string
}

// ProductRepository manages the product catalog
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *models.Product) error

	// GetByID retrieves a product by its ID
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// Update updates an existing product
	Update(ctx context.Context, product *models.Product) error

	// Delete deletes a product by its ID
	Delete(ctx context.Context, id string) error

	// List retrieves all products in scope, newest first
	List(ctx context.Context) ([]*models.Product, error)

	// Search performs a substring search on name, HSN code and description
	Search(ctx context.Context, query string, limit int) ([]*models.Product, error)

	// Count returns the number of products in scope
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every product in scope (backup import)
	DeleteAll(ctx context.Context) error
}

// CustomerRepository manages stored customers
type CustomerRepository interface {
	// Create creates a new customer
	Create(ctx context.Context, customer *models.Customer) error

	// GetByID retrieves a customer by its ID
	GetByID(ctx context.Context, id string) (*models.Customer, error)

	// Update updates an existing customer
	Update(ctx context.Context, customer *models.Customer) error

	// Delete deletes a customer by its ID
	Delete(ctx context.Context, id string) error

	// List retrieves all customers in scope, newest first
	List(ctx context.Context) ([]*models.Customer, error)

	// Search performs a substring search on name, GSTIN, email and contact
	Search(ctx context.Context, query string, limit int) ([]*models.Customer, error)

	// Count returns the number of customers in scope
	Count(ctx context.Context) (int64, error)

	// DeleteAll removes every customer in scope (backup import)
	DeleteAll(ctx context.Context) error
}

// InvoiceRepository manages the live (current financial year) invoice set
type InvoiceRepository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice *models.Invoice) error

	// GetByID retrieves an invoice by its ID
	GetByID(ctx context.Context, id string) (*models.Invoice, error)

	// Update replaces an existing invoice by ID
	Update(ctx context.Context, invoice *models.Invoice) error

	// Delete deletes an invoice by its ID
	Delete(ctx context.Context, id string) error

	// List retrieves the live invoice set, newest first
	List(ctx context.Context) ([]*models.Invoice, error)

	// Count returns the number of live invoices in scope
	Count(ctx context.Context) (int64, error)

	// DeleteAll clears the live invoice set (financial year rollover,
	// backup import)
	DeleteAll(ctx context.Context) error
}

// SettingsRepository is the singular key/value settings store, used for
// the currentSeller setting and fy-archive buckets. Values are JSON.
type SettingsRepository interface {
	// Get retrieves the raw value stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any prior value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key
	Delete(ctx context.Context, key string) error

	// ListKeys returns all keys with the given prefix
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}
