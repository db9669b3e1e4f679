package repositories

import (
	"context"
)

// TransactionalRepositories provides access to all repositories bound to
// a single transaction. Writes made through them are applied atomically.
type TransactionalRepositories interface {
	// Products returns the product repository
	Products() ProductRepository

	// Customers returns the customer repository
	Customers() CustomerRepository

	// Invoices returns the invoice repository
	Invoices() InvoiceRepository

	// Settings returns the settings repository
	Settings() SettingsRepository
}

// TransactionManager runs multi-repository operations atomically.
// Financial year archival and backup import are the two callers: either
// all their collection writes succeed or none are observably applied.
type TransactionManager interface {
	// WithTransaction executes fn within a transaction, committing on a
	// nil return and rolling back otherwise
	WithTransaction(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// RepositoryManager provides access to all repositories and transaction
// management over a single storage backend
type RepositoryManager interface {
	TransactionManager
	TransactionalRepositories

	// Close closes the storage backend
	Close() error

	// Health checks the health of the storage backend
	Health(ctx context.Context) error
}
