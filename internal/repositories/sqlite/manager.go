package sqlite

import (
	"context"
	"database/sql"

	"gst-invoice-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// RepositoryManager implements the RepositoryManager interface for SQLite
type RepositoryManager struct {
	db     *sql.DB
	scope  repositories.TenantScope
	logger *logrus.Logger

	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
	settingsRepo repositories.SettingsRepository
}

// NewRepositoryManager creates a repository manager over an existing
// database connection, scoped to one tenant
func NewRepositoryManager(db *sql.DB, scope repositories.TenantScope, logger *logrus.Logger) repositories.RepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}

	return &RepositoryManager{
		db:           db,
		scope:        scope,
		logger:       logger,
		productRepo:  NewProductRepository(db, scope, logger),
		customerRepo: NewCustomerRepository(db, scope, logger),
		invoiceRepo:  NewInvoiceRepository(db, scope, logger),
		settingsRepo: NewSettingsRepository(db, scope, logger),
	}
}

// Products returns the product repository
func (m *RepositoryManager) Products() repositories.ProductRepository {
	return m.productRepo
}

// Customers returns the customer repository
func (m *RepositoryManager) Customers() repositories.CustomerRepository {
	return m.customerRepo
}

// Invoices returns the invoice repository
func (m *RepositoryManager) Invoices() repositories.InvoiceRepository {
	return m.invoiceRepo
}

// Settings returns the settings repository
func (m *RepositoryManager) Settings() repositories.SettingsRepository {
	return m.settingsRepo
}

// WithTransaction executes fn against transaction-bound repositories,
// committing on a nil return and rolling back otherwise
func (m *RepositoryManager) WithTransaction(ctx context.Context, fn func(repos repositories.TransactionalRepositories) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		m.logger.WithError(err).Error("Failed to begin transaction")
		return repositories.TransactionError("begin", err)
	}

	txRepos := newTransactionalRepositories(tx, m.scope, m.logger)

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(txRepos); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			m.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		m.logger.WithError(err).Error("Failed to commit transaction")
		return repositories.TransactionError("commit", err)
	}

	return nil
}

// Close closes the storage backend
func (m *RepositoryManager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Health checks the health of the storage backend
func (m *RepositoryManager) Health(ctx context.Context) error {
	if m.db == nil {
		return repositories.ConnectionError(repositories.ErrConnection)
	}

	if err := m.db.PingContext(ctx); err != nil {
		return repositories.ConnectionError(err)
	}

	return nil
}

// transactionalRepositories binds the repository set to one transaction
type transactionalRepositories struct {
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
	settingsRepo repositories.SettingsRepository
}

func newTransactionalRepositories(tx *sql.Tx, scope repositories.TenantScope, logger *logrus.Logger) repositories.TransactionalRepositories {
	return &transactionalRepositories{
		productRepo:  NewProductRepository(tx, scope, logger),
		customerRepo: NewCustomerRepository(tx, scope, logger),
		invoiceRepo:  NewInvoiceRepository(tx, scope, logger),
		settingsRepo: NewSettingsRepository(tx, scope, logger),
	}
}

func (t *transactionalRepositories) Products() repositories.ProductRepository {
	return t.productRepo
}

func (t *transactionalRepositories) Customers() repositories.CustomerRepository {
	return t.customerRepo
}

func (t *transactionalRepositories) Invoices() repositories.InvoiceRepository {
	return t.invoiceRepo
}

func (t *transactionalRepositories) Settings() repositories.SettingsRepository {
	return t.settingsRepo
}
