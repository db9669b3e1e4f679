package sqlite

import (
	"context"
	"database/sql"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CustomerRepository implements the CustomerRepository interface for SQLite
type CustomerRepository struct {
	*BaseRepository
}

// NewCustomerRepository creates a new SQLite customer repository
func NewCustomerRepository(db DBTX, scope repositories.TenantScope, logger *logrus.Logger) repositories.CustomerRepository {
	return &CustomerRepository{
		BaseRepository: NewBaseRepository(db, "customers", scope, logger),
	}
}

const customerColumns = `id, company_id, name, address, gstin, state, state_code, contact, email, pan, notes, logo, bank_details, created_at, updated_at`

// Create creates a new customer
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := customer.Validate(); err != nil {
		return repositories.ValidationError("customer", customer.ID, err)
	}

	r.stampScope(&customer.CompanyID)

	var bankDetails sql.NullString
	if customer.BankDetails != nil {
		var err error
		bankDetails, err = marshalColumn(customer.BankDetails)
		if err != nil {
			return repositories.NewRepositoryError("create", "customer", customer.ID, err)
		}
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		customer.ID,
		customer.CompanyID,
		customer.Name,
		customer.Address,
		customer.GSTIN,
		customer.State,
		customer.StateCode,
		customer.Contact,
		customer.Email,
		customer.PAN,
		customer.Notes,
		customer.Logo,
		bankDetails,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = ? AND company_id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id, r.companyID())

	customer, err := scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("customer", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "customer", id, err)
	}

	return customer, nil
}

// Update updates an existing customer
func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	if err := customer.Validate(); err != nil {
		return repositories.ValidationError("customer", customer.ID, err)
	}

	customer.UpdateTimestamp()

	var bankDetails sql.NullString
	if customer.BankDetails != nil {
		var err error
		bankDetails, err = marshalColumn(customer.BankDetails)
		if err != nil {
			return repositories.NewRepositoryError("update", "customer", customer.ID, err)
		}
	}

	query := `
		UPDATE customers
		SET name = ?, address = ?, gstin = ?, state = ?, state_code = ?,
			contact = ?, email = ?, pan = ?, notes = ?, logo = ?,
			bank_details = ?, updated_at = ?
		WHERE id = ? AND company_id = ?`

	result, err := r.executeExec(ctx, "update", query,
		customer.Name,
		customer.Address,
		customer.GSTIN,
		customer.State,
		customer.StateCode,
		customer.Contact,
		customer.Email,
		customer.PAN,
		customer.Notes,
		customer.Logo,
		bankDetails,
		customer.UpdatedAt,
		customer.ID,
		r.companyID(),
	)

	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", customer.ID)
}

// Delete deletes a customer by ID
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	query := "DELETE FROM customers WHERE id = ? AND company_id = ?"
	result, err := r.executeExec(ctx, "delete", query, id, r.companyID())
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// List retrieves all customers in scope, newest first
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE company_id = ?
		ORDER BY created_at DESC`

	rows, err := r.executeQuery(ctx, "list", query, r.companyID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectCustomers(rows)
}

// Search performs a substring search on name, GSTIN, email and contact
func (r *CustomerRepository) Search(ctx context.Context, search string, limit int) ([]*models.Customer, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE company_id = ?
		  AND (name LIKE ? OR gstin LIKE ? OR email LIKE ? OR contact LIKE ?)
		ORDER BY name
		LIMIT ?`

	pattern := "%" + search + "%"
	rows, err := r.executeQuery(ctx, "search", query, r.companyID(), pattern, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectCustomers(rows)
}

// Count returns the number of customers in scope
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	query := "SELECT COUNT(*) FROM customers WHERE company_id = ?"
	row := r.executeQueryRow(ctx, "count", query, r.companyID())

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "customer", "", err)
	}
	return count, nil
}

// DeleteAll removes every customer in scope
func (r *CustomerRepository) DeleteAll(ctx context.Context) error {
	query := "DELETE FROM customers WHERE company_id = ?"
	_, err := r.executeExec(ctx, "delete_all", query, r.companyID())
	return err
}

// collectCustomers drains rows, skipping and logging corrupt records
func (r *CustomerRepository) collectCustomers(rows *sql.Rows) ([]*models.Customer, error) {
	var customers []*models.Customer

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.logger.WithError(err).Warn("Skipping malformed customer record")
			continue
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "customer", "", err)
	}

	return customers, nil
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}
	var bankDetails sql.NullString

	err := row.Scan(
		&customer.ID,
		&customer.CompanyID,
		&customer.Name,
		&customer.Address,
		&customer.GSTIN,
		&customer.State,
		&customer.StateCode,
		&customer.Contact,
		&customer.Email,
		&customer.PAN,
		&customer.Notes,
		&customer.Logo,
		&bankDetails,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bankDetails.Valid && bankDetails.String != "" {
		details := &models.BankDetails{}
		if err := unmarshalColumn(bankDetails, details); err != nil {
			return nil, repositories.MalformedDataError("customer", customer.ID, err)
		}
		customer.BankDetails = details
	}

	return customer, nil
}
