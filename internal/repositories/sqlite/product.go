package sqlite

import (
	"context"
	"database/sql"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ProductRepository implements the ProductRepository interface for SQLite
type ProductRepository struct {
	*BaseRepository
}

// NewProductRepository creates a new SQLite product repository
func NewProductRepository(db DBTX, scope repositories.TenantScope, logger *logrus.Logger) repositories.ProductRepository {
	return &ProductRepository{
		BaseRepository: NewBaseRepository(db, "products", scope, logger),
	}
}

const productColumns = `id, company_id, name, description, hsn_code, cgst, sgst, igst, price, unit, created_at, updated_at`

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return repositories.ValidationError("product", product.ID, err)
	}

	r.stampScope(&product.CompanyID)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.executeExec(ctx, "create", query,
		product.ID,
		product.CompanyID,
		product.Name,
		product.Description,
		product.HSNCode,
		product.CGST,
		product.SGST,
		product.IGST,
		product.Price,
		product.Unit,
		product.CreatedAt,
		product.UpdatedAt,
	)

	return err
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = ? AND company_id = ?`

	row := r.executeQueryRow(ctx, "get_by_id", query, id, r.companyID())

	product, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("product", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "product", id, err)
	}

	return product, nil
}

// Update updates an existing product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return repositories.ValidationError("product", product.ID, err)
	}

	product.UpdateTimestamp()

	query := `
		UPDATE products
		SET name = ?, description = ?, hsn_code = ?, cgst = ?, sgst = ?,
			igst = ?, price = ?, unit = ?, updated_at = ?
		WHERE id = ? AND company_id = ?`

	result, err := r.executeExec(ctx, "update", query,
		product.Name,
		product.Description,
		product.HSNCode,
		product.CGST,
		product.SGST,
		product.IGST,
		product.Price,
		product.Unit,
		product.UpdatedAt,
		product.ID,
		r.companyID(),
	)

	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", product.ID)
}

// Delete deletes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	query := "DELETE FROM products WHERE id = ? AND company_id = ?"
	result, err := r.executeExec(ctx, "delete", query, id, r.companyID())
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// List retrieves all products in scope, newest first
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = ?
		ORDER BY created_at DESC`

	rows, err := r.executeQuery(ctx, "list", query, r.companyID())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// Search performs a substring search on name, HSN code and description
func (r *ProductRepository) Search(ctx context.Context, search string, limit int) ([]*models.Product, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = ?
		  AND (name LIKE ? OR hsn_code LIKE ? OR COALESCE(description, '') LIKE ?)
		ORDER BY name
		LIMIT ?`

	pattern := "%" + search + "%"
	rows, err := r.executeQuery(ctx, "search", query, r.companyID(), pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// Count returns the number of products in scope
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	query := "SELECT COUNT(*) FROM products WHERE company_id = ?"
	row := r.executeQueryRow(ctx, "count", query, r.companyID())

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", "product", "", err)
	}
	return count, nil
}

// DeleteAll removes every product in scope
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	query := "DELETE FROM products WHERE company_id = ?"
	_, err := r.executeExec(ctx, "delete_all", query, r.companyID())
	return err
}

// collectProducts drains rows, skipping and logging corrupt records so
// one bad row does not abort a bulk read
func (r *ProductRepository) collectProducts(rows *sql.Rows) ([]*models.Product, error) {
	var products []*models.Product

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.logger.WithError(err).Warn("Skipping malformed product record")
			continue
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "product", "", err)
	}

	return products, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID,
		&product.CompanyID,
		&product.Name,
		&product.Description,
		&product.HSNCode,
		&product.CGST,
		&product.SGST,
		&product.IGST,
		&product.Price,
		&product.Unit,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
