package services

import (
	"context"
	"sort"
	"strings"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// fakeStore is the in-memory state shared by the fake repositories. The
// fail* fields let tests inject storage errors at specific write points.
type fakeStore struct {
	products  []*models.Product
	customers []*models.Customer
	invoices  []*models.Invoice
	settings  map[string][]byte

	failInvoiceCreate  error
	failSettingsSetKey string
	failSettingsSetErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: map[string][]byte{}}
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		products:  append([]*models.Product(nil), s.products...),
		customers: append([]*models.Customer(nil), s.customers...),
		invoices:  append([]*models.Invoice(nil), s.invoices...),
		settings:  make(map[string][]byte, len(s.settings)),

		failInvoiceCreate:  s.failInvoiceCreate,
		failSettingsSetKey: s.failSettingsSetKey,
		failSettingsSetErr: s.failSettingsSetErr,
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	return c
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	r.store.products = append(r.store.products, product)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	for _, p := range r.store.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.NotFoundError("product", id)
}

func (r *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	for i, p := range r.store.products {
		if p.ID == product.ID {
			r.store.products[i] = product
			return nil
		}
	}
	return repositories.NotFoundError("product", product.ID)
}

func (r *fakeProductRepo) Delete(ctx context.Context, id string) error {
	for i, p := range r.store.products {
		if p.ID == id {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return nil
		}
	}
	return repositories.NotFoundError("product", id)
}

func (r *fakeProductRepo) List(ctx context.Context) ([]*models.Product, error) {
	return append([]*models.Product(nil), r.store.products...), nil
}

func (r *fakeProductRepo) Search(ctx context.Context, query string, limit int) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range r.store.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.products)), nil
}

func (r *fakeProductRepo) DeleteAll(ctx context.Context) error {
	r.store.products = nil
	return nil
}

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	r.store.customers = append(r.store.customers, customer)
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	for _, c := range r.store.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.NotFoundError("customer", id)
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	for i, c := range r.store.customers {
		if c.ID == customer.ID {
			r.store.customers[i] = customer
			return nil
		}
	}
	return repositories.NotFoundError("customer", customer.ID)
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id string) error {
	for i, c := range r.store.customers {
		if c.ID == id {
			r.store.customers = append(r.store.customers[:i], r.store.customers[i+1:]...)
			return nil
		}
	}
	return repositories.NotFoundError("customer", id)
}

func (r *fakeCustomerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	return append([]*models.Customer(nil), r.store.customers...), nil
}

func (r *fakeCustomerRepo) Search(ctx context.Context, query string, limit int) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range r.store.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.customers)), nil
}

func (r *fakeCustomerRepo) DeleteAll(ctx context.Context) error {
	r.store.customers = nil
	return nil
}

type fakeInvoiceRepo struct{ store *fakeStore }

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	if r.store.failInvoiceCreate != nil {
		return r.store.failInvoiceCreate
	}
	r.store.invoices = append(r.store.invoices, invoice)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	for _, inv := range r.store.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, repositories.NotFoundError("invoice", id)
}

func (r *fakeInvoiceRepo) Update(ctx context.Context, invoice *models.Invoice) error {
	for i, inv := range r.store.invoices {
		if inv.ID == invoice.ID {
			r.store.invoices[i] = invoice
			return nil
		}
	}
	return repositories.NotFoundError("invoice", invoice.ID)
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	for i, inv := range r.store.invoices {
		if inv.ID == id {
			r.store.invoices = append(r.store.invoices[:i], r.store.invoices[i+1:]...)
			return nil
		}
	}
	return repositories.NotFoundError("invoice", id)
}

func (r *fakeInvoiceRepo) List(ctx context.Context) ([]*models.Invoice, error) {
	return append([]*models.Invoice(nil), r.store.invoices...), nil
}

func (r *fakeInvoiceRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.invoices)), nil
}

func (r *fakeInvoiceRepo) DeleteAll(ctx context.Context) error {
	r.store.invoices = nil
	return nil
}

type fakeSettingsRepo struct{ store *fakeStore }

func (r *fakeSettingsRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if value, ok := r.store.settings[key]; ok {
		return value, nil
	}
	return nil, repositories.NotFoundError("setting", key)
}

func (r *fakeSettingsRepo) Set(ctx context.Context, key string, value []byte) error {
	if r.store.failSettingsSetErr != nil && key == r.store.failSettingsSetKey {
		return r.store.failSettingsSetErr
	}
	r.store.settings[key] = value
	return nil
}

func (r *fakeSettingsRepo) Delete(ctx context.Context, key string) error {
	if _, ok := r.store.settings[key]; !ok {
		return repositories.NotFoundError("setting", key)
	}
	delete(r.store.settings, key)
	return nil
}

func (r *fakeSettingsRepo) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range r.store.settings {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// fakeRepoManager backs the services with the in-memory store. Its
// transactions run against a clone of the store and commit by swapping
// the clone in, so a failed fn leaves the original state untouched.
type fakeRepoManager struct{ store *fakeStore }

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{store: newFakeStore()}
}

func (m *fakeRepoManager) Products() repositories.ProductRepository {
	return &fakeProductRepo{store: m.store}
}

func (m *fakeRepoManager) Customers() repositories.CustomerRepository {
	return &fakeCustomerRepo{store: m.store}
}

func (m *fakeRepoManager) Invoices() repositories.InvoiceRepository {
	return &fakeInvoiceRepo{store: m.store}
}

func (m *fakeRepoManager) Settings() repositories.SettingsRepository {
	return &fakeSettingsRepo{store: m.store}
}

func (m *fakeRepoManager) WithTransaction(ctx context.Context, fn func(repos repositories.TransactionalRepositories) error) error {
	tx := m.store.clone()
	if err := fn(&fakeRepoManager{store: tx}); err != nil {
		return err
	}
	*m.store = *tx
	return nil
}

func (m *fakeRepoManager) Close() error { return nil }

func (m *fakeRepoManager) Health(ctx context.Context) error { return nil }
