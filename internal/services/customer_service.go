package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// customerService implements the CustomerService interface
type customerService struct {
	customerRepo  repositories.CustomerRepository
	sellerService SellerService
	validator     *validator.Validate
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(customerRepo repositories.CustomerRepository, sellerService SellerService) CustomerService {
	return &customerService{
		customerRepo:  customerRepo,
		sellerService: sellerService,
		validator:     validator.New(),
	}
}

// CreateCustomer creates a new customer. A record flagged as the seller
// is additionally copied into the current seller setting; there is no
// structural distinction between the two.
func (s *customerService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	if req == nil {
		return nil, fmt.Errorf("create customer request cannot be nil")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.GSTIN != "" {
		if err := models.ValidateGSTIN(req.GSTIN); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidGSTIN, req.GSTIN)
		}
	}
	if req.PAN != "" {
		if err := models.ValidatePAN(req.PAN); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPAN, req.PAN)
		}
	}

	customer := models.NewCustomer(req.Name)
	customer.Address = req.Address
	customer.GSTIN = req.GSTIN
	customer.State = req.State
	customer.StateCode = req.StateCode
	customer.Contact = req.Contact
	customer.Email = req.Email
	customer.PAN = req.PAN
	customer.Notes = req.Notes
	customer.Logo = req.Logo
	customer.BankDetails = req.BankDetails
	customer.DerivePAN()

	if customer.StateCode == "" && customer.GSTIN != "" {
		if code, err := models.StateCodeFromGSTIN(customer.GSTIN); err == nil {
			customer.StateCode = code
		}
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	if req.IsSeller {
		if err := s.sellerService.SetSeller(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to set seller from customer: %w", err)
		}
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("customer ID cannot be empty")
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

// UpdateCustomer updates an existing customer. Invoices embed buyer
// snapshots, so edits here never alter historical invoices.
func (s *customerService) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("customer ID cannot be empty")
	}

	if req == nil {
		return nil, fmt.Errorf("update customer request cannot be nil")
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.GSTIN != nil {
		if *req.GSTIN != "" {
			if err := models.ValidateGSTIN(*req.GSTIN); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidGSTIN, *req.GSTIN)
			}
		}
		customer.GSTIN = *req.GSTIN
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.StateCode != nil {
		customer.StateCode = *req.StateCode
	}
	if req.Contact != nil {
		customer.Contact = *req.Contact
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.PAN != nil {
		if *req.PAN != "" {
			if err := models.ValidatePAN(*req.PAN); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPAN, *req.PAN)
			}
		}
		customer.PAN = *req.PAN
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}
	if req.Logo != nil {
		customer.Logo = req.Logo
	}
	if req.BankDetails != nil {
		customer.BankDetails = req.BankDetails
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// DeleteCustomer deletes a customer by ID. Invoices referencing the
// customer keep rendering via the sentinel buyer.
func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("customer ID cannot be empty")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

// ListCustomers retrieves all customers
func (s *customerService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// SearchCustomers performs a substring search on customer data
func (s *customerService) SearchCustomers(ctx context.Context, query string, limit int) ([]*models.Customer, error) {
	customers, err := s.customerRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}
