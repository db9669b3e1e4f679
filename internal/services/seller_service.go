package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// SettingKeyCurrentSeller is the settings-store key the current seller
// profile lives under
const SettingKeyCurrentSeller = "currentSeller"

// sellerService implements the SellerService interface. The current
// seller is a singular configuration entity: loaded explicitly, mutated
// only through SetSeller, and passed as a parameter into every
// calculation that needs it.
type sellerService struct {
	settingsRepo repositories.SettingsRepository
	customerRepo repositories.CustomerRepository
	logger       *logrus.Logger
}

// NewSellerService creates a new seller service instance
func NewSellerService(settingsRepo repositories.SettingsRepository, customerRepo repositories.CustomerRepository, logger *logrus.Logger) SellerService {
	if logger == nil {
		logger = logrus.New()
	}
	return &sellerService{
		settingsRepo: settingsRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GetSeller returns the configured seller, or ErrMissingSeller when no
// seller has been set up
func (s *sellerService) GetSeller(ctx context.Context) (*models.Customer, error) {
	data, err := s.settingsRepo.Get(ctx, SettingKeyCurrentSeller)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrMissingSeller
		}
		return nil, fmt.Errorf("failed to load seller setting: %w", err)
	}

	seller := &models.Customer{}
	if err := json.Unmarshal(data, seller); err != nil {
		return nil, fmt.Errorf("failed to decode seller setting: %w", err)
	}

	return seller, nil
}

// SetSeller stores the current seller setting
func (s *sellerService) SetSeller(ctx context.Context, seller *models.Customer) error {
	if seller == nil {
		return fmt.Errorf("seller cannot be nil")
	}

	if err := seller.Validate(); err != nil {
		return fmt.Errorf("seller validation failed: %w", err)
	}

	seller.DerivePAN()

	data, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("failed to encode seller setting: %w", err)
	}

	if err := s.settingsRepo.Set(ctx, SettingKeyCurrentSeller, data); err != nil {
		return fmt.Errorf("failed to store seller setting: %w", err)
	}

	s.logger.WithField("seller_id", seller.ID).Info("Current seller updated")
	return nil
}

// SetSellerFromCustomer copies an existing customer record into the
// current seller setting
func (s *sellerService) SetSellerFromCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if err := s.SetSeller(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}
