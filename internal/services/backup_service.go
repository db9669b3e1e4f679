package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// backupService implements the BackupService interface: a faithful,
// complete snapshot of every collection plus the current seller, and the
// destructive all-or-nothing restore path.
type backupService struct {
	repoManager repositories.RepositoryManager
	logger      *logrus.Logger
}

// NewBackupService creates a new backup service instance
func NewBackupService(repoManager repositories.RepositoryManager, logger *logrus.Logger) BackupService {
	if logger == nil {
		logger = logrus.New()
	}
	return &backupService{
		repoManager: repoManager,
		logger:      logger,
	}
}

// ExportAll snapshots every record of every collection verbatim. No field
// is dropped and nothing is recomputed; this is the disaster-recovery
// path.
func (s *backupService) ExportAll(ctx context.Context) (*models.BackupDocument, error) {
	products, err := s.repoManager.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export products: %w", err)
	}

	customers, err := s.repoManager.Customers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export customers: %w", err)
	}

	invoices, err := s.repoManager.Invoices().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export invoices: %w", err)
	}

	doc := &models.BackupDocument{
		Products:  products,
		Customers: customers,
		Invoices:  invoices,
	}

	sellerData, err := s.repoManager.Settings().Get(ctx, SettingKeyCurrentSeller)
	if err == nil {
		seller := &models.Customer{}
		if err := json.Unmarshal(sellerData, seller); err != nil {
			return nil, fmt.Errorf("failed to decode seller setting: %w", err)
		}
		doc.CurrentSeller = seller
	} else if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("failed to export seller setting: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"products":  len(doc.Products),
		"customers": len(doc.Customers),
		"invoices":  len(doc.Invoices),
	}).Info("Backup export completed")

	return doc, nil
}

// ImportAll destructively replaces all collections from a backup
// document. The writes run in one transaction: if any collection fails,
// no partial state is left behind.
func (s *backupService) ImportAll(ctx context.Context, doc *models.BackupDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrMalformedBackup)
	}

	err := s.repoManager.WithTransaction(ctx, func(repos repositories.TransactionalRepositories) error {
		if err := repos.Products().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear products: %w", err)
		}
		if err := repos.Customers().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear customers: %w", err)
		}
		if err := repos.Invoices().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		for _, product := range doc.Products {
			if err := repos.Products().Create(ctx, product); err != nil {
				return fmt.Errorf("failed to import product %s: %w", product.ID, err)
			}
		}

		for _, customer := range doc.Customers {
			if err := repos.Customers().Create(ctx, customer); err != nil {
				return fmt.Errorf("failed to import customer %s: %w", customer.ID, err)
			}
		}

		for _, invoice := range doc.Invoices {
			if err := repos.Invoices().Create(ctx, invoice); err != nil {
				return fmt.Errorf("failed to import invoice %s: %w", invoice.ID, err)
			}
		}

		if doc.CurrentSeller != nil {
			data, err := json.Marshal(doc.CurrentSeller)
			if err != nil {
				return fmt.Errorf("failed to encode seller setting: %w", err)
			}
			if err := repos.Settings().Set(ctx, SettingKeyCurrentSeller, data); err != nil {
				return fmt.Errorf("failed to import seller setting: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"products":  len(doc.Products),
		"customers": len(doc.Customers),
		"invoices":  len(doc.Invoices),
	}).Info("Backup import completed")

	return nil
}

// ImportRaw parses a backup JSON document and imports it. A parse failure
// aborts before any write.
func (s *backupService) ImportRaw(ctx context.Context, data []byte) error {
	doc := &models.BackupDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	return s.ImportAll(ctx, doc)
}
