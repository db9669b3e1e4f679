package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

// SettingKeyFinancialYear is the settings-store key the live FY token
// lives under
const SettingKeyFinancialYear = "currentFinancialYear"

// fiscalYearService implements the FiscalYearService interface. It
// partitions invoices by the April-March financial year: archival
// snapshots the live invoice set under a year key and clears it, inside
// a single transaction.
type fiscalYearService struct {
	repoManager repositories.RepositoryManager
	now         func() time.Time
	logger      *logrus.Logger
}

// NewFiscalYearService creates a new fiscal year service instance
func NewFiscalYearService(repoManager repositories.RepositoryManager, logger *logrus.Logger) FiscalYearService {
	if logger == nil {
		logger = logrus.New()
	}
	return &fiscalYearService{
		repoManager: repoManager,
		now:         time.Now,
		logger:      logger,
	}
}

// CurrentFinancialYear returns the live FY token, initializing it from
// today's date when none is stored yet
func (s *fiscalYearService) CurrentFinancialYear(ctx context.Context) (string, error) {
	data, err := s.repoManager.Settings().Get(ctx, SettingKeyFinancialYear)
	if err != nil {
		if repositories.IsNotFound(err) {
			token := models.FinancialYearFor(s.now())
			if err := s.storeToken(ctx, s.repoManager.Settings(), token); err != nil {
				return "", err
			}
			return token, nil
		}
		return "", fmt.Errorf("failed to load financial year setting: %w", err)
	}

	var token string
	if err := json.Unmarshal(data, &token); err != nil {
		return "", fmt.Errorf("failed to decode financial year setting: %w", err)
	}

	return token, nil
}

// StartNewFinancialYear archives the live invoice set under today's
// nominal FY token and clears it. The token is recomputed from today's
// date, so calling this twice within one fiscal year re-archives under
// the same key, overwriting the prior archive.
func (s *fiscalYearService) StartNewFinancialYear(ctx context.Context) (*RolloverResult, error) {
	archiveToken := models.FinancialYearFor(s.now())
	newToken := models.FinancialYearFor(s.now())
	return s.rollover(ctx, archiveToken, newToken)
}

// SaveAndStartNewYear archives the live invoice set under the current FY
// token and advances the token by exactly one year pair, regardless of
// today's date. This is the deterministic close-the-books operation;
// repeated calls never collide on an archive key.
func (s *fiscalYearService) SaveAndStartNewYear(ctx context.Context) (*RolloverResult, error) {
	current, err := s.CurrentFinancialYear(ctx)
	if err != nil {
		return nil, err
	}

	next, err := models.NextFinancialYear(current)
	if err != nil {
		return nil, fmt.Errorf("failed to advance financial year: %w", err)
	}

	return s.rollover(ctx, current, next)
}

// rollover snapshots the live set under archiveToken, clears it, and
// stores newToken as the live FY. All writes happen in one transaction:
// either the archive, the cleared live set and the token all land, or
// none do.
func (s *fiscalYearService) rollover(ctx context.Context, archiveToken, newToken string) (*RolloverResult, error) {
	var result *RolloverResult

	err := s.repoManager.WithTransaction(ctx, func(repos repositories.TransactionalRepositories) error {
		invoices, err := repos.Invoices().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list live invoices: %w", err)
		}

		archive := models.NewFinancialYearArchive(invoices)

		data, err := json.Marshal(archive)
		if err != nil {
			return fmt.Errorf("failed to encode archive: %w", err)
		}

		if err := repos.Settings().Set(ctx, models.ArchiveKey(archiveToken), data); err != nil {
			return fmt.Errorf("failed to store archive: %w", err)
		}

		if err := repos.Invoices().DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear live invoice set: %w", err)
		}

		if err := s.storeToken(ctx, repos.Settings(), newToken); err != nil {
			return err
		}

		result = &RolloverResult{
			ArchivedYear:     archiveToken,
			NewFinancialYear: newToken,
			Summary:          archive.Summary,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"archived_year":  result.ArchivedYear,
		"new_year":       result.NewFinancialYear,
		"total_invoices": result.Summary.TotalInvoices,
		"total_amount":   result.Summary.TotalAmount,
	}).Info("Financial year rollover completed")

	return result, nil
}

// ListArchivedYears returns the archived FY tokens
func (s *fiscalYearService) ListArchivedYears(ctx context.Context) ([]string, error) {
	keys, err := s.repoManager.Settings().ListKeys(ctx, models.ArchiveKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive keys: %w", err)
	}

	tokens := make([]string, 0, len(keys))
	for _, key := range keys {
		if token, ok := models.TokenFromArchiveKey(key); ok {
			tokens = append(tokens, token)
		}
	}

	return tokens, nil
}

// GetArchivedYear returns an archived year's snapshot verbatim. Archives
// are read-only to the live application.
func (s *fiscalYearService) GetArchivedYear(ctx context.Context, token string) (*models.FinancialYearArchive, error) {
	data, err := s.repoManager.Settings().Get(ctx, models.ArchiveKey(token))
	if err != nil {
		return nil, fmt.Errorf("failed to load archive %s: %w", token, err)
	}

	archive := &models.FinancialYearArchive{}
	if err := json.Unmarshal(data, archive); err != nil {
		return nil, fmt.Errorf("failed to decode archive %s: %w", token, err)
	}

	return archive, nil
}

func (s *fiscalYearService) storeToken(ctx context.Context, settings repositories.SettingsRepository, token string) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode financial year token: %w", err)
	}
	if err := settings.Set(ctx, SettingKeyFinancialYear, data); err != nil {
		return fmt.Errorf("failed to store financial year token: %w", err)
	}
	return nil
}
