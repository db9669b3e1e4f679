package sqlite

import (
	"context"
	"database/sql"
	"time"

	"gst-invoice-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SettingsRepository implements the singular key/value settings store for
// SQLite. It holds the currentSeller setting and the fy-archive buckets.
type SettingsRepository struct {
	*BaseRepository
}

// NewSettingsRepository creates a new SQLite settings repository
func NewSettingsRepository(db DBTX, scope repositories.TenantScope, logger *logrus.Logger) repositories.SettingsRepository {
	return &SettingsRepository{
		BaseRepository: NewBaseRepository(db, "settings", scope, logger),
	}
}

// Get retrieves the raw value stored under key
func (r *SettingsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := r.validateID(key); err != nil {
		return nil, err
	}

	query := "SELECT value FROM settings WHERE company_id = ? AND key = ?"
	row := r.executeQueryRow(ctx, "get", query, r.companyID(), key)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.NotFoundError("setting", key)
		}
		return nil, repositories.NewRepositoryError("get", "setting", key, err)
	}

	return []byte(value), nil
}

// Set stores value under key, replacing any prior value
func (r *SettingsRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.validateID(key); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (company_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (company_id, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.executeExec(ctx, "set", query, r.companyID(), key, string(value), time.Now())
	return err
}

// Delete removes the value stored under key
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	if err := r.validateID(key); err != nil {
		return err
	}

	query := "DELETE FROM settings WHERE company_id = ? AND key = ?"
	result, err := r.executeExec(ctx, "delete", query, r.companyID(), key)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", key)
}

// ListKeys returns all keys with the given prefix
func (r *SettingsRepository) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key FROM settings
		WHERE company_id = ? AND key LIKE ?
		ORDER BY key`

	rows, err := r.executeQuery(ctx, "list_keys", query, r.companyID(), prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, repositories.NewRepositoryError("list_keys", "setting", "", err)
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_keys", "setting", "", err)
	}

	return keys, nil
}
