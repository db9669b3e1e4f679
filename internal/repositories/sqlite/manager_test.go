package sqlite

import (
	"context"
	"errors"
	"testing"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"
)

func TestSettingsRepository_SetGetDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(db, testScope(), testLogger())
	ctx := context.Background()

	if _, err := repo.Get(ctx, "currentSeller"); !repositories.IsNotFound(err) {
		t.Errorf("Get() of a missing key = %v, want not-found", err)
	}

	if err := repo.Set(ctx, "currentSeller", []byte(`{"name":"Acme"}`)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, err := repo.Get(ctx, "currentSeller")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(value) != `{"name":"Acme"}` {
		t.Errorf("Get() = %s, want the stored JSON", value)
	}

	// Set replaces the prior value
	if err := repo.Set(ctx, "currentSeller", []byte(`{"name":"Zenith"}`)); err != nil {
		t.Fatalf("Set() replace failed: %v", err)
	}
	value, err = repo.Get(ctx, "currentSeller")
	if err != nil {
		t.Fatalf("Get() after replace failed: %v", err)
	}
	if string(value) != `{"name":"Zenith"}` {
		t.Errorf("Get() after replace = %s, want the new value", value)
	}

	if err := repo.Delete(ctx, "currentSeller"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := repo.Get(ctx, "currentSeller"); !repositories.IsNotFound(err) {
		t.Errorf("Get() after delete = %v, want not-found", err)
	}
}

func TestSettingsRepository_ListKeys(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewSettingsRepository(db, testScope(), testLogger())
	ctx := context.Background()

	for _, key := range []string{"fy-archive:2023-2024", "fy-archive:2022-2023", "currentSeller"} {
		if err := repo.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}

	keys, err := repo.ListKeys(ctx, models.ArchiveKeyPrefix)
	if err != nil {
		t.Fatalf("ListKeys() failed: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("ListKeys() returned %d keys, want 2", len(keys))
	}
	if keys[0] != "fy-archive:2022-2023" || keys[1] != "fy-archive:2023-2024" {
		t.Errorf("ListKeys() = %v, want sorted archive keys", keys)
	}
}

func TestRepositoryManager_WithTransactionCommit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	manager := NewRepositoryManager(db, testScope(), testLogger())
	ctx := context.Background()

	err := manager.WithTransaction(ctx, func(repos repositories.TransactionalRepositories) error {
		if err := repos.Customers().Create(ctx, models.NewCustomer("Sharma Traders")); err != nil {
			return err
		}
		return repos.Settings().Set(ctx, "currentFinancialYear", []byte(`"2024-2025"`))
	})
	if err != nil {
		t.Fatalf("WithTransaction() failed: %v", err)
	}

	count, err := manager.Customers().Count(ctx)
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1 after commit", count)
	}
	if _, err := manager.Settings().Get(ctx, "currentFinancialYear"); err != nil {
		t.Errorf("committed setting missing: %v", err)
	}
}

func TestRepositoryManager_WithTransactionRollback(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	manager := NewRepositoryManager(db, testScope(), testLogger())
	ctx := context.Background()

	existing := models.NewCustomer("Gupta Enterprises")
	if err := manager.Customers().Create(ctx, existing); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	failure := errors.New("boom")
	err := manager.WithTransaction(ctx, func(repos repositories.TransactionalRepositories) error {
		if err := repos.Customers().DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Customers().Create(ctx, models.NewCustomer("Sharma Traders")); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("WithTransaction() = %v, want the fn error", err)
	}

	// All writes inside the failed transaction must be rolled back
	customers, err := manager.Customers().List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != existing.ID {
		t.Errorf("List() = %d customers after rollback, want the original record only", len(customers))
	}
}
