package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"gst-invoice-api/internal/models"
	"gst-invoice-api/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	tempDir, err := os.MkdirTemp("", "sqlite_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tempDir, "test.db")
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_initial_schema.up.sql"))
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tempDir)
	}

	return db, cleanup
}

func testScope() repositories.TenantScope {
	return repositories.TenantScope{CompanyID: "test-co"}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

func TestCustomerRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCustomerRepository(db, testScope(), testLogger())
	ctx := context.Background()

	customer := models.NewCustomer("Sharma Traders")
	customer.GSTIN = "27AAAPL1234C1Z5"
	customer.State = "Maharashtra"
	customer.StateCode = "27"
	customer.Email = "accounts@sharmatraders.in"

	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}

	if retrieved.ID != customer.ID {
		t.Errorf("Retrieved customer ID = %s, want %s", retrieved.ID, customer.ID)
	}
	if retrieved.Name != customer.Name {
		t.Errorf("Retrieved customer Name = %s, want %s", retrieved.Name, customer.Name)
	}
	if retrieved.GSTIN != customer.GSTIN {
		t.Errorf("Retrieved customer GSTIN = %s, want %s", retrieved.GSTIN, customer.GSTIN)
	}
	if retrieved.CompanyID != "test-co" {
		t.Errorf("Retrieved customer CompanyID = %s, want the tenant stamp", retrieved.CompanyID)
	}
}

func TestCustomerRepository_BankDetailsRoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCustomerRepository(db, testScope(), testLogger())
	ctx := context.Background()

	customer := models.NewCustomer("Acme Industries")
	customer.BankDetails = &models.BankDetails{
		BankName:      "State Bank of India",
		AccountNumber: "12345678901",
		IFSCCode:      "SBIN0001234",
		Branch:        "Pune Main",
	}

	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}

	if retrieved.BankDetails == nil {
		t.Fatal("BankDetails not restored")
	}
	if retrieved.BankDetails.IFSCCode != "SBIN0001234" {
		t.Errorf("IFSCCode = %s, want SBIN0001234", retrieved.BankDetails.IFSCCode)
	}
}

func TestCustomerRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCustomerRepository(db, testScope(), testLogger())
	ctx := context.Background()

	customer := models.NewCustomer("Gupta Enterprises")
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	customer.Contact = "9876543210"
	customer.Address = "45 FC Road, Pune"

	if err := repo.Update(ctx, customer); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	retrieved, err := repo.GetByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("GetByID() after update failed: %v", err)
	}

	if retrieved.Contact != "9876543210" {
		t.Errorf("Updated contact = %s, want 9876543210", retrieved.Contact)
	}
	if retrieved.Address != "45 FC Road, Pune" {
		t.Errorf("Updated address = %s, want 45 FC Road, Pune", retrieved.Address)
	}
}

func TestCustomerRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCustomerRepository(db, testScope(), testLogger())
	ctx := context.Background()

	customer := models.NewCustomer("Mehta & Sons")
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := repo.Delete(ctx, customer.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	_, err := repo.GetByID(ctx, customer.ID)
	if !repositories.IsNotFound(err) {
		t.Errorf("GetByID() after delete = %v, want not-found", err)
	}

	if err := repo.Delete(ctx, customer.ID); !repositories.IsNotFound(err) {
		t.Errorf("Delete() of a missing customer = %v, want not-found", err)
	}
}

func TestCustomerRepository_Search(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCustomerRepository(db, testScope(), testLogger())
	ctx := context.Background()

	first := models.NewCustomer("Sharma Traders")
	first.GSTIN = "27AAAPL1234C1Z5"
	second := models.NewCustomer("Gupta Enterprises")

	for _, c := range []*models.Customer{first, second} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
	}

	byName, err := repo.Search(ctx, "sharma", 10)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(byName) != 1 || byName[0].ID != first.ID {
		t.Errorf("Search by name returned %d results, want the one match", len(byName))
	}

	byGSTIN, err := repo.Search(ctx, "27AAAPL", 10)
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(byGSTIN) != 1 || byGSTIN[0].ID != first.ID {
		t.Errorf("Search by GSTIN returned %d results, want the one match", len(byGSTIN))
	}
}

func TestCustomerRepository_TenantScope(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repoA := NewCustomerRepository(db, repositories.TenantScope{CompanyID: "company-a"}, testLogger())
	repoB := NewCustomerRepository(db, repositories.TenantScope{CompanyID: "company-b"}, testLogger())

	customer := models.NewCustomer("Sharma Traders")
	if err := repoA.Create(ctx, customer); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// The other tenant must not see or delete the record
	if _, err := repoB.GetByID(ctx, customer.ID); !repositories.IsNotFound(err) {
		t.Errorf("cross-tenant GetByID() = %v, want not-found", err)
	}

	listB, err := repoB.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(listB) != 0 {
		t.Errorf("cross-tenant List() returned %d customers, want 0", len(listB))
	}

	if err := repoB.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() failed: %v", err)
	}
	if _, err := repoA.GetByID(ctx, customer.ID); err != nil {
		t.Errorf("owning tenant lost its record to a cross-tenant DeleteAll: %v", err)
	}
}
