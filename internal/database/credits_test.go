package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	credits := NewCreditLedgerService(db)
	service := &Service{
		db:      db,
		credits: credits,
	}

	// Use the actual schema initialization
	if err := service.initSchema(false); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := credits.InitSchema(); err != nil {
		t.Fatalf("Failed to create credit ledger schema: %v", err)
	}

	_, err = db.Exec("INSERT INTO sellers (id, name, email) VALUES (?, ?, ?)",
		"seller1", "Test Seller", "seller@example.com")
	if err != nil {
		t.Fatalf("Failed to insert test seller: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestProcessEntry_Grant(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	entry, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId:    "seller1",
		Amount:      2400,
		Reason:      models.CreditReasonRevenueConversion,
		ReferenceId: "req1",
	})
	if err != nil {
		t.Fatalf("ProcessEntry failed: %v", err)
	}

	if entry.SellerId != "seller1" {
		t.Errorf("Expected seller seller1, got %s", entry.SellerId)
	}
	if entry.Amount != 2400 {
		t.Errorf("Expected amount 2400, got %d", entry.Amount)
	}
	if entry.BalanceBefore != 0 {
		t.Errorf("Expected balance before 0, got %d", entry.BalanceBefore)
	}
	if entry.BalanceAfter != 2400 {
		t.Errorf("Expected balance after 2400, got %d", entry.BalanceAfter)
	}

	balance, err := service.GetCreditBalance(ctx, "seller1")
	if err != nil {
		t.Fatalf("GetCreditBalance failed: %v", err)
	}
	if balance != 2400 {
		t.Errorf("Expected balance 2400, got %d", balance)
	}
}

func TestProcessEntry_Spend(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: 1000, Reason: models.CreditReasonRevenueConversion, ReferenceId: "req1"})
	if err != nil {
		t.Fatalf("Initial grant failed: %v", err)
	}

	entry, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: -400, Reason: models.CreditReasonSpend, ReferenceId: "spend1"})
	if err != nil {
		t.Fatalf("Spend failed: %v", err)
	}

	if entry.BalanceAfter != 600 {
		t.Errorf("Expected balance 600, got %d", entry.BalanceAfter)
	}
}

func TestProcessEntry_InsufficientCredits(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: -100, Reason: models.CreditReasonSpend, ReferenceId: "spend1"})
	if err == nil {
		t.Fatalf("Expected insufficient credits error, got nil")
	}
	if !errors.Is(err, store.ErrInsufficientCredits) {
		t.Errorf("Expected insufficient credits error, got: %v", err)
	}

	// Balance must stay untouched
	balance, err := service.GetCreditBalance(ctx, "seller1")
	if err != nil {
		t.Fatalf("GetCreditBalance failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected balance 0, got %d", balance)
	}
}

func TestProcessEntry_DuplicateReference(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: 500, Reason: models.CreditReasonRevenueConversion, ReferenceId: "dup-ref"})
	if err != nil {
		t.Fatalf("First ProcessEntry failed: %v", err)
	}

	_, err = service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: 500, Reason: models.CreditReasonRevenueConversion, ReferenceId: "dup-ref"})
	if err == nil {
		t.Fatalf("Expected duplicate reference error, got nil")
	}
	if !errors.Is(err, store.ErrDuplicateReference) {
		t.Errorf("Expected duplicate reference error, got: %v", err)
	}

	balance, err := service.GetCreditBalance(ctx, "seller1")
	if err != nil {
		t.Fatalf("GetCreditBalance failed: %v", err)
	}
	if balance != 500 {
		t.Errorf("Expected balance 500, got %d", balance)
	}
}

func TestGetCreditBalance_NoAccount(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	balance, err := service.GetCreditBalance(context.Background(), "seller1")
	if err != nil {
		t.Fatalf("GetCreditBalance failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected balance 0, got %d", balance)
	}
}

func TestGetCreditHistory(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	for i, ref := range []string{"ref1", "ref2", "ref3"} {
		_, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
			SellerId: "seller1", Amount: int64(100 * (i + 1)), Reason: models.CreditReasonRevenueConversion, ReferenceId: ref})
		if err != nil {
			t.Fatalf("ProcessEntry %s failed: %v", ref, err)
		}
	}

	entries, err := service.GetCreditHistory(ctx, "seller1", 2, 0)
	if err != nil {
		t.Fatalf("GetCreditHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
}

func TestReconcileCreditBalance(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	_, err := service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: 800, Reason: models.CreditReasonRevenueConversion, ReferenceId: "ref1"})
	if err != nil {
		t.Fatalf("ProcessEntry failed: %v", err)
	}
	_, err = service.credits.ProcessEntry(ctx, store.CreditEntryParams{
		SellerId: "seller1", Amount: -300, Reason: models.CreditReasonSpend, ReferenceId: "ref2"})
	if err != nil {
		t.Fatalf("ProcessEntry failed: %v", err)
	}

	if err := service.ReconcileCreditBalance(ctx, "seller1"); err != nil {
		t.Errorf("ReconcileCreditBalance failed: %v", err)
	}
}
