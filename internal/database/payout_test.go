package database

import (
	"context"
	"testing"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func testContact() models.PayoutContact {
	return models.PayoutContact{
		Name:          "Alice Example",
		Email:         "alice@example.com",
		Phone:         "+1-555-0100",
		PayoutAccount: "acct_123",
	}
}

func TestReserveForPayout(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
	}
	recordTestSale(t, service, "seller1", models.SaleSourceCrypto, 750)

	// 800 cents at 200 per sale needs 4 backing sales.
	result, err := service.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    "seller1",
		AmountCents: 800,
		SalesNeeded: 4,
		Contact:     testContact(),
	})
	if err != nil {
		t.Fatalf("ReserveForPayout failed: %v", err)
	}
	if result.ReservedCount != 4 {
		t.Errorf("Expected 4 reserved sales, got %d", result.ReservedCount)
	}

	reserved, err := service.GetSalesByRequest(ctx, result.RequestId)
	if err != nil {
		t.Fatalf("GetSalesByRequest failed: %v", err)
	}
	if len(reserved) != 4 {
		t.Fatalf("Expected 4 sales tied to request, got %d", len(reserved))
	}
	for _, sale := range reserved {
		if sale.RevenueStatus != models.RevenueStatusPaymentRequested {
			t.Errorf("Expected sale %s in payment_requested, got %s", sale.Id, sale.RevenueStatus)
		}
	}

	pending, err := service.SumPendingPayoutCents(ctx, "seller1")
	if err != nil {
		t.Fatalf("SumPendingPayoutCents failed: %v", err)
	}
	if pending != 800 {
		t.Errorf("Expected 800 cents pending, got %d", pending)
	}
}

func TestReserveForPayout_PerTableCap(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
		recordTestSale(t, service, "seller1", models.SaleSourceCrypto, 500)
	}

	// Each checkout table contributes at most SalesNeeded rows, so a
	// request needing 3 can reserve up to 6 across both tables.
	result, err := service.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    "seller1",
		AmountCents: 600,
		SalesNeeded: 3,
		Contact:     testContact(),
	})
	if err != nil {
		t.Fatalf("ReserveForPayout failed: %v", err)
	}
	if result.ReservedCount != 6 {
		t.Errorf("Expected 6 reserved sales, got %d", result.ReservedCount)
	}

	for _, source := range saleSources() {
		available, err := service.CountAvailableSales(ctx, "seller1", source)
		if err != nil {
			t.Fatalf("CountAvailableSales failed: %v", err)
		}
		if available != 2 {
			t.Errorf("Expected 2 available %s sales remaining, got %d", source, available)
		}
	}
}

func TestReserveForPayout_ContactPersisted(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)

	contact := testContact()
	result, err := service.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    "seller1",
		AmountCents: 200,
		SalesNeeded: 1,
		Contact:     contact,
	})
	if err != nil {
		t.Fatalf("ReserveForPayout failed: %v", err)
	}

	requests, err := service.GetRevenueRequests(ctx, "seller1")
	if err != nil {
		t.Fatalf("GetRevenueRequests failed: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(requests))
	}

	req := requests[0]
	if req.Id != result.RequestId {
		t.Errorf("Expected request id %s, got %s", result.RequestId, req.Id)
	}
	if req.RequestType != models.RequestTypeStripePayment {
		t.Errorf("Expected type %s, got %s", models.RequestTypeStripePayment, req.RequestType)
	}
	if req.Status != models.RequestStatusPending {
		t.Errorf("Expected status pending, got %s", req.Status)
	}
	if req.ContactName != contact.Name || req.ContactEmail != contact.Email ||
		req.ContactPhone != contact.Phone || req.PayoutAccount != contact.PayoutAccount {
		t.Errorf("Contact details did not round-trip: %+v", req)
	}
}

func TestReserveForPayout_InvalidParams(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := service.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    "seller1",
		AmountCents: 0,
		SalesNeeded: 1,
		Contact:     testContact(),
	}); err == nil {
		t.Error("Expected error for zero amount")
	}
	if _, err := service.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    "seller1",
		AmountCents: 200,
		SalesNeeded: 0,
		Contact:     testContact(),
	}); err == nil {
		t.Error("Expected error for zero sales needed")
	}
}
