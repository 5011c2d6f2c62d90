package database

import (
	"context"
	"testing"
	"time"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func TestConvertRevenue(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	// 2 card sales + 1 crypto sale, all available: $6.00 at 200c/share
	recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
	recordTestSale(t, service, "seller1", models.SaleSourceCard, 1500)
	recordTestSale(t, service, "seller1", models.SaleSourceCrypto, 900)

	result, err := service.ConvertRevenue(ctx, store.ConvertRevenueParams{
		SellerId:    "seller1",
		AmountCents: 600,
		Credits:     2400,
	})
	if err != nil {
		t.Fatalf("ConvertRevenue failed: %v", err)
	}

	if result.SalesCredited != 3 {
		t.Errorf("Expected 3 sales credited, got %d", result.SalesCredited)
	}
	if result.NewBalance != 2400 {
		t.Errorf("Expected new balance 2400, got %d", result.NewBalance)
	}

	// No available sales remain in either table
	for _, source := range []string{models.SaleSourceCard, models.SaleSourceCrypto} {
		available, err := service.CountAvailableSales(ctx, "seller1", source)
		if err != nil {
			t.Fatalf("CountAvailableSales %s failed: %v", source, err)
		}
		if available != 0 {
			t.Errorf("Expected 0 available %s sales, got %d", source, available)
		}
	}

	// Consumed sales carry the request id and the credited status
	sales, err := service.GetSalesByRequest(ctx, result.RequestId)
	if err != nil {
		t.Fatalf("GetSalesByRequest failed: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("Expected 3 sales on request, got %d", len(sales))
	}
	for _, sale := range sales {
		if sale.RevenueStatus != models.RevenueStatusCredited {
			t.Errorf("Expected status credited for sale %s, got %s", sale.Id, sale.RevenueStatus)
		}
	}

	// The request row is completed with the credits recorded
	requests, err := service.GetRevenueRequests(ctx, "seller1")
	if err != nil {
		t.Fatalf("GetRevenueRequests failed: %v", err)
	}
	if len(requests) != 1 {
		t.Fatalf("Expected 1 revenue request, got %d", len(requests))
	}
	req := requests[0]
	if req.RequestType != models.RequestTypeConversion {
		t.Errorf("Expected type %s, got %s", models.RequestTypeConversion, req.RequestType)
	}
	if req.Status != models.RequestStatusCompleted {
		t.Errorf("Expected status completed, got %s", req.Status)
	}
	if req.CreditsAdded != 2400 {
		t.Errorf("Expected credits added 2400, got %d", req.CreditsAdded)
	}

	// Ledger and hot balance agree
	if err := service.ReconcileCreditBalance(ctx, "seller1"); err != nil {
		t.Errorf("ReconcileCreditBalance failed: %v", err)
	}
}

func TestConvertRevenue_TrackingOnlyForCardSales(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	cardSale := recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
	cryptoSale := recordTestSale(t, service, "seller1", models.SaleSourceCrypto, 500)

	_, err := service.ConvertRevenue(ctx, store.ConvertRevenueParams{
		SellerId:    "seller1",
		AmountCents: 400,
		Credits:     1600,
	})
	if err != nil {
		t.Fatalf("ConvertRevenue failed: %v", err)
	}

	var count int
	err = service.db.QueryRow("SELECT COUNT(*) FROM sale_tracking WHERE sale_id = ?", cardSale.Id).Scan(&count)
	if err != nil {
		t.Fatalf("Tracking query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 tracking row for card sale, got %d", count)
	}

	err = service.db.QueryRow("SELECT COUNT(*) FROM sale_tracking WHERE sale_id = ?", cryptoSale.Id).Scan(&count)
	if err != nil {
		t.Fatalf("Tracking query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no tracking row for crypto sale, got %d", count)
	}
}

func TestConvertRevenue_InvalidParams(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := service.ConvertRevenue(ctx, store.ConvertRevenueParams{SellerId: "seller1", AmountCents: 0, Credits: 100}); err == nil {
		t.Errorf("Expected error for zero amount, got nil")
	}
	if _, err := service.ConvertRevenue(ctx, store.ConvertRevenueParams{SellerId: "seller1", AmountCents: 200, Credits: 0}); err == nil {
		t.Errorf("Expected error for zero credits, got nil")
	}
}

func TestFindRecentCompletedConversion(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)

	result, err := service.ConvertRevenue(ctx, store.ConvertRevenueParams{
		SellerId:    "seller1",
		AmountCents: 200,
		Credits:     800,
	})
	if err != nil {
		t.Fatalf("ConvertRevenue failed: %v", err)
	}

	recent, err := service.FindRecentCompletedConversion(ctx, "seller1", 200, time.Minute)
	if err != nil {
		t.Fatalf("FindRecentCompletedConversion failed: %v", err)
	}
	if recent == nil {
		t.Fatalf("Expected to find recent conversion, got nil")
	}
	if recent.Id != result.RequestId {
		t.Errorf("Expected request %s, got %s", result.RequestId, recent.Id)
	}

	// Different amount does not match
	recent, err = service.FindRecentCompletedConversion(ctx, "seller1", 400, time.Minute)
	if err != nil {
		t.Fatalf("FindRecentCompletedConversion failed: %v", err)
	}
	if recent != nil {
		t.Errorf("Expected no match for different amount, got %s", recent.Id)
	}
}
