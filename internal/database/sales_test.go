package database

import (
	"context"
	"testing"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func recordTestSale(t *testing.T, service *Service, sellerId, source string, amountCents int64) *models.SaleRecord {
	t.Helper()

	sale, err := service.RecordSale(context.Background(), store.RecordSaleParams{
		SellerId:            sellerId,
		BuyerId:             "buyer1",
		AssetId:             "holo-dragon-001",
		Source:              source,
		PurchaseAmountCents: amountCents,
	})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}
	return sale
}

func TestRecordSale(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	sale := recordTestSale(t, service, "seller1", models.SaleSourceCard, 999)

	if sale.SellerId != "seller1" {
		t.Errorf("Expected seller seller1, got %s", sale.SellerId)
	}
	if sale.RevenueStatus != models.RevenueStatusAvailable {
		t.Errorf("Expected status available, got %s", sale.RevenueStatus)
	}
	if sale.PurchaseAmountCents != 999 {
		t.Errorf("Expected purchase amount 999, got %d", sale.PurchaseAmountCents)
	}
	if sale.RevenueRequestId != "" {
		t.Errorf("Expected empty request id, got %s", sale.RevenueRequestId)
	}
}

func TestRecordSale_UnknownSource(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.RecordSale(context.Background(), store.RecordSaleParams{
		SellerId:            "seller1",
		BuyerId:             "buyer1",
		AssetId:             "holo-dragon-001",
		Source:              "paypal",
		PurchaseAmountCents: 100,
	})
	if err == nil {
		t.Fatalf("Expected error for unknown source, got nil")
	}
}

func TestCountSales_BothTables(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
	recordTestSale(t, service, "seller1", models.SaleSourceCard, 750)
	recordTestSale(t, service, "seller1", models.SaleSourceCrypto, 1200)

	cardCount, err := service.CountSales(ctx, "seller1", models.SaleSourceCard)
	if err != nil {
		t.Fatalf("CountSales card failed: %v", err)
	}
	if cardCount != 2 {
		t.Errorf("Expected 2 card sales, got %d", cardCount)
	}

	cryptoCount, err := service.CountSales(ctx, "seller1", models.SaleSourceCrypto)
	if err != nil {
		t.Fatalf("CountSales crypto failed: %v", err)
	}
	if cryptoCount != 1 {
		t.Errorf("Expected 1 crypto sale, got %d", cryptoCount)
	}
}

func TestListAvailableSales_Limit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		recordTestSale(t, service, "seller1", models.SaleSourceCard, 500)
	}

	sales, err := service.ListAvailableSales(ctx, "seller1", models.SaleSourceCard, 3)
	if err != nil {
		t.Fatalf("ListAvailableSales failed: %v", err)
	}
	if len(sales) != 3 {
		t.Errorf("Expected 3 sales with limit, got %d", len(sales))
	}

	all, err := service.ListAvailableSales(ctx, "seller1", models.SaleSourceCard, 0)
	if err != nil {
		t.Fatalf("ListAvailableSales unbounded failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 sales unbounded, got %d", len(all))
	}
}
