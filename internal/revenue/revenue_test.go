package revenue

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cardmarket-revenue-go/internal/database"
	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

func testRevenueConfig() models.RevenueConfig {
	return models.RevenueConfig{
		SellerShareCents: 200,
		CreditsPerDollar: 400,
		DuplicateWindow:  time.Minute,
	}
}

// setupWorkflowTest opens a file-backed database so the aggregator's
// concurrent reads all see the same data.
func setupWorkflowTest(t *testing.T) (*database.Service, func()) {
	t.Helper()

	service, err := database.NewService(context.Background(), models.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		PingTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := service.CreateSeller(context.Background(), "seller1", "Test Seller", "seller1@example.com"); err != nil {
		service.Close()
		t.Fatalf("Failed to create test seller: %v", err)
	}

	return service, func() {
		service.Close()
	}
}

func recordWorkflowSale(t *testing.T, service *database.Service, source string, amountCents int64) {
	t.Helper()

	_, err := service.RecordSale(context.Background(), store.RecordSaleParams{
		SellerId:            "seller1",
		BuyerId:             "buyer1",
		AssetId:             "holo-dragon-001",
		Source:              source,
		PurchaseAmountCents: amountCents,
	})
	if err != nil {
		t.Fatalf("RecordSale failed: %v", err)
	}
}
