package revenue

import (
	"context"
	"testing"

	"cardmarket-revenue-go/internal/models"
)

func TestAggregatorSummary(t *testing.T) {
	service, cleanup := setupWorkflowTest(t)
	defer cleanup()

	cfg := testRevenueConfig()
	aggregator := NewAggregator(service, cfg)
	ctx := context.Background()

	recordWorkflowSale(t, service, models.SaleSourceCard, 1250)
	recordWorkflowSale(t, service, models.SaleSourceCard, 500)
	recordWorkflowSale(t, service, models.SaleSourceCrypto, 9999)

	summary, err := aggregator.Summary(ctx, "seller1")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalSalesCount != 3 {
		t.Errorf("Expected 3 total sales, got %d", summary.TotalSalesCount)
	}
	if summary.AvailableCount != 3 {
		t.Errorf("Expected 3 available sales, got %d", summary.AvailableCount)
	}
	// Revenue is the count times the fixed share, never the sum of
	// listing prices.
	if summary.TotalRevenueCents != 3*cfg.SellerShareCents {
		t.Errorf("Expected %d cents revenue, got %d", 3*cfg.SellerShareCents, summary.TotalRevenueCents)
	}
	if summary.RequestedCents != 0 {
		t.Errorf("Expected 0 cents requested, got %d", summary.RequestedCents)
	}
}

func TestAggregatorSummary_NoSales(t *testing.T) {
	service, cleanup := setupWorkflowTest(t)
	defer cleanup()

	aggregator := NewAggregator(service, testRevenueConfig())

	summary, err := aggregator.Summary(context.Background(), "seller1")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalRevenueCents != 0 || summary.AvailableCount != 0 {
		t.Errorf("Expected empty summary, got %+v", summary)
	}
}

func TestAggregatorSummary_DegradesOnFetchFailure(t *testing.T) {
	service, cleanup := setupWorkflowTest(t)

	recordWorkflowSale(t, service, models.SaleSourceCard, 500)
	aggregator := NewAggregator(service, testRevenueConfig())

	// Closing the database makes every fetch fail; the summary should
	// come back zeroed instead of erroring.
	cleanup()

	summary, err := aggregator.Summary(context.Background(), "seller1")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalSalesCount != 0 || summary.AvailableCount != 0 || summary.TotalRevenueCents != 0 {
		t.Errorf("Expected degraded zero summary, got %+v", summary)
	}
}

func TestAggregatorSummary_ExcludesConsumedSales(t *testing.T) {
	service, cleanup := setupWorkflowTest(t)
	defer cleanup()

	cfg := testRevenueConfig()
	aggregator := NewAggregator(service, cfg)
	guard := NewGuard()
	workflow := NewConversionWorkflow(service, aggregator, guard, cfg)
	ctx := context.Background()

	recordWorkflowSale(t, service, models.SaleSourceCard, 500)
	recordWorkflowSale(t, service, models.SaleSourceCrypto, 750)

	if _, err := workflow.Convert(ctx, "seller1"); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	summary, err := aggregator.Summary(ctx, "seller1")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalSalesCount != 2 {
		t.Errorf("Expected 2 total sales, got %d", summary.TotalSalesCount)
	}
	if summary.AvailableCount != 0 {
		t.Errorf("Expected 0 available sales after conversion, got %d", summary.AvailableCount)
	}
	if summary.TotalRevenueCents != 0 {
		t.Errorf("Expected 0 cents revenue after conversion, got %d", summary.TotalRevenueCents)
	}
}
