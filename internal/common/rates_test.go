package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cardmarket-revenue-go/internal/models"
)

func writeRatesFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rates file: %v", err)
	}
	return path
}

func TestApplyRatesFile(t *testing.T) {
	cfg := models.RevenueConfig{
		SellerShareCents: 200,
		CreditsPerDollar: 400,
		DuplicateWindow:  time.Minute,
		RatesFile: writeRatesFile(t, `
seller_share_cents: 300
credits_per_dollar: 500
duplicate_window: 90s
`),
	}

	if err := ApplyRatesFile(&cfg); err != nil {
		t.Fatalf("ApplyRatesFile failed: %v", err)
	}
	if cfg.SellerShareCents != 300 {
		t.Errorf("Expected seller share 300, got %d", cfg.SellerShareCents)
	}
	if cfg.CreditsPerDollar != 500 {
		t.Errorf("Expected credits per dollar 500, got %d", cfg.CreditsPerDollar)
	}
	if cfg.DuplicateWindow != 90*time.Second {
		t.Errorf("Expected window 90s, got %v", cfg.DuplicateWindow)
	}
}

func TestApplyRatesFile_PartialOverride(t *testing.T) {
	cfg := models.RevenueConfig{
		SellerShareCents: 200,
		CreditsPerDollar: 400,
		DuplicateWindow:  time.Minute,
		RatesFile:        writeRatesFile(t, "credits_per_dollar: 800\n"),
	}

	if err := ApplyRatesFile(&cfg); err != nil {
		t.Fatalf("ApplyRatesFile failed: %v", err)
	}
	if cfg.SellerShareCents != 200 {
		t.Errorf("Expected seller share unchanged at 200, got %d", cfg.SellerShareCents)
	}
	if cfg.CreditsPerDollar != 800 {
		t.Errorf("Expected credits per dollar 800, got %d", cfg.CreditsPerDollar)
	}
	if cfg.DuplicateWindow != time.Minute {
		t.Errorf("Expected window unchanged, got %v", cfg.DuplicateWindow)
	}
}

func TestApplyRatesFile_MissingFile(t *testing.T) {
	cfg := models.RevenueConfig{
		SellerShareCents: 200,
		CreditsPerDollar: 400,
		RatesFile:        filepath.Join(t.TempDir(), "does-not-exist.yaml"),
	}

	if err := ApplyRatesFile(&cfg); err != nil {
		t.Fatalf("Expected missing rates file to be tolerated, got %v", err)
	}
	if cfg.SellerShareCents != 200 || cfg.CreditsPerDollar != 400 {
		t.Errorf("Expected defaults untouched, got %+v", cfg)
	}
}

func TestApplyRatesFile_InvalidValues(t *testing.T) {
	cfg := models.RevenueConfig{
		RatesFile: writeRatesFile(t, "seller_share_cents: -5\n"),
	}
	if err := ApplyRatesFile(&cfg); err == nil {
		t.Error("Expected error for negative seller share")
	}

	cfg = models.RevenueConfig{
		RatesFile: writeRatesFile(t, "duplicate_window: sometimes\n"),
	}
	if err := ApplyRatesFile(&cfg); err == nil {
		t.Error("Expected error for malformed duration")
	}
}
