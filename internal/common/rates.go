package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cardmarket-revenue-go/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// RatesFile holds the marketplace rate overrides. All fields are
// optional; missing values keep the configured defaults.
type RatesFile struct {
	SellerShareCents int64  `yaml:"seller_share_cents"`
	CreditsPerDollar int64  `yaml:"credits_per_dollar"`
	DuplicateWindow  string `yaml:"duplicate_window"`
}

// ApplyRatesFile overlays the rates file onto the revenue config.
// A missing file is not an error; the env/default rates stand.
func ApplyRatesFile(cfg *models.RevenueConfig) error {
	if cfg.RatesFile == "" {
		return nil
	}

	var ratesPath string
	if filepath.IsAbs(cfg.RatesFile) {
		ratesPath = cfg.RatesFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		ratesPath = filepath.Join(wd, cfg.RatesFile)
	}

	data, err := os.ReadFile(ratesPath)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Debug("No rates file found, using configured rates",
				zap.String("path", ratesPath))
			return nil
		}
		return fmt.Errorf("unable to read %s: %w", cfg.RatesFile, err)
	}

	var rates RatesFile
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return fmt.Errorf("unable to parse %s: %w", cfg.RatesFile, err)
	}

	if rates.SellerShareCents < 0 {
		return fmt.Errorf("seller_share_cents cannot be negative: %d", rates.SellerShareCents)
	}
	if rates.CreditsPerDollar < 0 {
		return fmt.Errorf("credits_per_dollar cannot be negative: %d", rates.CreditsPerDollar)
	}

	if rates.SellerShareCents > 0 {
		cfg.SellerShareCents = rates.SellerShareCents
	}
	if rates.CreditsPerDollar > 0 {
		cfg.CreditsPerDollar = rates.CreditsPerDollar
	}
	if rates.DuplicateWindow != "" {
		window, err := time.ParseDuration(rates.DuplicateWindow)
		if err != nil {
			return fmt.Errorf("invalid duplicate_window %q: %w", rates.DuplicateWindow, err)
		}
		cfg.DuplicateWindow = window
	}

	zap.L().Info("Applied rates file",
		zap.String("path", ratesPath),
		zap.Int64("seller_share_cents", cfg.SellerShareCents),
		zap.Int64("credits_per_dollar", cfg.CreditsPerDollar),
		zap.Duration("duplicate_window", cfg.DuplicateWindow))

	return nil
}
