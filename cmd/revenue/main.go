/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"

	"cardmarket-revenue-go/internal/api"
	"cardmarket-revenue-go/internal/common"
	"cardmarket-revenue-go/internal/config"

	"go.uber.org/zap"
)

type revenueStats struct {
	totalSellers       int
	sellersWithRevenue int
	totalAvailable     int64
}

func printSellerHeader(seller common.SellerInfo) {
	fmt.Printf("\n┌─ Seller: %s (%s)\n", seller.Name, seller.Email)
	fmt.Printf("│  ID: %s\n", seller.Id)
	common.PrintBoxSeparator(78)
}

func processSeller(ctx context.Context, seller common.SellerInfo, revenueSvc *api.RevenueService) (int64, error) {
	summary, err := revenueSvc.GetSummary(ctx, seller.Id)
	if err != nil {
		return 0, fmt.Errorf("failed to get summary: %w", err)
	}

	credits, err := revenueSvc.GetCreditBalance(ctx, seller.Id)
	if err != nil {
		return 0, fmt.Errorf("failed to get credit balance: %w", err)
	}

	printSellerHeader(seller)
	fmt.Printf("%s %-20s: %d\n", common.BoxPrefix(false), "Total sales", summary.TotalSalesCount)
	fmt.Printf("%s %-20s: %d\n", common.BoxPrefix(false), "Available sales", summary.AvailableCount)
	fmt.Printf("%s %-20s: %s\n", common.BoxPrefix(false), "Available revenue", common.FormatUSD(summary.TotalRevenueCents))
	fmt.Printf("%s %-20s: %s\n", common.BoxPrefix(false), "Pending payouts", common.FormatUSD(summary.RequestedCents))
	fmt.Printf("%s %-20s: %d\n", common.BoxPrefix(true), "Credit balance", credits)

	return summary.TotalRevenueCents, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Filter by specific seller email (optional)")
	flag.Parse()

	logger.Info("Starting revenue report")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to database", zap.String("path", cfg.Database.Path))
	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	sellers, err := common.InitializeSellers(ctx, services.DbService, *emailFlag, logger)
	if err != nil {
		logger.Fatal("Failed to initialize sellers", zap.Error(err))
	}

	common.PrintHeader("SELLER REVENUE REPORT", common.DefaultWidth)

	stats := revenueStats{}
	for _, seller := range sellers {
		stats.totalSellers++

		availableCents, err := processSeller(ctx, seller, services.RevenueService)
		if err != nil {
			logger.Error("Failed to process seller",
				zap.String("seller_id", seller.Id),
				zap.String("seller_name", seller.Name),
				zap.Error(err))
			continue
		}

		if availableCents > 0 {
			stats.sellersWithRevenue++
			stats.totalAvailable += availableCents
		}
	}

	summary := fmt.Sprintf("SUMMARY: %d sellers with available revenue (%s total across %d sellers queried)",
		stats.sellersWithRevenue, common.FormatUSD(stats.totalAvailable), stats.totalSellers)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Revenue report completed",
		zap.Int("sellers_queried", stats.totalSellers),
		zap.Int("sellers_with_revenue", stats.sellersWithRevenue),
		zap.Int64("total_available_cents", stats.totalAvailable))
}
