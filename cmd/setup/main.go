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

	"cardmarket-revenue-go/internal/common"
	"cardmarket-revenue-go/internal/config"
	"cardmarket-revenue-go/internal/database"
	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// demo card catalog used when seeding sales
var demoAssets = []string{
	"holo-dragon-001",
	"cyber-fox-017",
	"ancient-golem-042",
	"storm-phoenix-108",
}

func seedDemoSales(ctx context.Context, dbService *database.Service, perSeller int, logger *zap.Logger) (int, error) {
	sellers, err := dbService.GetSellers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get sellers: %w", err)
	}

	seeded := 0
	for _, seller := range sellers {
		for i := 0; i < perSeller; i++ {
			source := models.SaleSourceCard
			if i%2 == 1 {
				source = models.SaleSourceCrypto
			}

			// Listing prices vary; the seller share per sale does not.
			priceCents := int64(500 + i*250)
			_, err := dbService.RecordSale(ctx, store.RecordSaleParams{
				SellerId:            seller.Id,
				BuyerId:             uuid.New().String(),
				AssetId:             demoAssets[i%len(demoAssets)],
				Source:              source,
				PurchaseAmountCents: priceCents,
			})
			if err != nil {
				logger.Error("Failed to seed sale",
					zap.String("seller_id", seller.Id),
					zap.String("source", source),
					zap.Error(err))
				continue
			}
			seeded++
		}
	}

	return seeded, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	demoFlag := flag.Bool("demo", false, "Seed demo sellers and sales")
	salesPerSeller := flag.Int("sales-per-seller", 4, "Demo sales to create per seller (with --demo)")
	flag.Parse()

	logger.Info("Starting marketplace setup")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if *demoFlag {
		cfg.Database.SeedDemoSellers = true
	}

	logger.Info("Initializing database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	common.PrintHeader("MARKETPLACE SETUP", common.DefaultWidth)
	fmt.Printf("Database initialized at %s\n", cfg.Database.Path)

	if *demoFlag {
		seeded, err := seedDemoSales(ctx, dbService, *salesPerSeller, logger)
		if err != nil {
			logger.Fatal("Failed to seed demo sales", zap.Error(err))
		}
		fmt.Printf("Seeded %d demo sales across demo sellers\n", seeded)
	}

	common.PrintFooter("Setup completed", common.DefaultWidth)
	logger.Info("Setup completed")
}
