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

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Seller email (required)")
	flag.Parse()

	if *emailFlag == "" {
		logger.Fatal("Missing required flag: --email")
	}

	logger.Info("Starting revenue conversion", zap.String("email", *emailFlag))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	seller, err := services.DbService.GetSellerByEmail(ctx, *emailFlag)
	if err != nil {
		logger.Fatal("Seller not found", zap.String("email", *emailFlag), zap.Error(err))
	}

	result, err := services.RevenueService.ConvertRevenue(ctx, seller.Id)
	if err != nil {
		logger.Fatal("Conversion failed", zap.Error(err))
	}

	common.PrintHeader("REVENUE CONVERSION", common.DefaultWidth)
	fmt.Printf("Seller: %s (%s)\n", seller.Name, seller.Email)

	if !result.Success {
		fmt.Printf("Conversion rejected: %s\n", result.Error)
		common.PrintFooter("No changes were made", common.DefaultWidth)
		return
	}

	fmt.Printf("Converted %s of revenue into %d credits\n",
		common.FormatUSD(result.AmountCents), result.CreditsGranted)
	fmt.Printf("Sales credited:     %d\n", result.SalesCredited)
	fmt.Printf("New credit balance: %d\n", result.NewCreditBalance)
	fmt.Printf("Request ID:         %s\n", result.RequestId)

	common.PrintFooter("Conversion completed", common.DefaultWidth)

	logger.Info("Conversion completed",
		zap.String("seller_id", seller.Id),
		zap.String("request_id", result.RequestId),
		zap.Int64("amount_cents", result.AmountCents),
		zap.Int64("credits_granted", result.CreditsGranted))
}
