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
	"cardmarket-revenue-go/internal/models"

	"go.uber.org/zap"
)

type payoutRequest struct {
	email   string
	contact models.PayoutContact
}

func parseAndValidateFlags() (*payoutRequest, error) {
	emailFlag := flag.String("email", "", "Seller email (required)")
	nameFlag := flag.String("name", "", "Contact name for the payout (required)")
	contactEmailFlag := flag.String("contact-email", "", "Contact email (defaults to seller email)")
	phoneFlag := flag.String("phone", "", "Contact phone (required)")
	accountFlag := flag.String("account", "", "Payout account identifier (required)")
	flag.Parse()

	if *emailFlag == "" || *nameFlag == "" || *phoneFlag == "" || *accountFlag == "" {
		return nil, fmt.Errorf("required flags: --email, --name, --phone, --account")
	}

	contactEmail := *contactEmailFlag
	if contactEmail == "" {
		contactEmail = *emailFlag
	}

	return &payoutRequest{
		email: *emailFlag,
		contact: models.PayoutContact{
			Name:          *nameFlag,
			Email:         contactEmail,
			Phone:         *phoneFlag,
			PayoutAccount: *accountFlag,
		},
	}, nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	request, err := parseAndValidateFlags()
	if err != nil {
		logger.Fatal("Invalid flags", zap.Error(err))
	}

	logger.Info("Starting payout request", zap.String("email", request.email))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	seller, err := services.DbService.GetSellerByEmail(ctx, request.email)
	if err != nil {
		logger.Fatal("Seller not found", zap.String("email", request.email), zap.Error(err))
	}

	result, err := services.RevenueService.RequestPayout(ctx, seller.Id, request.contact)
	if err != nil {
		logger.Fatal("Payout request failed", zap.Error(err))
	}

	common.PrintHeader("PAYOUT REQUEST", common.DefaultWidth)
	fmt.Printf("Seller: %s (%s)\n", seller.Name, seller.Email)

	if !result.Success {
		fmt.Printf("Payout request rejected: %s\n", result.Error)
		common.PrintFooter("No changes were made", common.DefaultWidth)
		return
	}

	fmt.Printf("Requested payout of %s\n", common.FormatUSD(result.AmountCents))
	fmt.Printf("Sales reserved: %d\n", result.ReservedCount)
	fmt.Printf("Request ID:     %s\n", result.RequestId)
	fmt.Println("Payouts are processed manually and typically take 2-3 weeks.")

	common.PrintFooter("Payout request submitted", common.DefaultWidth)

	logger.Info("Payout request completed",
		zap.String("seller_id", seller.Id),
		zap.String("request_id", result.RequestId),
		zap.Int64("amount_cents", result.AmountCents),
		zap.Int64("reserved_count", result.ReservedCount))
}
