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

package revenue

import (
	"context"
	"fmt"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"go.uber.org/zap"
)

// ConversionWorkflow turns a seller's available revenue into platform
// credits. Guards and the duplicate heuristic run before any mutation;
// the mutation itself is one store transaction.
type ConversionWorkflow struct {
	db         store.RevenueStore
	aggregator *Aggregator
	guard      *Guard
	cfg        models.RevenueConfig
}

func NewConversionWorkflow(db store.RevenueStore, aggregator *Aggregator, guard *Guard, cfg models.RevenueConfig) *ConversionWorkflow {
	return &ConversionWorkflow{
		db:         db,
		aggregator: aggregator,
		guard:      guard,
		cfg:        cfg,
	}
}

func (w *ConversionWorkflow) Convert(ctx context.Context, sellerId string) (*models.ConversionResult, error) {
	if err := w.guard.Begin(sellerId); err != nil {
		return nil, err
	}
	defer w.guard.End(sellerId)

	summary, err := w.aggregator.Summary(ctx, sellerId)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	if summary.TotalRevenueCents <= 0 {
		return nil, fmt.Errorf("%w: seller %s", ErrNoRevenue, sellerId)
	}

	// Same-amount completed conversion inside the window means the
	// seller most likely double-submitted.
	recent, err := w.db.FindRecentCompletedConversion(ctx, sellerId, summary.TotalRevenueCents, w.cfg.DuplicateWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate conversion: %w", err)
	}
	if recent != nil {
		zap.L().Warn("Duplicate conversion attempt rejected",
			zap.String("seller_id", sellerId),
			zap.Int64("amount_cents", summary.TotalRevenueCents),
			zap.String("existing_request_id", recent.Id))
		return nil, fmt.Errorf("%w: request %s", ErrDuplicateConversion, recent.Id)
	}

	credits := CreditsForRevenue(summary.TotalRevenueCents, w.cfg.CreditsPerDollar)
	if credits <= 0 {
		return nil, fmt.Errorf("%w: amount %d cents yields no credits", ErrNoRevenue, summary.TotalRevenueCents)
	}

	result, err := w.db.ConvertRevenue(ctx, store.ConvertRevenueParams{
		SellerId:    sellerId,
		AmountCents: summary.TotalRevenueCents,
		Credits:     credits,
	})
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}

	zap.L().Info("Revenue converted to credits",
		zap.String("seller_id", sellerId),
		zap.String("request_id", result.RequestId),
		zap.Int64("amount_cents", summary.TotalRevenueCents),
		zap.Int64("credits_granted", credits),
		zap.Int64("sales_credited", result.SalesCredited))

	return &models.ConversionResult{
		Success:          true,
		RequestId:        result.RequestId,
		AmountCents:      summary.TotalRevenueCents,
		CreditsGranted:   credits,
		NewCreditBalance: result.NewBalance,
		SalesCredited:    result.SalesCredited,
	}, nil
}
