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
	"strings"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"go.uber.org/zap"
)

// PayoutWorkflow converts available revenue into a pending fiat payout
// request for back-office fulfillment. Sales backing the amount are
// reserved so they cannot be converted meanwhile.
type PayoutWorkflow struct {
	db         store.RevenueStore
	aggregator *Aggregator
	guard      *Guard
	cfg        models.RevenueConfig
}

func NewPayoutWorkflow(db store.RevenueStore, aggregator *Aggregator, guard *Guard, cfg models.RevenueConfig) *PayoutWorkflow {
	return &PayoutWorkflow{
		db:         db,
		aggregator: aggregator,
		guard:      guard,
		cfg:        cfg,
	}
}

func validateContact(contact models.PayoutContact) error {
	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidContact)
	}
	if !strings.Contains(contact.Email, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrInvalidContact, contact.Email)
	}
	if strings.TrimSpace(contact.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidContact)
	}
	if strings.TrimSpace(contact.PayoutAccount) == "" {
		return fmt.Errorf("%w: payout account is required", ErrInvalidContact)
	}
	return nil
}

func (w *PayoutWorkflow) Request(ctx context.Context, sellerId string, contact models.PayoutContact) (*models.PayoutResult, error) {
	if err := validateContact(contact); err != nil {
		return nil, err
	}

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

	salesNeeded := SalesNeeded(summary.TotalRevenueCents, w.cfg.SellerShareCents)

	result, err := w.db.ReserveForPayout(ctx, store.ReservePayoutParams{
		SellerId:    sellerId,
		AmountCents: summary.TotalRevenueCents,
		SalesNeeded: salesNeeded,
		Contact:     contact,
	})
	if err != nil {
		return nil, fmt.Errorf("payout request failed: %w", err)
	}

	zap.L().Info("Payout request created",
		zap.String("seller_id", sellerId),
		zap.String("request_id", result.RequestId),
		zap.Int64("amount_cents", summary.TotalRevenueCents),
		zap.Int64("sales_needed", salesNeeded),
		zap.Int64("reserved_count", result.ReservedCount))

	return &models.PayoutResult{
		Success:       true,
		RequestId:     result.RequestId,
		AmountCents:   summary.TotalRevenueCents,
		ReservedCount: result.ReservedCount,
	}, nil
}
