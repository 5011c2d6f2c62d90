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

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregator computes a seller's revenue summary. The seller share is
// a fixed per-sale amount, so available revenue is a count multiplied
// by the share, never a sum of listing prices.
type Aggregator struct {
	db  store.RevenueStore
	cfg models.RevenueConfig
}

func NewAggregator(db store.RevenueStore, cfg models.RevenueConfig) *Aggregator {
	return &Aggregator{
		db:  db,
		cfg: cfg,
	}
}

// Summary is a pure read. The two checkout tables are fetched
// concurrently; a failed fetch degrades that component to zero
// instead of failing the whole summary.
func (a *Aggregator) Summary(ctx context.Context, sellerId string) (*models.RevenueSummary, error) {
	sources := []string{models.SaleSourceCard, models.SaleSourceCrypto}

	type tableCounts struct {
		total     int64
		available int64
	}
	counts := make([]tableCounts, len(sources))
	var requestedCents int64

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			total, err := a.db.CountSales(gctx, sellerId, source)
			if err != nil {
				zap.L().Warn("Sale count fetch failed, degrading to zero",
					zap.String("seller_id", sellerId),
					zap.String("source", source),
					zap.Error(err))
				return nil
			}

			available, err := a.db.CountAvailableSales(gctx, sellerId, source)
			if err != nil {
				zap.L().Warn("Available sale count fetch failed, degrading to zero",
					zap.String("seller_id", sellerId),
					zap.String("source", source),
					zap.Error(err))
				available = 0
			}

			counts[i] = tableCounts{total: total, available: available}
			return nil
		})
	}
	g.Go(func() error {
		pending, err := a.db.SumPendingPayoutCents(gctx, sellerId)
		if err != nil {
			zap.L().Warn("Pending payout sum fetch failed, degrading to zero",
				zap.String("seller_id", sellerId),
				zap.Error(err))
			return nil
		}
		requestedCents = pending
		return nil
	})

	// Every branch degrades instead of erroring, so Wait only reports
	// context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.RevenueSummary{
		SellerId:       sellerId,
		RequestedCents: requestedCents,
	}
	for _, c := range counts {
		summary.TotalSalesCount += c.total
		summary.AvailableCount += c.available
	}
	summary.TotalRevenueCents = summary.AvailableCount * a.cfg.SellerShareCents

	zap.L().Debug("Computed revenue summary",
		zap.String("seller_id", sellerId),
		zap.Int64("total_sales", summary.TotalSalesCount),
		zap.Int64("available", summary.AvailableCount),
		zap.Int64("total_revenue_cents", summary.TotalRevenueCents),
		zap.Int64("requested_cents", summary.RequestedCents))

	return summary, nil
}
