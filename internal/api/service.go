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

package api

import (
	"context"
	"fmt"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/revenue"
	"cardmarket-revenue-go/internal/store"
)

// RevenueService bundles the revenue workflows behind one surface used
// by the HTTP handlers and the CLI binaries.
type RevenueService struct {
	db         store.RevenueStore
	aggregator *revenue.Aggregator
	conversion *revenue.ConversionWorkflow
	payout     *revenue.PayoutWorkflow
}

func NewRevenueService(db store.RevenueStore, cfg models.RevenueConfig) *RevenueService {
	aggregator := revenue.NewAggregator(db, cfg)
	guard := revenue.NewGuard()
	return &RevenueService{
		db:         db,
		aggregator: aggregator,
		conversion: revenue.NewConversionWorkflow(db, aggregator, guard, cfg),
		payout:     revenue.NewPayoutWorkflow(db, aggregator, guard, cfg),
	}
}

func (s *RevenueService) HealthCheck(ctx context.Context) error {
	_, err := s.db.GetSellers(ctx)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// GetSummary returns the seller's aggregated revenue state.
func (s *RevenueService) GetSummary(ctx context.Context, sellerId string) (*models.RevenueSummary, error) {
	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return nil, err
	}
	return s.aggregator.Summary(ctx, sellerId)
}

// GetRequests returns the seller's conversion and payout history.
func (s *RevenueService) GetRequests(ctx context.Context, sellerId string) ([]models.RevenueRequest, error) {
	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return nil, err
	}
	return s.db.GetRevenueRequests(ctx, sellerId)
}

// RecordSale records a completed checkout for a seller.
func (s *RevenueService) RecordSale(ctx context.Context, params store.RecordSaleParams) (*models.SaleRecord, error) {
	if _, err := s.db.GetSellerById(ctx, params.SellerId); err != nil {
		return nil, err
	}
	return s.db.RecordSale(ctx, params)
}
