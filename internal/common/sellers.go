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

package common

import (
	"context"
	"fmt"

	"cardmarket-revenue-go/internal/store"

	"go.uber.org/zap"
)

// SellerInfo represents simplified seller information for command-line utilities
type SellerInfo struct {
	Id    string
	Name  string
	Email string
}

// InitializeSellers retrieves sellers based on an optional email filter.
// If emailFilter is provided, returns a single seller with that email.
// If emailFilter is empty, returns all sellers.
func InitializeSellers(ctx context.Context, dbService store.RevenueStore, emailFilter string, logger *zap.Logger) ([]SellerInfo, error) {
	var sellers []SellerInfo

	if emailFilter != "" {
		logger.Info("Looking up seller by email", zap.String("email", emailFilter))
		seller, err := dbService.GetSellerByEmail(ctx, emailFilter)
		if err != nil {
			return nil, fmt.Errorf("seller not found: %w", err)
		}
		sellers = append(sellers, SellerInfo{
			Id:    seller.Id,
			Name:  seller.Name,
			Email: seller.Email,
		})
	} else {
		allSellers, err := dbService.GetSellers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get sellers: %w", err)
		}
		for _, s := range allSellers {
			sellers = append(sellers, SellerInfo{
				Id:    s.Id,
				Name:  s.Name,
				Email: s.Email,
			})
		}
	}

	if len(sellers) == 0 {
		return nil, fmt.Errorf("no sellers found")
	}

	return sellers, nil
}
