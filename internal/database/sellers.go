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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"go.uber.org/zap"
)

func (s *Service) GetSellers(ctx context.Context) ([]models.Seller, error) {
	zap.L().Debug("Querying active sellers")

	rows, err := s.db.QueryContext(ctx, queryGetActiveSellers)
	if err != nil {
		zap.L().Error("Failed to query sellers", zap.Error(err))
		return nil, fmt.Errorf("unable to query sellers: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var sellers []models.Seller
	for rows.Next() {
		var seller models.Seller
		err := rows.Scan(&seller.Id, &seller.Name, &seller.Email, &seller.CreatedAt, &seller.UpdatedAt)
		if err != nil {
			zap.L().Error("Failed to scan seller row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan seller row: %w", err)
		}

		sellers = append(sellers, seller)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during seller row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating seller rows: %w", err)
	}

	zap.L().Info("Retrieved sellers", zap.Int("count", len(sellers)))
	return sellers, nil
}

func (s *Service) GetSellerById(ctx context.Context, sellerId string) (*models.Seller, error) {
	zap.L().Debug("Querying seller by ID", zap.String("seller_id", sellerId))

	var seller models.Seller
	err := s.db.QueryRowContext(ctx, queryGetSellerById, sellerId).Scan(
		&seller.Id, &seller.Name, &seller.Email, &seller.CreatedAt, &seller.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrSellerNotFound, sellerId)
		}
		zap.L().Error("Failed to query seller by ID", zap.String("seller_id", sellerId), zap.Error(err))
		return nil, fmt.Errorf("unable to query seller by ID: %w", err)
	}

	zap.L().Debug("Retrieved seller by ID", zap.String("seller_id", sellerId), zap.String("name", seller.Name))
	return &seller, nil
}

func (s *Service) GetSellerByEmail(ctx context.Context, email string) (*models.Seller, error) {
	zap.L().Debug("Querying seller by email", zap.String("email", email))

	var seller models.Seller
	err := s.db.QueryRowContext(ctx, queryGetSellerByEmail, email).Scan(
		&seller.Id, &seller.Name, &seller.Email, &seller.CreatedAt, &seller.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrSellerNotFound, email)
		}
		zap.L().Error("Failed to query seller by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("unable to query seller by email: %w", err)
	}

	zap.L().Debug("Retrieved seller by email", zap.String("email", email), zap.String("name", seller.Name))
	return &seller, nil
}

func (s *Service) CreateSeller(ctx context.Context, sellerId, name, email string) (*models.Seller, error) {
	zap.L().Info("Creating seller", zap.String("id", sellerId), zap.String("name", name), zap.String("email", email))

	result, err := s.db.ExecContext(ctx, queryInsertSeller, sellerId, name, email)
	if err != nil {
		zap.L().Error("Failed to insert seller", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("unable to insert seller: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		zap.L().Error("Failed to get rows affected", zap.Error(err))
		return nil, fmt.Errorf("unable to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, fmt.Errorf("seller with email %s already exists", email)
	}

	return s.GetSellerById(ctx, sellerId)
}
