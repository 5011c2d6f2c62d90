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
	"fmt"

	"database/sql"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time check: *Service must satisfy store.RevenueStore.
var _ store.RevenueStore = (*Service)(nil)

type Service struct {
	db      *sql.DB
	credits *CreditLedgerService
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	credits := NewCreditLedgerService(db)
	service := &Service{db: db, credits: credits}
	if err := service.initSchema(cfg.SeedDemoSellers); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	// Initialize credit ledger schema
	if err := credits.InitSchema(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, closeErr
		}
		return nil, fmt.Errorf("unable to initialize credit ledger schema: %w", err)
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(seedDemoSellers bool) error {
	schema := `
	-- Create sellers table
	CREATE TABLE IF NOT EXISTS sellers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sellers_email ON sellers(email);
	CREATE INDEX IF NOT EXISTS idx_sellers_active ON sellers(active);

	-- Card-checkout sales
	CREATE TABLE IF NOT EXISTS card_sales (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL REFERENCES sellers(id) ON DELETE CASCADE,
		buyer_id TEXT NOT NULL,
		asset_id TEXT NOT NULL,
		purchase_amount_cents INTEGER NOT NULL,
		revenue_status TEXT NOT NULL DEFAULT 'available',
		revenue_request_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_card_sales_seller_status ON card_sales(seller_id, revenue_status);
	CREATE INDEX IF NOT EXISTS idx_card_sales_request ON card_sales(revenue_request_id);
	CREATE INDEX IF NOT EXISTS idx_card_sales_created_at ON card_sales(created_at);

	-- Crypto-checkout sales (same shape, separate checkout path)
	CREATE TABLE IF NOT EXISTS crypto_sales (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL REFERENCES sellers(id) ON DELETE CASCADE,
		buyer_id TEXT NOT NULL,
		asset_id TEXT NOT NULL,
		purchase_amount_cents INTEGER NOT NULL,
		revenue_status TEXT NOT NULL DEFAULT 'available',
		revenue_request_id TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_crypto_sales_seller_status ON crypto_sales(seller_id, revenue_status);
	CREATE INDEX IF NOT EXISTS idx_crypto_sales_request ON crypto_sales(revenue_request_id);
	CREATE INDEX IF NOT EXISTS idx_crypto_sales_created_at ON crypto_sales(created_at);

	-- Conversion and payout requests
	CREATE TABLE IF NOT EXISTS revenue_requests (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL REFERENCES sellers(id) ON DELETE CASCADE,
		amount_cents INTEGER NOT NULL,
		request_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		credits_added INTEGER NOT NULL DEFAULT 0,
		contact_name TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		payout_account TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_revenue_requests_seller ON revenue_requests(seller_id);
	CREATE INDEX IF NOT EXISTS idx_revenue_requests_type_status ON revenue_requests(request_type, status);
	CREATE INDEX IF NOT EXISTS idx_revenue_requests_created_at ON revenue_requests(created_at);

	-- Audit shadow records for consumed card-checkout sales
	CREATE TABLE IF NOT EXISTS sale_tracking (
		id TEXT PRIMARY KEY,
		sale_id TEXT NOT NULL UNIQUE,
		seller_id TEXT NOT NULL,
		request_id TEXT NOT NULL,
		status TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sale_tracking_seller ON sale_tracking(seller_id);
	CREATE INDEX IF NOT EXISTS idx_sale_tracking_request ON sale_tracking(request_id);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	// Insert 3 demo sellers for testing if configured to do so
	if seedDemoSellers {
		sellers := []struct {
			id    string
			name  string
			email string
		}{
			{uuid.New().String(), "Alice Johnson", "alice.johnson@example.com"},
			{uuid.New().String(), "Bob Smith", "bob.smith@example.com"},
			{uuid.New().String(), "Carol Williams", "carol.williams@example.com"},
		}

		for _, seller := range sellers {
			_, err := s.db.Exec(queryInsertSeller, seller.id, seller.name, seller.email)
			if err != nil {
				zap.L().Error("Failed to insert demo seller", zap.String("name", seller.name), zap.Error(err))
			} else {
				zap.L().Info("Demo seller created", zap.String("id", seller.id), zap.String("name", seller.name))
			}
		}
	} else {
		zap.L().Info("Skipping demo seller creation (SEED_DEMO_SELLERS=false)")
	}

	return nil
}

// Credit ledger convenience methods

func (s *Service) AddCredits(ctx context.Context, params store.CreditEntryParams) (*models.CreditLedgerEntry, error) {
	return s.credits.ProcessEntry(ctx, params)
}

func (s *Service) GetCreditBalance(ctx context.Context, sellerId string) (int64, error) {
	return s.credits.GetBalance(ctx, sellerId)
}

func (s *Service) GetCreditHistory(ctx context.Context, sellerId string, limit, offset int) ([]models.CreditLedgerEntry, error) {
	return s.credits.GetHistory(ctx, sellerId, limit, offset)
}

func (s *Service) ReconcileCreditBalance(ctx context.Context, sellerId string) error {
	return s.credits.ReconcileBalance(ctx, sellerId)
}
