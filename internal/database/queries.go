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

const (
	// Seller queries
	queryGetActiveSellers = `
		SELECT id, name, email, created_at, updated_at
		FROM sellers
		WHERE active = 1
		ORDER BY created_at`

	queryInsertSeller = `
		INSERT OR IGNORE INTO sellers (id, name, email) VALUES (?, ?, ?)`

	queryGetSellerById = `
		SELECT id, name, email, created_at, updated_at
		FROM sellers
		WHERE id = ? AND active = 1`

	queryGetSellerByEmail = `
		SELECT id, name, email, created_at, updated_at
		FROM sellers
		WHERE email = ? AND active = 1`

	// Sale queries. The %s slot is one of the two sale tables
	// (card_sales, crypto_sales); see saleTable().
	queryInsertSaleTmpl = `
		INSERT INTO %s (id, seller_id, buyer_id, asset_id, purchase_amount_cents, revenue_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, seller_id, buyer_id, asset_id, purchase_amount_cents, revenue_status,
		          COALESCE(revenue_request_id, ''), created_at`

	queryCountSalesTmpl = `
		SELECT COUNT(*) FROM %s WHERE seller_id = ?`

	queryCountAvailableSalesTmpl = `
		SELECT COUNT(*) FROM %s WHERE seller_id = ? AND revenue_status = 'available'`

	queryListAvailableSalesTmpl = `
		SELECT id, seller_id, buyer_id, asset_id, purchase_amount_cents, revenue_status,
		       COALESCE(revenue_request_id, ''), created_at
		FROM %s
		WHERE seller_id = ? AND revenue_status = 'available'
		ORDER BY created_at
		LIMIT ?`

	queryGetSalesByRequestTmpl = `
		SELECT id, seller_id, buyer_id, asset_id, purchase_amount_cents, revenue_status,
		       COALESCE(revenue_request_id, ''), created_at
		FROM %s
		WHERE revenue_request_id = ?
		ORDER BY created_at`

	queryConsumeSaleTmpl = `
		UPDATE %s
		SET revenue_status = ?, revenue_request_id = ?
		WHERE id = ? AND revenue_status = 'available'`

	// Revenue request queries
	queryInsertRevenueRequest = `
		INSERT INTO revenue_requests (
			id, seller_id, amount_cents, request_type, status, credits_added,
			contact_name, contact_email, contact_phone, payout_account, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetRevenueRequestsBySeller = `
		SELECT id, seller_id, amount_cents, request_type, status, credits_added,
		       contact_name, contact_email, contact_phone, payout_account, created_at, updated_at
		FROM revenue_requests
		WHERE seller_id = ?
		ORDER BY created_at DESC`

	querySumPendingPayoutCents = `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM revenue_requests
		WHERE seller_id = ? AND request_type = 'stripe_payment' AND status = 'pending'`

	queryFindRecentCompletedConversion = `
		SELECT id, seller_id, amount_cents, request_type, status, credits_added,
		       contact_name, contact_email, contact_phone, payout_account, created_at, updated_at
		FROM revenue_requests
		WHERE seller_id = ? AND request_type = 'revenue_conversion' AND status = 'completed'
		      AND amount_cents = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1`

	// Tracking queries
	queryUpsertSaleTracking = `
		INSERT INTO sale_tracking (id, sale_id, seller_id, request_id, status, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(sale_id) DO UPDATE SET
			request_id = excluded.request_id,
			status = excluded.status,
			updated_at = excluded.updated_at`

	// Credit ledger queries
	queryGetCreditBalance = `
		SELECT balance
		FROM credit_balances
		WHERE seller_id = ?`

	queryGetCreditAccount = `
		SELECT id, balance, version
		FROM credit_balances
		WHERE seller_id = ?`

	queryInsertCreditAccount = `
		INSERT INTO credit_balances (id, seller_id, balance, version)
		VALUES (?, ?, ?, ?)`

	queryUpdateCreditAccount = `
		UPDATE credit_balances
		SET balance = ?, last_entry_id = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE seller_id = ? AND version = ?`

	queryCheckDuplicateReference = `
		SELECT id FROM credit_ledger WHERE reference_id = ? LIMIT 1`

	queryInsertCreditEntry = `
		INSERT INTO credit_ledger (
			id, seller_id, amount, reason, reference_id, balance_before, balance_after, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, seller_id, amount, reason, COALESCE(reference_id, ''),
		          balance_before, balance_after, created_at`

	queryGetCreditHistory = `
		SELECT id, seller_id, amount, reason, COALESCE(reference_id, ''),
		       balance_before, balance_after, created_at
		FROM credit_ledger
		WHERE seller_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	queryReconcileCreditBalance = `
		SELECT COALESCE(SUM(amount), 0) as calculated_balance
		FROM credit_ledger
		WHERE seller_id = ?`
)
