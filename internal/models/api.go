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

package models

// RevenueSummary represents a seller's aggregated revenue state
type RevenueSummary struct {
	SellerId          string `json:"seller_id"`
	TotalSalesCount   int64  `json:"total_sales_count"`
	AvailableCount    int64  `json:"available_count"`
	TotalRevenueCents int64  `json:"total_revenue_cents"`
	RequestedCents    int64  `json:"requested_cents"`
}

// ConversionResult represents the result of converting revenue to credits
type ConversionResult struct {
	Success          bool   `json:"success"`
	RequestId        string `json:"request_id,omitempty"`
	AmountCents      int64  `json:"amount_cents,omitempty"`
	CreditsGranted   int64  `json:"credits_granted,omitempty"`
	NewCreditBalance int64  `json:"new_credit_balance,omitempty"`
	SalesCredited    int64  `json:"sales_credited,omitempty"`
	Error            string `json:"error,omitempty"`
}

// PayoutResult represents the result of a fiat payout request
type PayoutResult struct {
	Success       bool   `json:"success"`
	RequestId     string `json:"request_id,omitempty"`
	AmountCents   int64  `json:"amount_cents,omitempty"`
	ReservedCount int64  `json:"reserved_count,omitempty"`
	Error         string `json:"error,omitempty"`
}

// SpendResult represents the result of spending credits
type SpendResult struct {
	Success    bool   `json:"success"`
	SellerId   string `json:"seller_id,omitempty"`
	Amount     int64  `json:"amount,omitempty"`
	NewBalance int64  `json:"new_balance,omitempty"`
	Error      string `json:"error,omitempty"`
}

// PayoutContact holds the contact details collected with a payout request
type PayoutContact struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PayoutAccount string `json:"payout_account"`
}
