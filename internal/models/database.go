package models

import (
	"time"
)

// Revenue lifecycle states of a sale. A sale only moves forward from
// available; the store never reverts a consumed sale.
const (
	RevenueStatusAvailable        = "available"
	RevenueStatusPaymentRequested = "payment_requested"
	RevenueStatusCredited         = "credited"
)

// Sale sources. Card checkout and crypto checkout land in separate
// tables but share the same record shape.
const (
	SaleSourceCard   = "card"
	SaleSourceCrypto = "crypto"
)

// Revenue request types and statuses.
const (
	RequestTypeConversion    = "revenue_conversion"
	RequestTypeStripePayment = "stripe_payment"

	RequestStatusPending   = "pending"
	RequestStatusCompleted = "completed"
)

// Credit ledger reasons.
const (
	CreditReasonRevenueConversion = "revenue_conversion"
	CreditReasonSpend             = "spend"
)

// Seller represents a marketplace seller
type Seller struct {
	Id        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SaleRecord represents one completed marketplace sale and its revenue claim
type SaleRecord struct {
	Id                  string    `db:"id"`
	SellerId            string    `db:"seller_id"`
	BuyerId             string    `db:"buyer_id"`
	AssetId             string    `db:"asset_id"`
	Source              string    `db:"source"`
	PurchaseAmountCents int64     `db:"purchase_amount_cents"`
	RevenueStatus       string    `db:"revenue_status"`
	RevenueRequestId    string    `db:"revenue_request_id"`
	CreatedAt           time.Time `db:"created_at"`
}

// RevenueRequest represents a conversion or payout request.
// Conversions complete synchronously and carry the credits granted;
// payout requests stay pending for back-office fulfillment and carry
// the seller's contact details.
type RevenueRequest struct {
	Id            string    `db:"id"`
	SellerId      string    `db:"seller_id"`
	AmountCents   int64     `db:"amount_cents"`
	RequestType   string    `db:"request_type"`
	Status        string    `db:"status"`
	CreditsAdded  int64     `db:"credits_added"`
	ContactName   string    `db:"contact_name"`
	ContactEmail  string    `db:"contact_email"`
	ContactPhone  string    `db:"contact_phone"`
	PayoutAccount string    `db:"payout_account"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// CreditBalance represents current credit state for a seller (hot data)
type CreditBalance struct {
	Id          string    `db:"id"`
	SellerId    string    `db:"seller_id"`
	Balance     int64     `db:"balance"`
	LastEntryId string    `db:"last_entry_id"`
	Version     int64     `db:"version"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CreditLedgerEntry represents an immutable credit movement (cold data)
type CreditLedgerEntry struct {
	Id            string    `db:"id"`
	SellerId      string    `db:"seller_id"`
	Amount        int64     `db:"amount"`
	Reason        string    `db:"reason"`
	ReferenceId   string    `db:"reference_id"`
	BalanceBefore int64     `db:"balance_before"`
	BalanceAfter  int64     `db:"balance_after"`
	CreatedAt     time.Time `db:"created_at"`
}

// SaleTracking is the audit shadow record written when a card-checkout
// sale is consumed by a conversion or payout reservation.
type SaleTracking struct {
	Id        string    `db:"id"`
	SaleId    string    `db:"sale_id"`
	SellerId  string    `db:"seller_id"`
	RequestId string    `db:"request_id"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}
