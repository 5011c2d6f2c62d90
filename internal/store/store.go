package store

import (
	"context"
	"errors"
	"time"

	"cardmarket-revenue-go/internal/models"
)

// Sentinel errors shared across the storage layer.
var (
	ErrDuplicateReference     = errors.New("duplicate ledger reference")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrSellerNotFound         = errors.New("seller not found")
	ErrInsufficientCredits    = errors.New("insufficient credit balance")
)

// RecordSaleParams contains the parameters for recording a completed sale.
type RecordSaleParams struct {
	SellerId            string
	BuyerId             string
	AssetId             string
	Source              string // models.SaleSourceCard or models.SaleSourceCrypto
	PurchaseAmountCents int64
}

// CreditEntryParams contains the parameters for a credit ledger movement.
type CreditEntryParams struct {
	SellerId    string
	Amount      int64 // signed: positive grants, negative spends
	Reason      string
	ReferenceId string
}

// ConvertRevenueParams drives the atomic revenue-to-credits conversion.
type ConvertRevenueParams struct {
	SellerId    string
	AmountCents int64
	Credits     int64
}

// ReservePayoutParams drives the atomic payout reservation.
// SalesNeeded caps how many available sales are reserved per table.
type ReservePayoutParams struct {
	SellerId    string
	AmountCents int64
	SalesNeeded int64
	Contact     models.PayoutContact
}

// ConvertRevenueResult reports what a conversion committed.
type ConvertRevenueResult struct {
	RequestId     string
	SalesCredited int64
	NewBalance    int64
}

// ReservePayoutResult reports what a payout reservation committed.
type ReservePayoutResult struct {
	RequestId     string
	ReservedCount int64
}

// RevenueStore defines the contract the revenue workflows depend on.
type RevenueStore interface {
	// --- Sellers ---
	GetSellers(ctx context.Context) ([]models.Seller, error)
	GetSellerById(ctx context.Context, sellerId string) (*models.Seller, error)
	GetSellerByEmail(ctx context.Context, email string) (*models.Seller, error)
	CreateSeller(ctx context.Context, sellerId, name, email string) (*models.Seller, error)

	// --- Sales ---
	RecordSale(ctx context.Context, params RecordSaleParams) (*models.SaleRecord, error)
	CountSales(ctx context.Context, sellerId, source string) (int64, error)
	CountAvailableSales(ctx context.Context, sellerId, source string) (int64, error)
	ListAvailableSales(ctx context.Context, sellerId, source string, limit int64) ([]models.SaleRecord, error)
	GetSalesByRequest(ctx context.Context, requestId string) ([]models.SaleRecord, error)

	// --- Revenue requests ---
	GetRevenueRequests(ctx context.Context, sellerId string) ([]models.RevenueRequest, error)
	SumPendingPayoutCents(ctx context.Context, sellerId string) (int64, error)
	FindRecentCompletedConversion(ctx context.Context, sellerId string, amountCents int64, window time.Duration) (*models.RevenueRequest, error)

	// --- Workflows (single transaction each) ---
	ConvertRevenue(ctx context.Context, params ConvertRevenueParams) (*ConvertRevenueResult, error)
	ReserveForPayout(ctx context.Context, params ReservePayoutParams) (*ReservePayoutResult, error)

	// --- Credits ---
	AddCredits(ctx context.Context, params CreditEntryParams) (*models.CreditLedgerEntry, error)
	GetCreditBalance(ctx context.Context, sellerId string) (int64, error)
	GetCreditHistory(ctx context.Context, sellerId string, limit, offset int) ([]models.CreditLedgerEntry, error)
	ReconcileCreditBalance(ctx context.Context, sellerId string) error

	// --- Lifecycle ---
	Close()
}
