package api

import (
	"context"
	"errors"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetCreditBalance returns a seller's current credit balance.
func (s *RevenueService) GetCreditBalance(ctx context.Context, sellerId string) (int64, error) {
	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return 0, err
	}
	return s.db.GetCreditBalance(ctx, sellerId)
}

// GetCreditHistory returns a seller's paginated credit ledger entries.
func (s *RevenueService) GetCreditHistory(ctx context.Context, sellerId string, limit, offset int) ([]models.CreditLedgerEntry, error) {
	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return nil, err
	}
	return s.db.GetCreditHistory(ctx, sellerId, limit, offset)
}

// SpendCredits debits credits from a seller, e.g. for AI generation
// or uploads. Amount is the positive number of credits to spend.
func (s *RevenueService) SpendCredits(ctx context.Context, sellerId string, amount int64, reason string) (*models.SpendResult, error) {
	if sellerId == "" || amount <= 0 {
		return &models.SpendResult{
			Success: false,
			Error:   "invalid spend parameters",
		}, nil
	}
	if reason == "" {
		reason = models.CreditReasonSpend
	}

	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return &models.SpendResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	entry, err := s.db.AddCredits(ctx, store.CreditEntryParams{
		SellerId:    sellerId,
		Amount:      -amount,
		Reason:      reason,
		ReferenceId: uuid.New().String(),
	})
	if err != nil {
		if errors.Is(err, store.ErrInsufficientCredits) {
			zap.L().Info("Credit spend rejected",
				zap.String("seller_id", sellerId),
				zap.Int64("amount", amount),
				zap.Error(err))
		} else {
			zap.L().Error("Credit spend failed",
				zap.String("seller_id", sellerId),
				zap.Int64("amount", amount),
				zap.Error(err))
		}

		return &models.SpendResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return &models.SpendResult{
		Success:    true,
		SellerId:   sellerId,
		Amount:     amount,
		NewBalance: entry.BalanceAfter,
	}, nil
}
