package api

import (
	"context"
	"errors"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/revenue"

	"go.uber.org/zap"
)

// ConvertRevenue runs the revenue-to-credits conversion for a seller.
// Workflow rejections come back as an unsuccessful result rather than
// an error so callers can surface the message directly.
func (s *RevenueService) ConvertRevenue(ctx context.Context, sellerId string) (*models.ConversionResult, error) {
	if sellerId == "" {
		return &models.ConversionResult{
			Success: false,
			Error:   "seller id is required",
		}, nil
	}

	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return &models.ConversionResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	result, err := s.conversion.Convert(ctx, sellerId)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrOperationInFlight),
			errors.Is(err, revenue.ErrNoRevenue),
			errors.Is(err, revenue.ErrDuplicateConversion):
			zap.L().Info("Conversion rejected",
				zap.String("seller_id", sellerId),
				zap.Error(err))
		default:
			zap.L().Error("Conversion failed",
				zap.String("seller_id", sellerId),
				zap.Error(err))
		}

		return &models.ConversionResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return result, nil
}

// RequestPayout creates a pending fiat payout request for a seller.
func (s *RevenueService) RequestPayout(ctx context.Context, sellerId string, contact models.PayoutContact) (*models.PayoutResult, error) {
	if sellerId == "" {
		return &models.PayoutResult{
			Success: false,
			Error:   "seller id is required",
		}, nil
	}

	if _, err := s.db.GetSellerById(ctx, sellerId); err != nil {
		return &models.PayoutResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	result, err := s.payout.Request(ctx, sellerId, contact)
	if err != nil {
		switch {
		case errors.Is(err, revenue.ErrOperationInFlight),
			errors.Is(err, revenue.ErrNoRevenue),
			errors.Is(err, revenue.ErrInvalidContact):
			zap.L().Info("Payout request rejected",
				zap.String("seller_id", sellerId),
				zap.Error(err))
		default:
			zap.L().Error("Payout request failed",
				zap.String("seller_id", sellerId),
				zap.Error(err))
		}

		return &models.PayoutResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return result, nil
}
