package database

import (
	"context"
	"fmt"
	"time"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReserveForPayout creates a pending fiat payout request and reserves
// the backing sales in a single database transaction. Each checkout
// table is fetched with its own SalesNeeded cap.
func (s *Service) ReserveForPayout(ctx context.Context, params store.ReservePayoutParams) (*store.ReservePayoutResult, error) {
	if params.AmountCents <= 0 {
		return nil, fmt.Errorf("payout amount must be positive, got %d", params.AmountCents)
	}
	if params.SalesNeeded <= 0 {
		return nil, fmt.Errorf("sales needed must be positive, got %d", params.SalesNeeded)
	}

	zap.L().Info("Reserving sales for payout request",
		zap.String("seller_id", params.SellerId),
		zap.Int64("amount_cents", params.AmountCents),
		zap.Int64("sales_needed", params.SalesNeeded))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sales []models.SaleRecord
	for _, source := range saleSources() {
		batch, err := listAvailableSales(ctx, tx, params.SellerId, source, params.SalesNeeded)
		if err != nil {
			return nil, err
		}
		sales = append(sales, batch...)
	}

	requestId := uuid.New().String()
	now := time.Now()
	request := &models.RevenueRequest{
		Id:            requestId,
		SellerId:      params.SellerId,
		AmountCents:   params.AmountCents,
		RequestType:   models.RequestTypeStripePayment,
		Status:        models.RequestStatusPending,
		ContactName:   params.Contact.Name,
		ContactEmail:  params.Contact.Email,
		ContactPhone:  params.Contact.Phone,
		PayoutAccount: params.Contact.PayoutAccount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.insertRevenueRequest(ctx, tx, request); err != nil {
		return nil, err
	}

	reserved, err := s.consumeSales(ctx, tx, sales, models.RevenueStatusPaymentRequested, requestId)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve sales: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Payout reservation committed",
		zap.String("request_id", requestId),
		zap.String("seller_id", params.SellerId),
		zap.Int64("amount_cents", params.AmountCents),
		zap.Int64("reserved_count", reserved))

	return &store.ReservePayoutResult{
		RequestId:     requestId,
		ReservedCount: reserved,
	}, nil
}
