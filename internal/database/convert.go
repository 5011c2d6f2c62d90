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

// ConvertRevenue converts a seller's available revenue into platform
// credits in a single database transaction: the request row, the
// credit grant and the sale updates commit or roll back together.
func (s *Service) ConvertRevenue(ctx context.Context, params store.ConvertRevenueParams) (*store.ConvertRevenueResult, error) {
	if params.AmountCents <= 0 {
		return nil, fmt.Errorf("conversion amount must be positive, got %d", params.AmountCents)
	}
	if params.Credits <= 0 {
		return nil, fmt.Errorf("credits must be positive, got %d", params.Credits)
	}

	zap.L().Info("Converting revenue to credits",
		zap.String("seller_id", params.SellerId),
		zap.Int64("amount_cents", params.AmountCents),
		zap.Int64("credits", params.Credits))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Collect every available sale from both checkout tables.
	var sales []models.SaleRecord
	for _, source := range saleSources() {
		batch, err := listAvailableSales(ctx, tx, params.SellerId, source, 0)
		if err != nil {
			return nil, err
		}
		sales = append(sales, batch...)
	}

	requestId := uuid.New().String()
	now := time.Now()
	request := &models.RevenueRequest{
		Id:           requestId,
		SellerId:     params.SellerId,
		AmountCents:  params.AmountCents,
		RequestType:  models.RequestTypeConversion,
		Status:       models.RequestStatusCompleted,
		CreditsAdded: params.Credits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.insertRevenueRequest(ctx, tx, request); err != nil {
		return nil, err
	}

	// Grant credits through the ledger so the hot balance, the entry
	// and the request reference move together.
	entry, err := s.credits.applyEntry(ctx, tx, store.CreditEntryParams{
		SellerId:    params.SellerId,
		Amount:      params.Credits,
		Reason:      models.CreditReasonRevenueConversion,
		ReferenceId: requestId,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to grant credits: %w", err)
	}

	consumed, err := s.consumeSales(ctx, tx, sales, models.RevenueStatusCredited, requestId)
	if err != nil {
		return nil, fmt.Errorf("failed to mark sales credited: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Revenue conversion committed",
		zap.String("request_id", requestId),
		zap.String("seller_id", params.SellerId),
		zap.Int64("credits_granted", params.Credits),
		zap.Int64("sales_credited", consumed),
		zap.Int64("new_balance", entry.BalanceAfter))

	return &store.ConvertRevenueResult{
		RequestId:     requestId,
		SalesCredited: consumed,
		NewBalance:    entry.BalanceAfter,
	}, nil
}
