package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cardmarket-revenue-go/internal/models"

	"go.uber.org/zap"
)

// GetRevenueRequests returns a seller's conversion and payout
// requests, newest first.
func (s *Service) GetRevenueRequests(ctx context.Context, sellerId string) ([]models.RevenueRequest, error) {
	zap.L().Debug("Querying revenue requests", zap.String("seller_id", sellerId))

	rows, err := s.db.QueryContext(ctx, queryGetRevenueRequestsBySeller, sellerId)
	if err != nil {
		return nil, fmt.Errorf("unable to query revenue requests: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var requests []models.RevenueRequest
	for rows.Next() {
		var req models.RevenueRequest
		err := rows.Scan(&req.Id, &req.SellerId, &req.AmountCents, &req.RequestType, &req.Status,
			&req.CreditsAdded, &req.ContactName, &req.ContactEmail, &req.ContactPhone,
			&req.PayoutAccount, &req.CreatedAt, &req.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan revenue request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue request rows: %w", err)
	}

	return requests, nil
}

// SumPendingPayoutCents returns the total amount tied up in pending
// fiat payout requests for a seller.
func (s *Service) SumPendingPayoutCents(ctx context.Context, sellerId string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, querySumPendingPayoutCents, sellerId).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("unable to sum pending payout requests: %w", err)
	}
	return total, nil
}

// FindRecentCompletedConversion looks for a completed conversion of
// the same amount within the given window. Used as the
// double-submission safeguard; returns nil when none exists.
func (s *Service) FindRecentCompletedConversion(ctx context.Context, sellerId string, amountCents int64, window time.Duration) (*models.RevenueRequest, error) {
	cutoff := time.Now().Add(-window)

	var req models.RevenueRequest
	err := s.db.QueryRowContext(ctx, queryFindRecentCompletedConversion, sellerId, amountCents, cutoff).
		Scan(&req.Id, &req.SellerId, &req.AmountCents, &req.RequestType, &req.Status,
			&req.CreditsAdded, &req.ContactName, &req.ContactEmail, &req.ContactPhone,
			&req.PayoutAccount, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to check for recent conversion: %w", err)
	}

	return &req, nil
}

// insertRevenueRequest writes a request row inside the caller's
// transaction.
func (s *Service) insertRevenueRequest(ctx context.Context, tx *sql.Tx, req *models.RevenueRequest) error {
	_, err := tx.ExecContext(ctx, queryInsertRevenueRequest,
		req.Id, req.SellerId, req.AmountCents, req.RequestType, req.Status, req.CreditsAdded,
		req.ContactName, req.ContactEmail, req.ContactPhone, req.PayoutAccount,
		req.CreatedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert revenue request: %w", err)
	}
	return nil
}
