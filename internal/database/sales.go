package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saleTable maps a sale source to its backing table. Card and crypto
// checkouts land in separate tables with the same shape.
func saleTable(source string) (string, error) {
	switch source {
	case models.SaleSourceCard:
		return "card_sales", nil
	case models.SaleSourceCrypto:
		return "crypto_sales", nil
	default:
		return "", fmt.Errorf("unknown sale source: %q", source)
	}
}

// saleSources returns both sources in a stable order.
func saleSources() []string {
	return []string{models.SaleSourceCard, models.SaleSourceCrypto}
}

// RecordSale inserts a completed sale with revenue still available.
func (s *Service) RecordSale(ctx context.Context, params store.RecordSaleParams) (*models.SaleRecord, error) {
	table, err := saleTable(params.Source)
	if err != nil {
		return nil, err
	}
	if params.PurchaseAmountCents <= 0 {
		return nil, fmt.Errorf("purchase amount must be positive, got %d", params.PurchaseAmountCents)
	}

	zap.L().Info("Recording sale",
		zap.String("seller_id", params.SellerId),
		zap.String("source", params.Source),
		zap.String("asset_id", params.AssetId),
		zap.Int64("purchase_amount_cents", params.PurchaseAmountCents))

	saleId := uuid.New().String()
	sale := &models.SaleRecord{Source: params.Source}

	err = s.db.QueryRowContext(ctx, fmt.Sprintf(queryInsertSaleTmpl, table),
		saleId, params.SellerId, params.BuyerId, params.AssetId,
		params.PurchaseAmountCents, models.RevenueStatusAvailable, time.Now()).
		Scan(&sale.Id, &sale.SellerId, &sale.BuyerId, &sale.AssetId,
			&sale.PurchaseAmountCents, &sale.RevenueStatus, &sale.RevenueRequestId, &sale.CreatedAt)
	if err != nil {
		zap.L().Error("Failed to insert sale", zap.String("seller_id", params.SellerId), zap.Error(err))
		return nil, fmt.Errorf("unable to insert sale: %w", err)
	}

	return sale, nil
}

// CountSales returns the number of sales for a seller in one source
// table, regardless of revenue status.
func (s *Service) CountSales(ctx context.Context, sellerId, source string) (int64, error) {
	table, err := saleTable(source)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(queryCountSalesTmpl, table), sellerId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count %s sales: %w", source, err)
	}
	return count, nil
}

// CountAvailableSales returns the number of sales whose revenue has
// not yet been converted or reserved.
func (s *Service) CountAvailableSales(ctx context.Context, sellerId, source string) (int64, error) {
	table, err := saleTable(source)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.db.QueryRowContext(ctx, fmt.Sprintf(queryCountAvailableSalesTmpl, table), sellerId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unable to count available %s sales: %w", source, err)
	}
	return count, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx so sale reads can
// run standalone or inside a workflow transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ListAvailableSales returns up to limit available sales for a seller,
// oldest first. A limit <= 0 means no cap.
func (s *Service) ListAvailableSales(ctx context.Context, sellerId, source string, limit int64) ([]models.SaleRecord, error) {
	return listAvailableSales(ctx, s.db, sellerId, source, limit)
}

func listAvailableSales(ctx context.Context, q querier, sellerId, source string, limit int64) ([]models.SaleRecord, error) {
	table, err := saleTable(source)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := q.QueryContext(ctx, fmt.Sprintf(queryListAvailableSalesTmpl, table), sellerId, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to list available %s sales: %w", source, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	return scanSales(rows, source)
}

// GetSalesByRequest returns the sales consumed or reserved by a
// revenue request, across both source tables.
func (s *Service) GetSalesByRequest(ctx context.Context, requestId string) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	for _, source := range saleSources() {
		table, err := saleTable(source)
		if err != nil {
			return nil, err
		}

		rows, err := s.db.QueryContext(ctx, fmt.Sprintf(queryGetSalesByRequestTmpl, table), requestId)
		if err != nil {
			return nil, fmt.Errorf("unable to query %s sales by request: %w", source, err)
		}

		batch, err := scanSales(rows, source)
		if closeErr := rows.Close(); closeErr != nil {
			zap.L().Warn("Failed to close rows", zap.Error(closeErr))
		}
		if err != nil {
			return nil, err
		}
		sales = append(sales, batch...)
	}
	return sales, nil
}

func scanSales(rows *sql.Rows, source string) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	for rows.Next() {
		sale := models.SaleRecord{Source: source}
		err := rows.Scan(&sale.Id, &sale.SellerId, &sale.BuyerId, &sale.AssetId,
			&sale.PurchaseAmountCents, &sale.RevenueStatus, &sale.RevenueRequestId, &sale.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

// consumeSales moves the given sales out of the available state inside
// the caller's transaction and writes tracking rows for card-checkout
// sales. Returns how many rows actually transitioned; a sale no longer
// available is skipped, never reverted.
func (s *Service) consumeSales(ctx context.Context, tx *sql.Tx, sales []models.SaleRecord, status, requestId string) (int64, error) {
	now := time.Now()
	var consumed int64

	for _, sale := range sales {
		table, err := saleTable(sale.Source)
		if err != nil {
			return consumed, err
		}

		result, err := tx.ExecContext(ctx, fmt.Sprintf(queryConsumeSaleTmpl, table), status, requestId, sale.Id)
		if err != nil {
			return consumed, fmt.Errorf("failed to update sale %s: %w", sale.Id, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return consumed, fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			zap.L().Warn("Sale no longer available, skipping",
				zap.String("sale_id", sale.Id),
				zap.String("source", sale.Source))
			continue
		}
		consumed++

		// Shadow tracking rows exist for the card-checkout table only.
		if sale.Source == models.SaleSourceCard {
			_, err = tx.ExecContext(ctx, queryUpsertSaleTracking,
				uuid.New().String(), sale.Id, sale.SellerId, requestId, status, now)
			if err != nil {
				return consumed, fmt.Errorf("failed to upsert tracking for sale %s: %w", sale.Id, err)
			}
		}
	}

	return consumed, nil
}
