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

// CreditLedgerService handles the platform-credit subledger: a hot
// balance row per seller plus an append-only entry log. This is the
// atomic add_credits procedure of the product, kept server-side.
type CreditLedgerService struct {
	db *sql.DB
}

func NewCreditLedgerService(db *sql.DB) *CreditLedgerService {
	return &CreditLedgerService{
		db: db,
	}
}

func (s *CreditLedgerService) InitSchema() error {
	schema := `
	-- Credit Balances Table (Current State - Hot Data)
	CREATE TABLE IF NOT EXISTS credit_balances (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		balance INTEGER NOT NULL DEFAULT 0,
		last_entry_id TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(seller_id)
	);

	-- Credit Ledger Table (Audit Trail - Cold Data)
	CREATE TABLE IF NOT EXISTS credit_ledger (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		amount INTEGER NOT NULL,
		reason TEXT NOT NULL,
		reference_id TEXT,
		balance_before INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_credit_balances_seller ON credit_balances(seller_id);
	CREATE INDEX IF NOT EXISTS idx_credit_ledger_seller ON credit_ledger(seller_id);
	CREATE INDEX IF NOT EXISTS idx_credit_ledger_reference ON credit_ledger(reference_id);
	CREATE INDEX IF NOT EXISTS idx_credit_ledger_created_at ON credit_ledger(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// ProcessEntry atomically updates the seller's credit balance and
// records the ledger entry.
func (s *CreditLedgerService) ProcessEntry(ctx context.Context, params store.CreditEntryParams) (*models.CreditLedgerEntry, error) {
	zap.L().Info("Processing credit entry",
		zap.String("seller_id", params.SellerId),
		zap.String("reason", params.Reason),
		zap.Int64("amount", params.Amount),
		zap.String("reference_id", params.ReferenceId))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	entry, err := s.applyEntry(ctx, tx, params)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.L().Info("Credit entry processed successfully",
		zap.String("entry_id", entry.Id),
		zap.String("seller_id", params.SellerId),
		zap.Int64("old_balance", entry.BalanceBefore),
		zap.Int64("new_balance", entry.BalanceAfter))

	return entry, nil
}

// applyEntry performs the balance update and entry insert inside the
// caller's transaction. ConvertRevenue reuses it so the credit grant
// commits together with the sale updates.
func (s *CreditLedgerService) applyEntry(ctx context.Context, tx *sql.Tx, params store.CreditEntryParams) (*models.CreditLedgerEntry, error) {
	// Check for duplicate reference id
	if params.ReferenceId != "" {
		var existingId string
		err := tx.QueryRowContext(ctx, queryCheckDuplicateReference, params.ReferenceId).Scan(&existingId)
		if err == nil {
			zap.L().Warn("Duplicate credit ledger reference detected, skipping",
				zap.String("reference_id", params.ReferenceId),
				zap.String("existing_entry_id", existingId))
			return nil, fmt.Errorf("%w: reference_id %s already exists", store.ErrDuplicateReference, params.ReferenceId)
		} else if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to check for duplicate reference: %w", err)
		}
	}

	// Get current balance
	var accountId string
	var currentBalance int64
	var version int64

	err := tx.QueryRowContext(ctx, queryGetCreditAccount, params.SellerId).Scan(&accountId, &currentBalance, &version)
	if err == sql.ErrNoRows {
		// Create new credit balance record
		accountId = uuid.New().String()
		currentBalance = 0
		version = 1

		_, err = tx.ExecContext(ctx, queryInsertCreditAccount, accountId, params.SellerId, 0, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to create credit balance: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get current balance: %w", err)
	}

	newBalance := currentBalance + params.Amount
	if params.Amount < 0 && newBalance < 0 {
		return nil, fmt.Errorf("%w: balance=%d, requested=%d", store.ErrInsufficientCredits, currentBalance, -params.Amount)
	}

	// Create ledger entry
	entryId := uuid.New().String()
	now := time.Now()
	entry := &models.CreditLedgerEntry{}

	err = tx.QueryRowContext(ctx, queryInsertCreditEntry,
		entryId, params.SellerId, params.Amount, params.Reason, params.ReferenceId,
		currentBalance, newBalance, now).
		Scan(&entry.Id, &entry.SellerId, &entry.Amount, &entry.Reason, &entry.ReferenceId,
			&entry.BalanceBefore, &entry.BalanceAfter, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert credit entry: %w", err)
	}

	// Update credit balance (with optimistic locking)
	result, err := tx.ExecContext(ctx, queryUpdateCreditAccount, newBalance, entryId, params.SellerId, version)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("balance update failed - %w", store.ErrConcurrentModification)
	}

	return entry, nil
}

// GetBalance returns the current credit balance for a seller (O(1) lookup)
func (s *CreditLedgerService) GetBalance(ctx context.Context, sellerId string) (int64, error) {
	zap.L().Debug("Getting credit balance", zap.String("seller_id", sellerId))

	var balance int64
	err := s.db.QueryRowContext(ctx, queryGetCreditBalance, sellerId).Scan(&balance)
	if err == sql.ErrNoRows {
		// No balance record means zero credits
		return 0, nil
	}
	if err != nil {
		zap.L().Error("Failed to get credit balance", zap.String("seller_id", sellerId), zap.Error(err))
		return 0, fmt.Errorf("failed to get credit balance: %w", err)
	}

	return balance, nil
}

// GetHistory returns paginated credit ledger entries for a seller
func (s *CreditLedgerService) GetHistory(ctx context.Context, sellerId string, limit, offset int) ([]models.CreditLedgerEntry, error) {
	zap.L().Debug("Getting credit history",
		zap.String("seller_id", sellerId),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	rows, err := s.db.QueryContext(ctx, queryGetCreditHistory, sellerId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var entries []models.CreditLedgerEntry
	for rows.Next() {
		var entry models.CreditLedgerEntry
		err := rows.Scan(&entry.Id, &entry.SellerId, &entry.Amount, &entry.Reason, &entry.ReferenceId,
			&entry.BalanceBefore, &entry.BalanceAfter, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during credit entry row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating credit entry rows: %w", err)
	}

	return entries, nil
}

// ReconcileBalance verifies that the hot balance matches the sum of all ledger entries
func (s *CreditLedgerService) ReconcileBalance(ctx context.Context, sellerId string) error {
	zap.L().Info("Reconciling credit balance", zap.String("seller_id", sellerId))

	currentBalance, err := s.GetBalance(ctx, sellerId)
	if err != nil {
		return fmt.Errorf("failed to get current balance: %w", err)
	}

	var calculatedBalance int64
	err = s.db.QueryRowContext(ctx, queryReconcileCreditBalance, sellerId).Scan(&calculatedBalance)
	if err != nil {
		return fmt.Errorf("failed to calculate balance from ledger: %w", err)
	}

	if currentBalance != calculatedBalance {
		zap.L().Error("Credit balance reconciliation failed",
			zap.String("seller_id", sellerId),
			zap.Int64("current_balance", currentBalance),
			zap.Int64("calculated_balance", calculatedBalance),
			zap.Int64("difference", currentBalance-calculatedBalance))
		return fmt.Errorf("credit balance mismatch: current=%d, calculated=%d", currentBalance, calculatedBalance)
	}

	zap.L().Info("Credit balance reconciliation successful",
		zap.String("seller_id", sellerId),
		zap.Int64("balance", currentBalance))
	return nil
}
