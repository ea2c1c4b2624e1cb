package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

// TransactionRepository handles transaction snapshot rows
type TransactionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a transaction snapshot
func (r *TransactionRepository) Upsert(tx *sql.Tx, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (
			id, report_id, amount, modified_amount, currency,
			pending_action, receipt_state, on_hold, hold_actor_account_id,
			thread_report_id, duplicate_suspect, is_distance_request, pending_card_charge
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			report_id = excluded.report_id,
			amount = excluded.amount,
			modified_amount = excluded.modified_amount,
			currency = excluded.currency,
			pending_action = excluded.pending_action,
			receipt_state = excluded.receipt_state,
			on_hold = excluded.on_hold,
			hold_actor_account_id = excluded.hold_actor_account_id,
			thread_report_id = excluded.thread_report_id,
			duplicate_suspect = excluded.duplicate_suspect,
			is_distance_request = excluded.is_distance_request,
			pending_card_charge = excluded.pending_card_charge
	`

	args := []interface{}{
		t.ID, t.ReportID, t.Amount, t.ModifiedAmount, t.Currency,
		string(t.PendingAction), string(t.ReceiptState), t.OnHold, t.HoldActorAccountID,
		t.ThreadReportID, t.DuplicateSuspect, t.IsDistanceRequest, t.PendingCardCharge,
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(query, args...)
	} else {
		_, err = r.db.Exec(query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to upsert transaction", zap.String("transaction_id", t.ID), zap.Error(err))
		return fmt.Errorf("failed to upsert transaction: %w", err)
	}
	return nil
}

const transactionColumns = `
	id, report_id, amount, modified_amount, currency,
	pending_action, receipt_state, on_hold, hold_actor_account_id,
	thread_report_id, duplicate_suspect, is_distance_request, pending_card_charge
`

func scanTransaction(row interface{ Scan(...interface{}) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID, &t.ReportID, &t.Amount, &t.ModifiedAmount, &t.Currency,
		&t.PendingAction, &t.ReceiptState, &t.OnHold, &t.HoldActorAccountID,
		&t.ThreadReportID, &t.DuplicateSuspect, &t.IsDistanceRequest, &t.PendingCardCharge,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a transaction snapshot, returning nil when absent
func (r *TransactionRepository) GetByID(id string) (*models.Transaction, error) {
	row := r.db.QueryRow("SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// ListByReportID retrieves all transactions on a report
func (r *TransactionRepository) ListByReportID(reportID string) ([]models.Transaction, error) {
	rows, err := r.db.Query("SELECT "+transactionColumns+" FROM transactions WHERE report_id = ? ORDER BY id", reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}
