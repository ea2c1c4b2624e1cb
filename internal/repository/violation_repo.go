package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

// ViolationRepository handles per-transaction violation rows
type ViolationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewViolationRepository creates a new violation repository
func NewViolationRepository(db *sql.DB, logger *zap.Logger) *ViolationRepository {
	return &ViolationRepository{
		db:     db,
		logger: logger,
	}
}

// Replace swaps the full violation set of one transaction
func (r *ViolationRepository) Replace(tx *sql.Tx, transactionID string, violations []models.Violation) error {
	exec := r.db.Exec
	if tx != nil {
		exec = tx.Exec
	}

	if _, err := exec("DELETE FROM violations WHERE transaction_id = ?", transactionID); err != nil {
		return fmt.Errorf("failed to clear violations: %w", err)
	}
	for _, v := range violations {
		_, err := exec(
			"INSERT INTO violations (transaction_id, name, pending) VALUES (?, ?, ?)",
			transactionID, string(v.Name), v.Pending,
		)
		if err != nil {
			r.logger.Error("Failed to insert violation",
				zap.String("transaction_id", transactionID),
				zap.String("name", string(v.Name)),
				zap.Error(err))
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}
	return nil
}

// GetForReport retrieves the violations of every transaction on a report,
// keyed by transaction ID
func (r *ViolationRepository) GetForReport(reportID string) (models.ViolationMap, error) {
	rows, err := r.db.Query(`
		SELECT v.transaction_id, v.name, v.pending
		FROM violations v
		JOIN transactions t ON t.id = v.transaction_id
		WHERE t.report_id = ?
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	violations := make(models.ViolationMap)
	for rows.Next() {
		var transactionID string
		var v models.Violation
		if err := rows.Scan(&transactionID, &v.Name, &v.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations[transactionID] = append(violations[transactionID], v)
	}
	return violations, rows.Err()
}

// GetForTransaction retrieves one transaction's violations keyed by its ID
func (r *ViolationRepository) GetForTransaction(transactionID string) (models.ViolationMap, error) {
	rows, err := r.db.Query(
		"SELECT name, pending FROM violations WHERE transaction_id = ?", transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	violations := make(models.ViolationMap)
	for rows.Next() {
		var v models.Violation
		if err := rows.Scan(&v.Name, &v.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations[transactionID] = append(violations[transactionID], v)
	}
	return violations, rows.Err()
}
