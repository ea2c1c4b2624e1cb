package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

// ReportActionRepository handles report timeline-action rows
type ReportActionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportActionRepository creates a new report action repository
func NewReportActionRepository(db *sql.DB, logger *zap.Logger) *ReportActionRepository {
	return &ReportActionRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes one timeline action
func (r *ReportActionRepository) Upsert(tx *sql.Tx, a *models.ReportAction) error {
	query := `
		INSERT INTO report_actions (id, report_id, type, actor_account_id, child_state)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			report_id = excluded.report_id,
			type = excluded.type,
			actor_account_id = excluded.actor_account_id,
			child_state = excluded.child_state
	`

	var err error
	if tx != nil {
		_, err = tx.Exec(query, a.ID, a.ReportID, string(a.Type), a.ActorAccountID, string(a.ChildState))
	} else {
		_, err = r.db.Exec(query, a.ID, a.ReportID, string(a.Type), a.ActorAccountID, string(a.ChildState))
	}
	if err != nil {
		r.logger.Error("Failed to upsert report action", zap.String("action_id", a.ID), zap.Error(err))
		return fmt.Errorf("failed to upsert report action: %w", err)
	}
	return nil
}

// ListByReportID retrieves all timeline actions on a report
func (r *ReportActionRepository) ListByReportID(reportID string) ([]models.ReportAction, error) {
	rows, err := r.db.Query(
		"SELECT id, report_id, type, actor_account_id, child_state FROM report_actions WHERE report_id = ? ORDER BY id", reportID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list report actions: %w", err)
	}
	defer rows.Close()

	var actions []models.ReportAction
	for rows.Next() {
		var a models.ReportAction
		if err := rows.Scan(&a.ID, &a.ReportID, &a.Type, &a.ActorAccountID, &a.ChildState); err != nil {
			return nil, fmt.Errorf("failed to scan report action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
