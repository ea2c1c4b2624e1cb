package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

// PolicyRepository handles policy snapshot rows and their accounting
// connections
type PolicyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(db *sql.DB, logger *zap.Logger) *PolicyRepository {
	return &PolicyRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a policy snapshot and replaces its connection rows
func (r *PolicyRepository) Upsert(tx *sql.Tx, p *models.Policy) error {
	query := `
		INSERT INTO policies (
			id, role, approval_mode, prevent_self_approval, payments_enabled,
			owner_account_id, approver_account_id, reimburser_account_id,
			auto_reporting, auto_reporting_frequency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			role = excluded.role,
			approval_mode = excluded.approval_mode,
			prevent_self_approval = excluded.prevent_self_approval,
			payments_enabled = excluded.payments_enabled,
			owner_account_id = excluded.owner_account_id,
			approver_account_id = excluded.approver_account_id,
			reimburser_account_id = excluded.reimburser_account_id,
			auto_reporting = excluded.auto_reporting,
			auto_reporting_frequency = excluded.auto_reporting_frequency
	`

	exec := r.db.Exec
	if tx != nil {
		exec = tx.Exec
	}

	_, err := exec(query,
		p.ID, string(p.Role), string(p.ApprovalMode), p.PreventSelfApproval, p.PaymentsEnabled,
		p.OwnerAccountID, p.ApproverAccountID, p.ReimburserAccountID,
		p.AutoReporting, string(p.AutoReportingFrequency),
	)
	if err != nil {
		r.logger.Error("Failed to upsert policy", zap.String("policy_id", p.ID), zap.Error(err))
		return fmt.Errorf("failed to upsert policy: %w", err)
	}

	if _, err := exec("DELETE FROM policy_connections WHERE policy_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear policy connections: %w", err)
	}
	for _, conn := range p.Connections {
		_, err := exec(
			"INSERT INTO policy_connections (policy_id, name, auto_sync, preferred_exporter_account_id) VALUES (?, ?, ?, ?)",
			p.ID, conn.Name, conn.AutoSync, conn.PreferredExporterAccountID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert policy connection: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a policy snapshot with its connections, nil when absent
func (r *PolicyRepository) GetByID(id string) (*models.Policy, error) {
	var p models.Policy
	err := r.db.QueryRow(`
		SELECT id, role, approval_mode, prevent_self_approval, payments_enabled,
			owner_account_id, approver_account_id, reimburser_account_id,
			auto_reporting, auto_reporting_frequency
		FROM policies WHERE id = ?
	`, id).Scan(
		&p.ID, &p.Role, &p.ApprovalMode, &p.PreventSelfApproval, &p.PaymentsEnabled,
		&p.OwnerAccountID, &p.ApproverAccountID, &p.ReimburserAccountID,
		&p.AutoReporting, &p.AutoReportingFrequency,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	rows, err := r.db.Query(
		"SELECT name, auto_sync, preferred_exporter_account_id FROM policy_connections WHERE policy_id = ? ORDER BY name", id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list policy connections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var conn models.AccountingConnection
		if err := rows.Scan(&conn.Name, &conn.AutoSync, &conn.PreferredExporterAccountID); err != nil {
			return nil, fmt.Errorf("failed to scan policy connection: %w", err)
		}
		p.Connections = append(p.Connections, conn)
	}
	return &p, rows.Err()
}
