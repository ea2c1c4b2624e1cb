package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

// ReportRepository handles report snapshot rows
type ReportRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sql.DB, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes a report snapshot, replacing any previous version of the row
func (r *ReportRepository) Upsert(tx *sql.Tx, report *models.Report) error {
	query := `
		INSERT INTO reports (
			id, type, state, owner_account_id, manager_account_id, policy_id,
			chat_report_id, parent_report_id, total_spend, non_reimbursable_spend,
			currency, waiting_on_bank_account,
			invoice_receiver_type, invoice_receiver_account_id, invoice_receiver_policy_id,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			state = excluded.state,
			owner_account_id = excluded.owner_account_id,
			manager_account_id = excluded.manager_account_id,
			policy_id = excluded.policy_id,
			chat_report_id = excluded.chat_report_id,
			parent_report_id = excluded.parent_report_id,
			total_spend = excluded.total_spend,
			non_reimbursable_spend = excluded.non_reimbursable_spend,
			currency = excluded.currency,
			waiting_on_bank_account = excluded.waiting_on_bank_account,
			invoice_receiver_type = excluded.invoice_receiver_type,
			invoice_receiver_account_id = excluded.invoice_receiver_account_id,
			invoice_receiver_policy_id = excluded.invoice_receiver_policy_id,
			updated_at = CURRENT_TIMESTAMP
	`

	var receiverType string
	var receiverAccountID int64
	var receiverPolicyID string
	if report.InvoiceReceiver != nil {
		receiverType = string(report.InvoiceReceiver.Type)
		receiverAccountID = report.InvoiceReceiver.AccountID
		receiverPolicyID = report.InvoiceReceiver.PolicyID
	}

	args := []interface{}{
		report.ID, string(report.Type), string(report.State),
		report.OwnerAccountID, report.ManagerAccountID, report.PolicyID,
		report.ChatReportID, report.ParentReportID,
		report.TotalSpend, report.NonReimbursableSpend,
		report.Currency, report.WaitingOnBankAccount,
		receiverType, receiverAccountID, receiverPolicyID,
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(query, args...)
	} else {
		_, err = r.db.Exec(query, args...)
	}
	if err != nil {
		r.logger.Error("Failed to upsert report", zap.String("report_id", report.ID), zap.Error(err))
		return fmt.Errorf("failed to upsert report: %w", err)
	}
	return nil
}

// GetByID retrieves a report snapshot, returning nil when it does not exist
func (r *ReportRepository) GetByID(id string) (*models.Report, error) {
	query := `
		SELECT id, type, state, owner_account_id, manager_account_id, policy_id,
			chat_report_id, parent_report_id, total_spend, non_reimbursable_spend,
			currency, waiting_on_bank_account,
			invoice_receiver_type, invoice_receiver_account_id, invoice_receiver_policy_id
		FROM reports WHERE id = ?
	`

	var report models.Report
	var receiverType, receiverPolicyID string
	var receiverAccountID int64

	err := r.db.QueryRow(query, id).Scan(
		&report.ID, &report.Type, &report.State,
		&report.OwnerAccountID, &report.ManagerAccountID, &report.PolicyID,
		&report.ChatReportID, &report.ParentReportID,
		&report.TotalSpend, &report.NonReimbursableSpend,
		&report.Currency, &report.WaitingOnBankAccount,
		&receiverType, &receiverAccountID, &receiverPolicyID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if receiverType != "" {
		report.InvoiceReceiver = &models.InvoiceReceiver{
			Type:      models.InvoiceReceiverType(receiverType),
			AccountID: receiverAccountID,
			PolicyID:  receiverPolicyID,
		}
	}
	return &report, nil
}

// UpsertNameValuePairs writes a report's name-value-pairs record
func (r *ReportRepository) UpsertNameValuePairs(tx *sql.Tx, nvp *models.ReportNameValuePairs) error {
	query := `
		INSERT INTO report_nvps (report_id, is_archived) VALUES (?, ?)
		ON CONFLICT(report_id) DO UPDATE SET is_archived = excluded.is_archived
	`

	var err error
	if tx != nil {
		_, err = tx.Exec(query, nvp.ReportID, nvp.IsArchived)
	} else {
		_, err = r.db.Exec(query, nvp.ReportID, nvp.IsArchived)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert report nvp: %w", err)
	}
	return nil
}

// GetNameValuePairs retrieves a report's name-value-pairs record, nil when absent
func (r *ReportRepository) GetNameValuePairs(reportID string) (*models.ReportNameValuePairs, error) {
	var nvp models.ReportNameValuePairs
	err := r.db.QueryRow(
		"SELECT report_id, is_archived FROM report_nvps WHERE report_id = ?", reportID,
	).Scan(&nvp.ReportID, &nvp.IsArchived)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report nvp: %w", err)
	}
	return &nvp, nil
}
