package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/decision"
	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/repository"
	"github.com/expensewire/report-actions/pkg/database"
	"github.com/expensewire/report-actions/pkg/metrics"
)

// Exporter writes a reimbursed or closed report to an accounting artifact and
// returns the path of the produced file.
type Exporter interface {
	WriteReport(report *models.Report, transactions []models.Transaction) (string, error)
}

// ErrReportNotFound is returned when a decision or export is requested for an
// unknown report ID.
var ErrReportNotFound = fmt.Errorf("report not found")

// ErrTransactionNotFound is returned when a thread decision is requested for
// an unknown transaction ID.
var ErrTransactionNotFound = fmt.Errorf("transaction not found")

// ErrNotExportable is returned when an export is requested for a report whose
// primary action is not the accounting export.
var ErrNotExportable = fmt.Errorf("report is not ready for accounting export")

// Bundle is one snapshot ingest payload. Everything in it is written in a
// single transaction so readers never observe half a sync.
type Bundle struct {
	Reports        []models.Report               `json:"reports,omitempty"`
	NameValuePairs []models.ReportNameValuePairs `json:"name_value_pairs,omitempty"`
	Policies       []models.Policy               `json:"policies,omitempty"`
	Transactions   []models.Transaction          `json:"transactions,omitempty"`
	Violations     models.ViolationMap           `json:"violations,omitempty"`
	ReportActions  []models.ReportAction         `json:"report_actions,omitempty"`
}

// Service resolves decision requests against the latest ingested snapshot
type Service struct {
	db           *database.DB
	reports      *repository.ReportRepository
	transactions *repository.TransactionRepository
	policies     *repository.PolicyRepository
	violations   *repository.ViolationRepository
	actions      *repository.ReportActionRepository
	exporter     Exporter
	metrics      *metrics.Collector
	logger       *zap.Logger
}

// NewService creates a new snapshot service
func NewService(
	db *database.DB,
	reports *repository.ReportRepository,
	transactions *repository.TransactionRepository,
	policies *repository.PolicyRepository,
	violations *repository.ViolationRepository,
	actions *repository.ReportActionRepository,
	exporter Exporter,
	collector *metrics.Collector,
	logger *zap.Logger,
) *Service {
	return &Service{
		db:           db,
		reports:      reports,
		transactions: transactions,
		policies:     policies,
		violations:   violations,
		actions:      actions,
		exporter:     exporter,
		metrics:      collector,
		logger:       logger,
	}
}

// IngestSnapshot writes a full bundle atomically
func (s *Service) IngestSnapshot(ctx context.Context, bundle *Bundle) (int, error) {
	records := 0
	err := s.db.WithTransaction(func(tx *sql.Tx) error {
		for i := range bundle.Reports {
			if err := s.reports.Upsert(tx, &bundle.Reports[i]); err != nil {
				return err
			}
			records++
		}
		for i := range bundle.NameValuePairs {
			if err := s.reports.UpsertNameValuePairs(tx, &bundle.NameValuePairs[i]); err != nil {
				return err
			}
			records++
		}
		for i := range bundle.Policies {
			if err := s.policies.Upsert(tx, &bundle.Policies[i]); err != nil {
				return err
			}
			records++
		}
		for i := range bundle.Transactions {
			if err := s.transactions.Upsert(tx, &bundle.Transactions[i]); err != nil {
				return err
			}
			records++
		}
		for transactionID, violations := range bundle.Violations {
			if err := s.violations.Replace(tx, transactionID, violations); err != nil {
				return err
			}
			records += len(violations)
		}
		for i := range bundle.ReportActions {
			if err := s.actions.Upsert(tx, &bundle.ReportActions[i]); err != nil {
				return err
			}
			records++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Snapshot ingest failed", zap.Error(err))
		return 0, err
	}

	s.metrics.RecordIngest(records)
	s.logger.Info("Snapshot ingested", zap.Int("records", records))
	return records, nil
}

func (s *Service) loadPrimaryParams(reportID string, accountID int64) (*decision.PrimaryActionParams, error) {
	rpt, err := s.reports.GetByID(reportID)
	if err != nil {
		return nil, err
	}
	if rpt == nil {
		return nil, ErrReportNotFound
	}

	transactions, err := s.transactions.ListByReportID(reportID)
	if err != nil {
		return nil, err
	}
	violations, err := s.violations.GetForReport(reportID)
	if err != nil {
		return nil, err
	}
	actions, err := s.actions.ListByReportID(reportID)
	if err != nil {
		return nil, err
	}
	nvp, err := s.reports.GetNameValuePairs(reportID)
	if err != nil {
		return nil, err
	}

	var policy *models.Policy
	if rpt.PolicyID != "" {
		if policy, err = s.policies.GetByID(rpt.PolicyID); err != nil {
			return nil, err
		}
	}

	var chatReport *models.Report
	chatArchived := false
	if rpt.ChatReportID != "" {
		if chatReport, err = s.reports.GetByID(rpt.ChatReportID); err != nil {
			return nil, err
		}
		chatNVP, err := s.reports.GetNameValuePairs(rpt.ChatReportID)
		if err != nil {
			return nil, err
		}
		chatArchived = chatNVP != nil && chatNVP.IsArchived
	}

	var receiverPolicy *models.Policy
	if rpt.InvoiceReceiver != nil && rpt.InvoiceReceiver.PolicyID != "" {
		if receiverPolicy, err = s.policies.GetByID(rpt.InvoiceReceiver.PolicyID); err != nil {
			return nil, err
		}
	}

	return &decision.PrimaryActionParams{
		Report:                rpt,
		ChatReport:            chatReport,
		Transactions:          transactions,
		Violations:            violations,
		Policy:                policy,
		ReportNameValuePairs:  nvp,
		ReportActions:         actions,
		IsChatReportArchived:  chatArchived,
		InvoiceReceiverPolicy: receiverPolicy,
		CurrentUserAccountID:  accountID,
	}, nil
}

// ReportPrimaryAction resolves the primary action of one report for one viewer
func (s *Service) ReportPrimaryAction(ctx context.Context, reportID string, accountID int64) (decision.PrimaryAction, error) {
	params, err := s.loadPrimaryParams(reportID, accountID)
	if err != nil {
		return decision.PrimaryActionNone, err
	}

	start := time.Now()
	action := decision.GetReportPrimaryAction(*params)
	s.metrics.RecordDecision("primary", action.String(), time.Since(start))

	s.logger.Debug("Resolved report primary action",
		zap.String("report_id", reportID),
		zap.Int64("account_id", accountID),
		zap.String("action", action.String()))
	return action, nil
}

// ReportPreviewAction resolves the summary-card action of one report
func (s *Service) ReportPreviewAction(ctx context.Context, reportID string, accountID int64, animationRunning, checkApprovedState bool) (decision.PreviewAction, error) {
	params, err := s.loadPrimaryParams(reportID, accountID)
	if err != nil {
		return decision.PreviewActionView, err
	}

	start := time.Now()
	action := decision.GetReportPreviewAction(decision.PreviewActionParams{
		Report:                    params.Report,
		Policy:                    params.Policy,
		Transactions:              params.Transactions,
		Violations:                params.Violations,
		ReportActions:             params.ReportActions,
		InvoiceReceiverPolicy:     params.InvoiceReceiverPolicy,
		IsReportArchived:          params.ReportNameValuePairs != nil && params.ReportNameValuePairs.IsArchived,
		IsChatReportArchived:      params.IsChatReportArchived,
		CurrentUserAccountID:      accountID,
		IsPaymentAnimationRunning: animationRunning,
		ShouldCheckApprovedState:  checkApprovedState,
	})
	s.metrics.RecordDecision("preview", action.String(), time.Since(start))
	return action, nil
}

// TransactionThreadAction resolves the primary action of one transaction thread
func (s *Service) TransactionThreadAction(ctx context.Context, transactionID string, accountID int64) (decision.TransactionThreadAction, error) {
	tx, err := s.transactions.GetByID(transactionID)
	if err != nil {
		return decision.ThreadActionNone, err
	}
	if tx == nil {
		return decision.ThreadActionNone, ErrTransactionNotFound
	}

	var thread *models.Report
	if tx.ThreadReportID != "" {
		if thread, err = s.reports.GetByID(tx.ThreadReportID); err != nil {
			return decision.ThreadActionNone, err
		}
	}
	var parent *models.Report
	if tx.ReportID != "" {
		if parent, err = s.reports.GetByID(tx.ReportID); err != nil {
			return decision.ThreadActionNone, err
		}
	}
	var policy *models.Policy
	if parent != nil && parent.PolicyID != "" {
		if policy, err = s.policies.GetByID(parent.PolicyID); err != nil {
			return decision.ThreadActionNone, err
		}
	}
	violations, err := s.violations.GetForTransaction(transactionID)
	if err != nil {
		return decision.ThreadActionNone, err
	}

	start := time.Now()
	action := decision.GetTransactionThreadPrimaryAction(thread, parent, tx, violations, policy, accountID)
	s.metrics.RecordDecision("thread", action.String(), time.Since(start))
	return action, nil
}

// ExportReport writes a report to an accounting workbook, gated on the report
// actually resolving to the export action for the requesting user.
func (s *Service) ExportReport(ctx context.Context, reportID string, accountID int64) (string, error) {
	params, err := s.loadPrimaryParams(reportID, accountID)
	if err != nil {
		return "", err
	}

	if action := decision.GetReportPrimaryAction(*params); action != decision.PrimaryActionExportToAccounting {
		s.logger.Warn("Export rejected",
			zap.String("report_id", reportID),
			zap.Int64("account_id", accountID),
			zap.String("resolved_action", action.String()))
		return "", ErrNotExportable
	}

	path, err := s.exporter.WriteReport(params.Report, params.Transactions)
	if err != nil {
		s.metrics.RecordExport("failure")
		s.logger.Error("Accounting export failed", zap.String("report_id", reportID), zap.Error(err))
		return "", fmt.Errorf("failed to export report: %w", err)
	}

	s.metrics.RecordExport("success")
	s.logger.Info("Report exported",
		zap.String("report_id", reportID),
		zap.String("path", path))
	return path, nil
}
