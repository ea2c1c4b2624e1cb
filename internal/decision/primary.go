package decision

import (
	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/policyutil"
	"github.com/expensewire/report-actions/internal/report"
)

// PrimaryActionParams bundles the snapshot GetReportPrimaryAction decides
// over. Optional fields (Policy, ReportNameValuePairs, ReportActions,
// InvoiceReceiverPolicy, ChatReport) may be nil/empty and read as "feature
// disabled" / "not archived" / "no history".
type PrimaryActionParams struct {
	Report                *models.Report
	ChatReport            *models.Report
	Transactions          []models.Transaction
	Violations            models.ViolationMap
	Policy                *models.Policy
	ReportNameValuePairs  *models.ReportNameValuePairs
	ReportActions         []models.ReportAction
	IsChatReportArchived  bool
	InvoiceReceiverPolicy *models.Policy
	CurrentUserAccountID  int64
}

func (p PrimaryActionParams) isArchived() bool {
	return report.IsArchived(p.ReportNameValuePairs)
}

// GetReportPrimaryAction computes the single primary action for a report.
// The rules below form a strict precedence chain: the first match wins and
// evaluation stops, which is what keeps overlapping eligibility conditions
// from ever surfacing two actions for the same state. Reordering the chain
// changes behavior.
func GetReportPrimaryAction(p PrimaryActionParams) PrimaryAction {
	if p.Report == nil {
		return PrimaryActionNone
	}

	if isAddExpenseAction(p) {
		return PrimaryActionAddExpense
	}
	if isMarkAsCashAction(p) {
		return PrimaryActionMarkAsCash
	}
	if isReviewDuplicatesAction(p) {
		return PrimaryActionReviewDuplicates
	}
	if isRemoveHoldAction(p) {
		return PrimaryActionRemoveHold
	}
	if isSubmitAction(p) {
		return PrimaryActionSubmit
	}
	if isApproveAction(p) {
		return PrimaryActionApprove
	}
	if isPrimaryPayAction(p.Report, p.Policy, p.ReportActions, p.InvoiceReceiverPolicy, p.isArchived(), p.CurrentUserAccountID) {
		return PrimaryActionPay
	}
	if isExportAction(p) {
		return PrimaryActionExportToAccounting
	}
	if hasReleasableHold(p.Transactions, p.CurrentUserAccountID) {
		return PrimaryActionRemoveHold
	}
	return PrimaryActionNone
}

// isAddExpenseAction: an empty expense report's only sensible action is
// adding an expense.
func isAddExpenseAction(p PrimaryActionParams) bool {
	return report.IsExpenseReport(p.Report) &&
		!p.isArchived() &&
		report.CanAddTransactions(p.Report, p.Policy, p.ReportNameValuePairs, p.CurrentUserAccountID) &&
		len(p.Transactions) == 0
}

// isMarkAsCashAction: a single stuck transaction can be converted to a cash
// expense, either because its receipt match is still pending or because the
// accounting connection is broken and the viewer controls the report.
func isMarkAsCashAction(p PrimaryActionParams) bool {
	if len(p.Transactions) != 1 {
		return false
	}
	if report.AllHavePendingRTERViolation(p.Transactions, p.Violations) {
		return true
	}
	controlsReport := report.IsCurrentUserSubmitter(p.Report, p.CurrentUserAccountID) ||
		report.IsReportManager(p.Report, p.CurrentUserAccountID) ||
		policyutil.IsPolicyAdmin(p.Policy)
	return controlsReport &&
		report.ShouldShowBrokenConnectionViolation(p.Transactions, p.Report, p.Policy, p.Violations, p.CurrentUserAccountID)
}

// isReviewDuplicatesAction: suspected duplicates need review before the
// report can move, so this outranks Submit and everything after it.
func isReviewDuplicatesAction(p PrimaryActionParams) bool {
	if !report.IsOpenReport(p.Report) && !report.IsProcessingReport(p.Report) {
		return false
	}
	if !report.IsCurrentUserSubmitter(p.Report, p.CurrentUserAccountID) &&
		!report.IsReportManager(p.Report, p.CurrentUserAccountID) {
		return false
	}
	for _, t := range p.Transactions {
		if report.IsDuplicate(t) {
			return true
		}
	}
	return false
}

// isRemoveHoldAction fires on either of two paths: the viewer created a hold
// that lives on an existing transaction thread, or the report would be
// payable except that every expense in it is held, in which case Pay is
// suppressed in favor of releasing the holds.
//
// The second path deliberately calls isPrimaryPayAction WITHOUT the invoice
// receiver policy: the hold short-circuit is scoped to reports the viewer
// pays through their own policy, so an all-held invoice report does not
// redirect here. The full argument list is used by the Pay rule itself.
func isRemoveHoldAction(p PrimaryActionParams) bool {
	for _, t := range p.Transactions {
		if report.IsHoldCreator(t, t.ThreadReportID, p.CurrentUserAccountID) {
			return true
		}
	}
	return report.HasOnlyHeldExpenses(p.Transactions) &&
		isPrimaryPayAction(p.Report, p.Policy, p.ReportActions, nil, p.isArchived(), p.CurrentUserAccountID)
}

// isSubmitAction: the submitter can push an open expense report forward once
// every line is complete. Manual submission is only offered when the policy
// expects it, except after a reopen, which re-enables Submit unconditionally.
func isSubmitAction(p PrimaryActionParams) bool {
	if !report.IsExpenseReport(p.Report) ||
		!report.IsCurrentUserSubmitter(p.Report, p.CurrentUserAccountID) ||
		!report.IsOpenReport(p.Report) {
		return false
	}
	if len(p.Transactions) == 0 {
		return false
	}
	for _, t := range p.Transactions {
		if report.TransactionAmount(t) == 0 {
			return false
		}
		if report.IsPendingCreate(t) || report.IsReceiptBeingScanned(t) {
			return false
		}
	}
	if policyutil.IsPreventSelfApprovalEnabled(p.Policy) &&
		policyutil.GetSubmitToAccountID(p.Policy, p.Report) == p.Report.OwnerAccountID {
		return false
	}
	return report.HasReportBeenReopened(p.ReportActions) ||
		policyutil.GetCorrectedAutoReportingFrequency(p.Policy) == models.FrequencyManual
}

// isApproveAction: the manager approves a processing expense report once no
// receipt is mid-scan and at least one line has actually persisted.
func isApproveAction(p PrimaryActionParams) bool {
	for _, t := range p.Transactions {
		if report.IsReceiptBeingScanned(t) {
			return false
		}
	}
	if !report.IsReportManager(p.Report, p.CurrentUserAccountID) ||
		!report.IsExpenseReport(p.Report) {
		return false
	}
	if p.Policy == nil || p.Policy.ApprovalMode == models.ApprovalModeOptional {
		return false
	}
	if len(p.Transactions) == 0 {
		return false
	}
	allPending := true
	for _, t := range p.Transactions {
		if !report.IsPendingCreate(t) {
			allPending = false
			break
		}
	}
	if allPending {
		return false
	}
	if policyutil.IsPreventSelfApprovalEnabled(p.Policy) &&
		p.Report.ManagerAccountID == p.Report.OwnerAccountID {
		return false
	}
	return report.IsProcessingReport(p.Report)
}

// isPrimaryPayAction decides pay eligibility across the three report kinds.
// Archived and already-settled reports are never payable, and every arm
// requires positive reimbursable spend.
func isPrimaryPayAction(r *models.Report, policy *models.Policy, actions []models.ReportAction, invoiceReceiverPolicy *models.Policy, archived bool, accountID int64) bool {
	if r == nil || archived || report.IsSettled(r, actions) {
		return false
	}
	breakdown := report.GetMoneyRequestSpendBreakdown(r)
	if breakdown.ReimbursableSpend <= 0 {
		return false
	}

	session := models.Session{AccountID: accountID}

	switch {
	case report.IsExpenseReport(r):
		if !policyutil.IsPayer(session, r, policy) || !policyutil.ArePaymentsEnabled(policy) {
			return false
		}
		// "finished" for payment purposes: approved and not parked on a bank
		// account, processing under a policy with no approval step, or closed.
		switch {
		case report.IsReportApproved(r):
			return !r.WaitingOnBankAccount
		case report.IsProcessingReport(r):
			return policy != nil && policy.ApprovalMode == models.ApprovalModeOptional
		default:
			return report.IsClosedReport(r)
		}

	case report.IsIOUReport(r):
		return report.IsProcessingReport(r) && policyutil.IsPayer(session, r, policy)

	case report.IsInvoiceReport(r):
		if !report.IsProcessingReport(r) || r.InvoiceReceiver == nil {
			return false
		}
		switch r.InvoiceReceiver.Type {
		case models.InvoiceReceiverIndividual:
			return r.InvoiceReceiver.AccountID == accountID
		case models.InvoiceReceiverBusiness:
			return policyutil.IsPolicyAdmin(invoiceReceiverPolicy)
		}
		return false
	}
	return false
}

// isExportAction: a terminal report can be pushed to the connected accounting
// integration by its preferred exporter, but only when auto-sync will not do
// it anyway (or already tried and failed).
func isExportAction(p PrimaryActionParams) bool {
	conn := policyutil.GetValidConnectedIntegration(p.Policy)
	if conn == nil {
		return false
	}
	if !policyutil.IsPreferredExporter(p.Policy, conn, p.CurrentUserAccountID) {
		return false
	}
	if report.IsInvoiceReport(p.Report) || report.IsExported(p.ReportActions) {
		return false
	}
	if policyutil.HasIntegrationAutoSync(p.Policy, conn.Name) && !report.HasExportError(p.ReportActions) {
		return false
	}
	if p.Report.WaitingOnBankAccount {
		return false
	}
	return report.IsReportApproved(p.Report) ||
		report.IsSettled(p.Report, p.ReportActions) ||
		report.IsClosedReport(p.Report)
}

// hasReleasableHold is the catch-all for holds the earlier RemoveHold rule
// did not capture: any hold the viewer placed can always be released, even
// when its transaction thread has not materialized yet.
func hasReleasableHold(transactions []models.Transaction, accountID int64) bool {
	if accountID == 0 {
		return false
	}
	for _, t := range transactions {
		if t.OnHold && t.HoldActorAccountID == accountID {
			return true
		}
	}
	return false
}
