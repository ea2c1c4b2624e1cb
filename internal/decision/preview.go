package decision

import (
	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/policyutil"
	"github.com/expensewire/report-actions/internal/report"
)

// PreviewActionParams bundles the snapshot GetReportPreviewAction decides
// over, plus the in-flight UI state the primary-action resolver does not see.
type PreviewActionParams struct {
	Report                *models.Report
	Policy                *models.Policy
	Transactions          []models.Transaction
	Violations            models.ViolationMap
	ReportActions         []models.ReportAction
	InvoiceReceiverPolicy *models.Policy
	IsReportArchived      bool
	IsChatReportArchived  bool
	CurrentUserAccountID  int64

	// IsPaymentAnimationRunning keeps the card showing Pay while the
	// pay/approve transition animation plays, so the label does not flicker
	// to a different action mid-transition.
	IsPaymentAnimationRunning bool

	// ShouldCheckApprovedState gates whether Pay on an expense report
	// requires the report to have reached a payable terminal state. Callers
	// turn it off to keep showing Pay on a report that just left that state.
	ShouldCheckApprovedState bool
}

func (p PreviewActionParams) isArchived() bool {
	return p.IsReportArchived || p.IsChatReportArchived
}

// GetReportPreviewAction computes the single action for a report's summary
// card. The card always renders something, so the chain bottoms out at View
// instead of an empty action. Precedence mirrors the primary-action resolver,
// with the animation override in front of everything.
func GetReportPreviewAction(p PreviewActionParams) PreviewAction {
	if p.Report == nil {
		return PreviewActionView
	}
	if p.IsPaymentAnimationRunning {
		return PreviewActionPay
	}

	if isPreviewAddExpense(p) {
		return PreviewActionAddExpense
	}
	if isPreviewReview(p) {
		return PreviewActionReview
	}
	if isPreviewSubmit(p) {
		return PreviewActionSubmit
	}
	if isPreviewApprove(p) {
		return PreviewActionApprove
	}
	if isPreviewPay(p) {
		return PreviewActionPay
	}
	if isPreviewExport(p) {
		return PreviewActionExport
	}
	return PreviewActionView
}

func isPreviewAddExpense(p PreviewActionParams) bool {
	if p.isArchived() || !report.IsExpenseReport(p.Report) || len(p.Transactions) != 0 {
		return false
	}
	// The preview card carries its own archived flags instead of a
	// name-value-pairs record, so the nvp argument is synthesized here.
	nvp := &models.ReportNameValuePairs{ReportID: p.Report.ID, IsArchived: p.IsReportArchived}
	return report.CanAddTransactions(p.Report, p.Policy, nvp, p.CurrentUserAccountID)
}

// isPreviewReview folds the MarkAsCash / ReviewDuplicates / RemoveHold rules
// of the primary resolver into the card's single Review affordance: anything
// on the report that needs attention before it can move.
func isPreviewReview(p PreviewActionParams) bool {
	if p.isArchived() {
		return false
	}
	viewerInvolved := report.IsCurrentUserSubmitter(p.Report, p.CurrentUserAccountID) ||
		report.IsReportManager(p.Report, p.CurrentUserAccountID) ||
		policyutil.IsPolicyAdmin(p.Policy)
	if !viewerInvolved {
		return false
	}
	if !report.IsOpenReport(p.Report) && !report.IsProcessingReport(p.Report) {
		return false
	}
	for _, t := range p.Transactions {
		if report.IsDuplicate(t) || t.OnHold || report.HasPendingRTERViolation(t.ID, p.Violations) {
			return true
		}
	}
	return report.ShouldShowBrokenConnectionViolation(p.Transactions, p.Report, p.Policy, p.Violations, p.CurrentUserAccountID)
}

func isPreviewSubmit(p PreviewActionParams) bool {
	if p.isArchived() {
		return false
	}
	return isSubmitAction(PrimaryActionParams{
		Report:               p.Report,
		Transactions:         p.Transactions,
		Violations:           p.Violations,
		Policy:               p.Policy,
		ReportActions:        p.ReportActions,
		CurrentUserAccountID: p.CurrentUserAccountID,
	})
}

func isPreviewApprove(p PreviewActionParams) bool {
	if p.isArchived() {
		return false
	}
	return isApproveAction(PrimaryActionParams{
		Report:               p.Report,
		Transactions:         p.Transactions,
		Violations:           p.Violations,
		Policy:               p.Policy,
		ReportActions:        p.ReportActions,
		CurrentUserAccountID: p.CurrentUserAccountID,
	})
}

// isPreviewPay is pay eligibility without the held-expense redirection the
// primary resolver applies: the card may show Pay even where the primary
// action would be RemoveHold. With ShouldCheckApprovedState off, the
// terminal-state requirement on expense reports is skipped as well.
func isPreviewPay(p PreviewActionParams) bool {
	if p.isArchived() || report.IsSettled(p.Report, p.ReportActions) {
		return false
	}
	breakdown := report.GetMoneyRequestSpendBreakdown(p.Report)
	if breakdown.ReimbursableSpend <= 0 {
		return false
	}

	if report.IsExpenseReport(p.Report) {
		session := models.Session{AccountID: p.CurrentUserAccountID}
		if !policyutil.IsPayer(session, p.Report, p.Policy) || !policyutil.ArePaymentsEnabled(p.Policy) {
			return false
		}
		if !p.ShouldCheckApprovedState {
			return true
		}
	}
	return isPrimaryPayAction(p.Report, p.Policy, p.ReportActions, p.InvoiceReceiverPolicy, false, p.CurrentUserAccountID)
}

func isPreviewExport(p PreviewActionParams) bool {
	if p.isArchived() {
		return false
	}
	return isExportAction(PrimaryActionParams{
		Report:               p.Report,
		Transactions:         p.Transactions,
		Violations:           p.Violations,
		Policy:               p.Policy,
		ReportActions:        p.ReportActions,
		CurrentUserAccountID: p.CurrentUserAccountID,
	})
}
