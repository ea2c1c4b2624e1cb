package decision

import (
	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/report"
)

// GetTransactionThreadPrimaryAction computes the single primary action for
// one transaction thread. The chain is a narrower sibling of the report-level
// resolver and must stay semantically consistent with it: RemoveHold wins
// over ReviewDuplicates wins over MarkAsCash.
func GetTransactionThreadPrimaryAction(
	thread *models.Report,
	parent *models.Report,
	tx *models.Transaction,
	violations models.ViolationMap,
	policy *models.Policy,
	currentUserAccountID int64,
) TransactionThreadAction {
	if thread == nil || tx == nil {
		return ThreadActionNone
	}

	// The hold action lives on this specific thread, so the creator check is
	// scoped to the thread report, not the parent expense report.
	if report.IsHoldCreator(*tx, thread.ID, currentUserAccountID) {
		return ThreadActionRemoveHold
	}

	if report.IsDuplicate(*tx) &&
		(report.IsCurrentUserSubmitter(parent, currentUserAccountID) ||
			report.IsReportManager(parent, currentUserAccountID)) &&
		(report.IsOpenReport(parent) || report.IsProcessingReport(parent)) {
		return ThreadActionReviewDuplicates
	}

	if report.HasPendingRTERViolation(tx.ID, violations) {
		return ThreadActionMarkAsCash
	}
	if report.ShouldShowBrokenConnectionViolation([]models.Transaction{*tx}, parent, policy, violations, currentUserAccountID) {
		return ThreadActionMarkAsCash
	}

	return ThreadActionNone
}
