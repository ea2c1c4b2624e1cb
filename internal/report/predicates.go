// Package report is the predicate library over report, transaction, violation
// and policy snapshots. Every function is pure and total: nil or absent inputs
// read as "false"/"zero", aggregate "all" predicates are strict and return
// false on an empty set, and nothing here mutates its inputs. The resolvers in
// internal/decision are built entirely out of these predicates.
package report

import (
	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/policyutil"
)

// IsExpenseReport returns true iff the report is an expense report
func IsExpenseReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeExpense
}

// IsIOUReport returns true iff the report is a peer-to-peer money request
func IsIOUReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeIOU
}

// IsInvoiceReport returns true iff the report is a bill to an external party
func IsInvoiceReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeInvoice
}

// IsChatReport returns true iff the report is a plain chat container
func IsChatReport(r *models.Report) bool {
	return r != nil && r.Type == models.ReportTypeChat
}

// IsOpenReport returns true iff the report is still collecting expenses
func IsOpenReport(r *models.Report) bool {
	return r != nil && r.State == models.ReportStateOpen
}

// IsProcessingReport returns true iff the report has been submitted and is
// waiting on approval or payment
func IsProcessingReport(r *models.Report) bool {
	return r != nil && r.State == models.ReportStateProcessing
}

// IsReportApproved returns true iff the report has been approved
func IsReportApproved(r *models.Report) bool {
	return r != nil && r.State == models.ReportStateApproved
}

// IsClosedReport returns true iff the report was closed without payment
func IsClosedReport(r *models.Report) bool {
	return r != nil && r.State == models.ReportStateClosed
}

// IsSettled returns true iff the report has been reimbursed. Settlement can
// arrive through the report state or, ahead of it, on a timeline action whose
// child state was already synced to reimbursed.
func IsSettled(r *models.Report, actions []models.ReportAction) bool {
	if r == nil {
		return false
	}
	if r.State == models.ReportStateReimbursed {
		return true
	}
	for _, a := range actions {
		if a.ChildState == models.ReportStateReimbursed {
			return true
		}
	}
	return false
}

// IsCurrentUserSubmitter returns true iff accountID owns the report
func IsCurrentUserSubmitter(r *models.Report, accountID int64) bool {
	return r != nil && accountID != 0 && r.OwnerAccountID == accountID
}

// IsReportManager returns true iff accountID is the report's manager
func IsReportManager(r *models.Report, accountID int64) bool {
	return r != nil && accountID != 0 && r.ManagerAccountID == accountID
}

// IsArchived reads the archival flag off the report's name-value pairs.
// A missing record means not archived.
func IsArchived(nvp *models.ReportNameValuePairs) bool {
	return nvp != nil && nvp.IsArchived
}

// CanAddTransactions returns true if the report currently accepts new
// expenses: an unarchived expense report viewed by its submitter, either
// still open or already processing under instant auto-reporting.
func CanAddTransactions(r *models.Report, policy *models.Policy, nvp *models.ReportNameValuePairs, accountID int64) bool {
	if !IsExpenseReport(r) || IsArchived(nvp) || !IsCurrentUserSubmitter(r, accountID) {
		return false
	}
	if IsOpenReport(r) {
		return true
	}
	return IsProcessingReport(r) &&
		policyutil.GetCorrectedAutoReportingFrequency(policy) == models.FrequencyInstant
}

// TransactionAmount returns the transaction's effective amount: the modified
// amount when a correction exists, the original amount otherwise.
func TransactionAmount(t models.Transaction) int64 {
	if t.ModifiedAmount != 0 {
		return t.ModifiedAmount
	}
	return t.Amount
}

// IsPendingCreate returns true if the transaction has not been confirmed by
// the upstream store yet
func IsPendingCreate(t models.Transaction) bool {
	return t.PendingAction == models.PendingActionAdd
}

// IsReceiptBeingScanned returns true while smart-scan is extracting the
// transaction's receipt
func IsReceiptBeingScanned(t models.Transaction) bool {
	return t.ReceiptState == models.ReceiptScanning
}

// IsOnHold returns the transaction's hold flag
func IsOnHold(t models.Transaction) bool {
	return t.OnHold
}

// IsHoldCreator returns true iff accountID placed the hold that lives on the
// given transaction-thread report. The hold action is attached to the child
// thread, not the parent expense report, so the thread must match.
func IsHoldCreator(t models.Transaction, threadReportID string, accountID int64) bool {
	return t.OnHold &&
		threadReportID != "" &&
		t.ThreadReportID == threadReportID &&
		accountID != 0 &&
		t.HoldActorAccountID == accountID
}

// IsDuplicate returns true if prior violation processing flagged the
// transaction as a suspected duplicate
func IsDuplicate(t models.Transaction) bool {
	return t.DuplicateSuspect
}

// HasHeldExpenses returns true if any transaction in the set is on hold
func HasHeldExpenses(transactions []models.Transaction) bool {
	for _, t := range transactions {
		if t.OnHold {
			return true
		}
	}
	return false
}

// HasOnlyHeldExpenses returns true iff the set is non-empty and every
// transaction is on hold
func HasOnlyHeldExpenses(transactions []models.Transaction) bool {
	if len(transactions) == 0 {
		return false
	}
	for _, t := range transactions {
		if !t.OnHold {
			return false
		}
	}
	return true
}

// HasPendingRTERViolation returns true if the transaction carries an
// unresolved receipt-to-expense-report match violation
func HasPendingRTERViolation(transactionID string, violations models.ViolationMap) bool {
	for _, v := range violations[transactionID] {
		if v.Name == models.ViolationRTER && v.Pending {
			return true
		}
	}
	return false
}

// AllHavePendingRTERViolation returns true iff the set is non-empty and every
// transaction carries a pending RTER violation. Strict-all semantics: one
// transaction without the violation makes the whole predicate false.
func AllHavePendingRTERViolation(transactions []models.Transaction, violations models.ViolationMap) bool {
	if len(transactions) == 0 {
		return false
	}
	for _, t := range transactions {
		if !HasPendingRTERViolation(t.ID, violations) {
			return false
		}
	}
	return true
}

// hasBrokenConnectionViolation reports whether the transaction carries a
// broken accounting-connection violation
func hasBrokenConnectionViolation(transactionID string, violations models.ViolationMap) bool {
	for _, v := range violations[transactionID] {
		if v.Name == models.ViolationBrokenConnection {
			return true
		}
	}
	return false
}

// ShouldShowBrokenConnectionViolation returns true when every transaction in
// the set carries a broken accounting-connection violation and the viewer can
// act on it: a policy admin always, the submitter only while the report is
// still open or processing.
func ShouldShowBrokenConnectionViolation(transactions []models.Transaction, r *models.Report, policy *models.Policy, violations models.ViolationMap, accountID int64) bool {
	if len(transactions) == 0 {
		return false
	}
	for _, t := range transactions {
		if !hasBrokenConnectionViolation(t.ID, violations) {
			return false
		}
	}
	if policyutil.IsPolicyAdmin(policy) {
		return true
	}
	return IsCurrentUserSubmitter(r, accountID) &&
		(IsOpenReport(r) || IsProcessingReport(r))
}

// IsExported returns true if the report was already pushed to an accounting
// integration
func IsExported(actions []models.ReportAction) bool {
	for _, a := range actions {
		if a.Type == models.ActionTypeExportedToIntegration {
			return true
		}
	}
	return false
}

// HasExportError returns true if a prior export attempt failed
func HasExportError(actions []models.ReportAction) bool {
	for _, a := range actions {
		if a.Type == models.ActionTypeExportFailed {
			return true
		}
	}
	return false
}

// HasReportBeenReopened returns true if the report was reopened after a
// submit, which re-enables manual submission regardless of auto-reporting
// configuration
func HasReportBeenReopened(actions []models.ReportAction) bool {
	for _, a := range actions {
		if a.Type == models.ActionTypeReopened {
			return true
		}
	}
	return false
}
