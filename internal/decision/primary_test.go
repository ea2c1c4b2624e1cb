package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expensewire/report-actions/internal/models"
)

const currentUser int64 = 10

func expenseReport(state models.ReportState) *models.Report {
	return &models.Report{
		ID:             "r1",
		Type:           models.ReportTypeExpense,
		State:          state,
		OwnerAccountID: currentUser,
		PolicyID:       "p1",
	}
}

func TestPrimaryActionEmptyExpenseReport(t *testing.T) {
	params := PrimaryActionParams{
		Report:               expenseReport(models.ReportStateOpen),
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionAddExpense, GetReportPrimaryAction(params))
}

func TestPrimaryActionAddExpenseBlockedWhenArchived(t *testing.T) {
	params := PrimaryActionParams{
		Report:               expenseReport(models.ReportStateOpen),
		ReportNameValuePairs: &models.ReportNameValuePairs{ReportID: "r1", IsArchived: true},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(params))
}

func TestPrimaryActionNilReport(t *testing.T) {
	assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(PrimaryActionParams{CurrentUserAccountID: currentUser}))
}

func TestPrimaryActionMarkAsCash(t *testing.T) {
	rep := expenseReport(models.ReportStateProcessing)
	params := PrimaryActionParams{
		Report:       rep,
		Transactions: []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 900}},
		Violations: models.ViolationMap{
			"t1": {{Name: models.ViolationRTER, Pending: true}},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionMarkAsCash, GetReportPrimaryAction(params))

	// two stuck transactions no longer qualify for the single-expense rule
	params.Transactions = append(params.Transactions, models.Transaction{ID: "t2", ReportID: "r1", Amount: 100})
	params.Violations["t2"] = []models.Violation{{Name: models.ViolationRTER, Pending: true}}
	assert.NotEqual(t, PrimaryActionMarkAsCash, GetReportPrimaryAction(params))
}

func TestPrimaryActionMarkAsCashBrokenConnection(t *testing.T) {
	rep := expenseReport(models.ReportStateProcessing)
	rep.OwnerAccountID = 99 // viewer controls the report as admin, not submitter
	params := PrimaryActionParams{
		Report:       rep,
		Policy:       &models.Policy{ID: "p1", Role: models.PolicyRoleAdmin},
		Transactions: []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 900}},
		Violations: models.ViolationMap{
			"t1": {{Name: models.ViolationBrokenConnection}},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionMarkAsCash, GetReportPrimaryAction(params))
}

func TestPrimaryActionReviewDuplicatesBeatsSubmit(t *testing.T) {
	// submit preconditions hold too: open, submitter, complete amounts,
	// manual frequency — the duplicate still wins by precedence
	params := PrimaryActionParams{
		Report: expenseReport(models.ReportStateOpen),
		Transactions: []models.Transaction{
			{ID: "t1", ReportID: "r1", Amount: 1000, DuplicateSuspect: true},
			{ID: "t2", ReportID: "r1", Amount: 500},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionReviewDuplicates, GetReportPrimaryAction(params))
}

func TestPrimaryActionRemoveHoldForHoldCreator(t *testing.T) {
	params := PrimaryActionParams{
		Report: expenseReport(models.ReportStateProcessing),
		Transactions: []models.Transaction{
			{ID: "t1", ReportID: "r1", Amount: 1000, OnHold: true, HoldActorAccountID: currentUser, ThreadReportID: "thread1"},
			{ID: "t2", ReportID: "r1", Amount: 500},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionRemoveHold, GetReportPrimaryAction(params))
}

func TestPrimaryActionRemoveHoldSuppressesPay(t *testing.T) {
	rep := expenseReport(models.ReportStateApproved)
	rep.OwnerAccountID = 99
	rep.TotalSpend = 2000
	params := PrimaryActionParams{
		Report: rep,
		Policy: &models.Policy{ID: "p1", Role: models.PolicyRoleAdmin, PaymentsEnabled: true},
		Transactions: []models.Transaction{
			{ID: "t1", ReportID: "r1", Amount: 2000, OnHold: true, HoldActorAccountID: 99, ThreadReportID: "thread1"},
		},
		CurrentUserAccountID: currentUser,
	}

	// pay eligibility alone is true, but every expense is held
	assert.Equal(t, PrimaryActionRemoveHold, GetReportPrimaryAction(params))

	// releasing one hold re-enables Pay
	params.Transactions = append(params.Transactions, models.Transaction{ID: "t2", ReportID: "r1", Amount: 500})
	assert.Equal(t, PrimaryActionPay, GetReportPrimaryAction(params))
}

// The held-expense short-circuit ignores the invoice receiver policy, so an
// all-held invoice report still resolves to Pay through the later rule.
func TestHeldInvoiceReportDoesNotRedirectToRemoveHold(t *testing.T) {
	rep := &models.Report{
		ID:             "inv1",
		Type:           models.ReportTypeInvoice,
		State:          models.ReportStateProcessing,
		OwnerAccountID: 99,
		TotalSpend:     3000,
		InvoiceReceiver: &models.InvoiceReceiver{
			Type:     models.InvoiceReceiverBusiness,
			PolicyID: "pr1",
		},
	}
	params := PrimaryActionParams{
		Report:                rep,
		InvoiceReceiverPolicy: &models.Policy{ID: "pr1", Role: models.PolicyRoleAdmin},
		Transactions: []models.Transaction{
			{ID: "t1", ReportID: "inv1", Amount: 3000, OnHold: true, HoldActorAccountID: 99, ThreadReportID: "thread1"},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionPay, GetReportPrimaryAction(params))
}

func TestPrimaryActionSubmit(t *testing.T) {
	params := PrimaryActionParams{
		Report:               expenseReport(models.ReportStateOpen),
		Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 1000}},
		CurrentUserAccountID: currentUser,
	}

	// nil policy reads as manual submission
	assert.Equal(t, PrimaryActionSubmit, GetReportPrimaryAction(params))
}

func TestPrimaryActionSubmitGuards(t *testing.T) {
	base := func() PrimaryActionParams {
		return PrimaryActionParams{
			Report:               expenseReport(models.ReportStateOpen),
			Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 1000}},
			CurrentUserAccountID: currentUser,
		}
	}

	t.Run("zero amount blocks submit", func(t *testing.T) {
		p := base()
		p.Transactions[0].Amount = 0
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("pending creation blocks submit", func(t *testing.T) {
		p := base()
		p.Transactions[0].PendingAction = models.PendingActionAdd
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("mid-scan receipt blocks submit", func(t *testing.T) {
		p := base()
		p.Transactions[0].ReceiptState = models.ReceiptScanning
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("self-approval prevention blocks submit to self", func(t *testing.T) {
		p := base()
		p.Policy = &models.Policy{
			ID:                  "p1",
			PreventSelfApproval: true,
			ApproverAccountID:   currentUser,
		}
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("auto-reporting without reopen blocks manual submit", func(t *testing.T) {
		p := base()
		p.Policy = &models.Policy{
			ID:                     "p1",
			AutoReporting:          true,
			AutoReportingFrequency: models.FrequencyWeekly,
		}
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})
}

// A reopen bypasses the manual-submit-frequency gate entirely: Submit comes
// back regardless of auto-reporting configuration.
func TestSubmitAfterReopenIgnoresFrequency(t *testing.T) {
	params := PrimaryActionParams{
		Report:       expenseReport(models.ReportStateOpen),
		Transactions: []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 1000}},
		Policy: &models.Policy{
			ID:                     "p1",
			AutoReporting:          true,
			AutoReportingFrequency: models.FrequencyWeekly,
		},
		ReportActions:        []models.ReportAction{{Type: models.ActionTypeReopened}},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionSubmit, GetReportPrimaryAction(params))
}

func TestPrimaryActionApprove(t *testing.T) {
	rep := expenseReport(models.ReportStateProcessing)
	rep.OwnerAccountID = 99
	rep.ManagerAccountID = currentUser
	params := PrimaryActionParams{
		Report:               rep,
		Policy:               &models.Policy{ID: "p1", ApprovalMode: models.ApprovalModeBasic},
		Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 500}},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionApprove, GetReportPrimaryAction(params))
}

func TestPrimaryActionApproveGuards(t *testing.T) {
	base := func() PrimaryActionParams {
		rep := expenseReport(models.ReportStateProcessing)
		rep.OwnerAccountID = 99
		rep.ManagerAccountID = currentUser
		return PrimaryActionParams{
			Report:               rep,
			Policy:               &models.Policy{ID: "p1", ApprovalMode: models.ApprovalModeBasic},
			Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 500}},
			CurrentUserAccountID: currentUser,
		}
	}

	t.Run("optional approval mode disables approve", func(t *testing.T) {
		p := base()
		p.Policy.ApprovalMode = models.ApprovalModeOptional
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("all transactions pending creation disables approve", func(t *testing.T) {
		p := base()
		p.Transactions[0].PendingAction = models.PendingActionAdd
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("self approval blocked", func(t *testing.T) {
		p := base()
		p.Report.OwnerAccountID = currentUser
		p.Policy.PreventSelfApproval = true
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("open report is not approvable", func(t *testing.T) {
		p := base()
		p.Report.State = models.ReportStateOpen
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})
}

func TestPrimaryActionPayIOU(t *testing.T) {
	rep := &models.Report{
		ID:               "iou1",
		Type:             models.ReportTypeIOU,
		State:            models.ReportStateProcessing,
		OwnerAccountID:   99,
		ManagerAccountID: currentUser,
		TotalSpend:       2000,
	}
	params := PrimaryActionParams{
		Report:               rep,
		Transactions:         []models.Transaction{{ID: "t1", ReportID: "iou1", Amount: 2000}},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionPay, GetReportPrimaryAction(params))
}

func TestPrimaryActionPayExpense(t *testing.T) {
	base := func() PrimaryActionParams {
		rep := expenseReport(models.ReportStateApproved)
		rep.OwnerAccountID = 99
		rep.TotalSpend = 4000
		return PrimaryActionParams{
			Report:               rep,
			Policy:               &models.Policy{ID: "p1", ReimburserAccountID: currentUser, PaymentsEnabled: true},
			Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 4000}},
			CurrentUserAccountID: currentUser,
		}
	}

	assert.Equal(t, PrimaryActionPay, GetReportPrimaryAction(base()))

	t.Run("waiting on bank account blocks pay", func(t *testing.T) {
		p := base()
		p.Report.WaitingOnBankAccount = true
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("payments disabled blocks pay", func(t *testing.T) {
		p := base()
		p.Policy.PaymentsEnabled = false
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("no reimbursable spend blocks pay", func(t *testing.T) {
		p := base()
		p.Report.NonReimbursableSpend = p.Report.TotalSpend
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("settled report is not payable", func(t *testing.T) {
		p := base()
		p.Report.State = models.ReportStateReimbursed
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("processing payable only without approval step", func(t *testing.T) {
		p := base()
		p.Report.State = models.ReportStateProcessing
		p.Policy.ApprovalMode = models.ApprovalModeBasic
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))

		p.Policy.ApprovalMode = models.ApprovalModeOptional
		assert.Equal(t, PrimaryActionPay, GetReportPrimaryAction(p))
	})
}

func TestPrimaryActionExportToAccounting(t *testing.T) {
	base := func() PrimaryActionParams {
		rep := expenseReport(models.ReportStateApproved)
		rep.OwnerAccountID = 99
		rep.TotalSpend = 1500
		return PrimaryActionParams{
			Report: rep,
			Policy: &models.Policy{
				ID:   "p1",
				Role: models.PolicyRoleMember,
				Connections: []models.AccountingConnection{
					{Name: "quickbooks", AutoSync: false, PreferredExporterAccountID: currentUser},
				},
			},
			Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 1500}},
			CurrentUserAccountID: currentUser,
		}
	}

	assert.Equal(t, PrimaryActionExportToAccounting, GetReportPrimaryAction(base()))

	t.Run("already exported", func(t *testing.T) {
		p := base()
		p.ReportActions = []models.ReportAction{{Type: models.ActionTypeExportedToIntegration}}
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("auto-sync without export error", func(t *testing.T) {
		p := base()
		p.Policy.Connections[0].AutoSync = true
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("auto-sync with a failed export re-enables manual export", func(t *testing.T) {
		p := base()
		p.Policy.Connections[0].AutoSync = true
		p.ReportActions = []models.ReportAction{{Type: models.ActionTypeExportFailed}}
		assert.Equal(t, PrimaryActionExportToAccounting, GetReportPrimaryAction(p))
	})

	t.Run("not the preferred exporter", func(t *testing.T) {
		p := base()
		p.Policy.Connections[0].PreferredExporterAccountID = 42
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})

	t.Run("open report has no terminal state to export", func(t *testing.T) {
		p := base()
		p.Report.State = models.ReportStateProcessing
		assert.Equal(t, PrimaryActionNone, GetReportPrimaryAction(p))
	})
}

func TestPrimaryActionFallbackRemoveHold(t *testing.T) {
	// the viewer's hold has no thread report yet, so rule four misses it and
	// the catch-all at the end of the chain picks it up
	rep := expenseReport(models.ReportStateProcessing)
	rep.OwnerAccountID = 99
	params := PrimaryActionParams{
		Report: rep,
		Transactions: []models.Transaction{
			{ID: "t1", ReportID: "r1", Amount: 800, OnHold: true, HoldActorAccountID: currentUser},
		},
		CurrentUserAccountID: currentUser,
	}

	assert.Equal(t, PrimaryActionRemoveHold, GetReportPrimaryAction(params))
}

func TestPrimaryActionIdempotent(t *testing.T) {
	params := PrimaryActionParams{
		Report:               expenseReport(models.ReportStateOpen),
		Transactions:         []models.Transaction{{ID: "t1", ReportID: "r1", Amount: 1000}},
		CurrentUserAccountID: currentUser,
	}

	first := GetReportPrimaryAction(params)
	second := GetReportPrimaryAction(params)
	assert.Equal(t, first, second)
	assert.Equal(t, PrimaryActionSubmit, first)
}

func TestPrimaryActionResultsAreValidKinds(t *testing.T) {
	inputs := []PrimaryActionParams{
		{},
		{Report: expenseReport(models.ReportStateOpen), CurrentUserAccountID: currentUser},
		{Report: expenseReport(models.ReportStateClosed), CurrentUserAccountID: currentUser},
	}

	for _, p := range inputs {
		assert.True(t, GetReportPrimaryAction(p).IsValid())
	}
}
