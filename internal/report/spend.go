package report

import "github.com/expensewire/report-actions/internal/models"

// SpendBreakdown splits a report's stored totals into the figures the UI and
// the pay-eligibility checks need. All amounts are integer cents.
type SpendBreakdown struct {
	ReimbursableSpend    int64 `json:"reimbursable_spend"`
	NonReimbursableSpend int64 `json:"non_reimbursable_spend"`
	TotalDisplaySpend    int64 `json:"total_display_spend"`
}

// GetMoneyRequestSpendBreakdown derives the spend breakdown from the report's
// stored total fields. A nil report yields zeros.
func GetMoneyRequestSpendBreakdown(r *models.Report) SpendBreakdown {
	if r == nil {
		return SpendBreakdown{}
	}
	return SpendBreakdown{
		ReimbursableSpend:    r.TotalSpend - r.NonReimbursableSpend,
		NonReimbursableSpend: r.NonReimbursableSpend,
		TotalDisplaySpend:    r.TotalSpend,
	}
}
