package models

// ReportType identifies what kind of container a report is
type ReportType string

const (
	ReportTypeExpense ReportType = "EXPENSE"
	ReportTypeIOU     ReportType = "IOU"
	ReportTypeInvoice ReportType = "INVOICE"
	ReportTypeChat    ReportType = "CHAT"
)

var validReportTypes = map[ReportType]bool{
	ReportTypeExpense: true,
	ReportTypeIOU:     true,
	ReportTypeInvoice: true,
	ReportTypeChat:    true,
}

// IsValid returns true if the report type is a known variant
func (t ReportType) IsValid() bool {
	return validReportTypes[t]
}

// String returns the string representation of the report type
func (t ReportType) String() string {
	return string(t)
}

// ReportState represents a report's lifecycle state
type ReportState string

const (
	ReportStateOpen       ReportState = "OPEN"
	ReportStateProcessing ReportState = "PROCESSING"
	ReportStateApproved   ReportState = "APPROVED"
	ReportStateClosed     ReportState = "CLOSED"
	ReportStateReimbursed ReportState = "REIMBURSED"
)

var validReportStates = map[ReportState]bool{
	ReportStateOpen:       true,
	ReportStateProcessing: true,
	ReportStateApproved:   true,
	ReportStateClosed:     true,
	ReportStateReimbursed: true,
}

// terminal states: the report has left the submit/approve pipeline
var terminalReportStates = map[ReportState]bool{
	ReportStateApproved:   true,
	ReportStateClosed:     true,
	ReportStateReimbursed: true,
}

// IsValid returns true if the state is a known lifecycle state
func (s ReportState) IsValid() bool {
	return validReportStates[s]
}

// IsTerminal returns true if no further submit/approve transition is expected
func (s ReportState) IsTerminal() bool {
	return terminalReportStates[s]
}

// String returns the string representation of the state
func (s ReportState) String() string {
	return string(s)
}

// InvoiceReceiverType identifies who an invoice report is addressed to
type InvoiceReceiverType string

const (
	InvoiceReceiverIndividual InvoiceReceiverType = "INDIVIDUAL"
	InvoiceReceiverBusiness   InvoiceReceiverType = "BUSINESS"
)

// InvoiceReceiver describes the receiving party of an invoice report.
// AccountID is set for individual receivers, PolicyID for business receivers.
type InvoiceReceiver struct {
	Type      InvoiceReceiverType `json:"type"`
	AccountID int64               `json:"account_id,omitempty"`
	PolicyID  string              `json:"policy_id,omitempty"`
}

// Report is a read-only snapshot of one expense container. The decision
// engine never mutates it. Money fields are integer cents.
type Report struct {
	ID                   string           `json:"id"`
	Type                 ReportType       `json:"type"`
	State                ReportState      `json:"state"`
	OwnerAccountID       int64            `json:"owner_account_id"`
	ManagerAccountID     int64            `json:"manager_account_id"`
	PolicyID             string           `json:"policy_id"`
	ChatReportID         string           `json:"chat_report_id,omitempty"`
	ParentReportID       string           `json:"parent_report_id,omitempty"`
	TotalSpend           int64            `json:"total_spend"`
	NonReimbursableSpend int64            `json:"non_reimbursable_spend"`
	Currency             string           `json:"currency"`
	WaitingOnBankAccount bool             `json:"waiting_on_bank_account"`
	InvoiceReceiver      *InvoiceReceiver `json:"invoice_receiver,omitempty"`
}

// ReportNameValuePairs carries per-report flags stored outside the report
// record itself. Absence of the record means "not archived".
type ReportNameValuePairs struct {
	ReportID   string `json:"report_id"`
	IsArchived bool   `json:"is_archived"`
}
