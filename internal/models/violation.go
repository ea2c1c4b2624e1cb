package models

// ViolationName identifies the kind of a policy violation
type ViolationName string

const (
	// ViolationRTER is the receipt-to-expense-report pending-match violation:
	// the transaction is waiting on reconciliation data before it can settle.
	ViolationRTER ViolationName = "RTER"

	// ViolationBrokenConnection indicates the accounting integration failed to
	// sync data needed to finalize the transaction.
	ViolationBrokenConnection ViolationName = "BROKEN_CONNECTION"

	// ViolationDuplicate marks the transaction as a suspected duplicate.
	ViolationDuplicate ViolationName = "DUPLICATE"

	// ViolationReceiptRequired means the transaction is missing a receipt the
	// policy requires.
	ViolationReceiptRequired ViolationName = "RECEIPT_REQUIRED"
)

// Violation is one policy-violation record attached to a transaction.
// Pending means the violation has not been resolved yet.
type Violation struct {
	Name    ViolationName `json:"name"`
	Pending bool          `json:"pending"`
}

// ViolationMap holds the violations of a report's transactions, keyed by
// transaction ID. A missing key means the transaction has no violations.
type ViolationMap map[string][]Violation
