package models

// PendingAction marks a transaction change that has not been confirmed by the
// upstream store yet. An empty value means the transaction is fully persisted.
type PendingAction string

const (
	PendingActionNone   PendingAction = ""
	PendingActionAdd    PendingAction = "ADD"
	PendingActionUpdate PendingAction = "UPDATE"
	PendingActionDelete PendingAction = "DELETE"
)

// ReceiptScanState tracks smart-scan progress for a transaction's receipt
type ReceiptScanState string

const (
	ReceiptScanNone     ReceiptScanState = ""
	ReceiptScanReady    ReceiptScanState = "SCAN_READY"
	ReceiptScanning     ReceiptScanState = "SCANNING"
	ReceiptScanComplete ReceiptScanState = "SCAN_COMPLETE"
	ReceiptScanFailed   ReceiptScanState = "SCAN_FAILED"
)

// Transaction is a read-only snapshot of one expense line.
// Amount fields are integer cents; ModifiedAmount, when non-zero, supersedes
// Amount (a post-scan or manual correction).
type Transaction struct {
	ID                 string           `json:"id"`
	ReportID           string           `json:"report_id"`
	Amount             int64            `json:"amount"`
	ModifiedAmount     int64            `json:"modified_amount"`
	Currency           string           `json:"currency"`
	PendingAction      PendingAction    `json:"pending_action,omitempty"`
	ReceiptState       ReceiptScanState `json:"receipt_state,omitempty"`
	OnHold             bool             `json:"on_hold"`
	HoldActorAccountID int64            `json:"hold_actor_account_id,omitempty"`
	ThreadReportID     string           `json:"thread_report_id,omitempty"`
	DuplicateSuspect   bool             `json:"duplicate_suspect"`
	IsDistanceRequest  bool             `json:"is_distance_request"`
	PendingCardCharge  bool             `json:"pending_card_charge"`
}
