package models

// ReportActionType identifies a recorded event on a report's timeline
type ReportActionType string

const (
	ActionTypeSubmitted             ReportActionType = "SUBMITTED"
	ActionTypeApproved              ReportActionType = "APPROVED"
	ActionTypeReimbursed            ReportActionType = "REIMBURSED"
	ActionTypeReopened              ReportActionType = "REOPENED"
	ActionTypeHold                  ReportActionType = "HOLD"
	ActionTypeUnhold                ReportActionType = "UNHOLD"
	ActionTypeExportedToIntegration ReportActionType = "EXPORTED_TO_INTEGRATION"
	ActionTypeExportFailed          ReportActionType = "EXPORT_FAILED"
)

// ReportAction is a read-only snapshot of one timeline event. ChildState, when
// set, is the lifecycle state of the linked child report at the time the
// action was last synced (used to detect settlement recorded only on the
// chat-side preview action).
type ReportAction struct {
	ID             string           `json:"id"`
	ReportID       string           `json:"report_id"`
	Type           ReportActionType `json:"type"`
	ActorAccountID int64            `json:"actor_account_id"`
	ChildState     ReportState      `json:"child_state,omitempty"`
}
