package models

// ApprovalMode configures how a workspace routes submitted reports
type ApprovalMode string

const (
	// ApprovalModeOptional disables the approval step entirely
	ApprovalModeOptional ApprovalMode = "OPTIONAL"
	// ApprovalModeBasic routes every report to a single approver
	ApprovalModeBasic ApprovalMode = "BASIC"
	// ApprovalModeAdvanced routes reports through a configured approval chain
	ApprovalModeAdvanced ApprovalMode = "ADVANCED"
)

// PolicyRole is the current user's role within a workspace policy
type PolicyRole string

const (
	PolicyRoleAdmin   PolicyRole = "ADMIN"
	PolicyRoleAuditor PolicyRole = "AUDITOR"
	PolicyRoleMember  PolicyRole = "MEMBER"
)

// AutoReportingFrequency controls how often expenses are swept into a
// submitted report. Manual means the submitter pushes the Submit button.
type AutoReportingFrequency string

const (
	FrequencyInstant AutoReportingFrequency = "INSTANT"
	FrequencyWeekly  AutoReportingFrequency = "WEEKLY"
	FrequencyMonthly AutoReportingFrequency = "MONTHLY"
	FrequencyManual  AutoReportingFrequency = "MANUAL"
)

// AccountingConnection is one configured accounting integration on a policy
type AccountingConnection struct {
	Name                       string `json:"name"` // quickbooks, xero, netsuite, intacct
	AutoSync                   bool   `json:"auto_sync"`
	PreferredExporterAccountID int64  `json:"preferred_exporter_account_id,omitempty"`
}

// Policy is a read-only snapshot of workspace configuration. Role is the
// CURRENT user's role within this policy; the snapshot is always assembled
// for one viewing user.
type Policy struct {
	ID                     string                 `json:"id"`
	Role                   PolicyRole             `json:"role"`
	ApprovalMode           ApprovalMode           `json:"approval_mode"`
	PreventSelfApproval    bool                   `json:"prevent_self_approval"`
	PaymentsEnabled        bool                   `json:"payments_enabled"`
	OwnerAccountID         int64                  `json:"owner_account_id"`
	ApproverAccountID      int64                  `json:"approver_account_id,omitempty"`
	ReimburserAccountID    int64                  `json:"reimburser_account_id,omitempty"`
	AutoReporting          bool                   `json:"auto_reporting"`
	AutoReportingFrequency AutoReportingFrequency `json:"auto_reporting_frequency,omitempty"`
	Connections            []AccountingConnection `json:"connections,omitempty"`
}
