// Package policyutil answers role and configuration questions about a
// workspace policy snapshot. Every function is total: a nil policy reads as
// "feature disabled" rather than an error.
package policyutil

import (
	"github.com/expensewire/report-actions/internal/models"
)

// integrations the export action knows how to target
var supportedIntegrations = map[string]bool{
	"quickbooks": true,
	"xero":       true,
	"netsuite":   true,
	"intacct":    true,
}

// IsPolicyAdmin returns true if the current user holds the admin role
func IsPolicyAdmin(policy *models.Policy) bool {
	return policy != nil && policy.Role == models.PolicyRoleAdmin
}

// IsApprover returns true if accountID is configured to approve reports on
// this policy, either as the designated approver or as the policy owner when
// no approver is set.
func IsApprover(policy *models.Policy, accountID int64) bool {
	if policy == nil || accountID == 0 {
		return false
	}
	if policy.ApproverAccountID != 0 {
		return policy.ApproverAccountID == accountID
	}
	return policy.OwnerAccountID == accountID
}

// IsPayer returns true if accountID is expected to settle the report.
// Expense reports are paid by the policy reimburser, falling back to any
// admin when no reimburser is configured. IOU reports are paid by the report
// manager and need no policy at all.
func IsPayer(session models.Session, report *models.Report, policy *models.Policy) bool {
	if report == nil || session.AccountID == 0 {
		return false
	}
	if report.Type == models.ReportTypeIOU {
		return report.ManagerAccountID == session.AccountID
	}
	if policy == nil {
		return false
	}
	if policy.ReimburserAccountID != 0 {
		return policy.ReimburserAccountID == session.AccountID
	}
	return policy.Role == models.PolicyRoleAdmin
}

// GetSubmitToAccountID returns the account a submitted report is routed to:
// the configured approver, else the policy owner, else the report manager.
// Returns 0 when nothing is configured.
func GetSubmitToAccountID(policy *models.Policy, report *models.Report) int64 {
	if policy != nil {
		if policy.ApproverAccountID != 0 {
			return policy.ApproverAccountID
		}
		if policy.OwnerAccountID != 0 {
			return policy.OwnerAccountID
		}
	}
	if report != nil {
		return report.ManagerAccountID
	}
	return 0
}

// IsPreventSelfApprovalEnabled returns the policy's self-approval guard flag
func IsPreventSelfApprovalEnabled(policy *models.Policy) bool {
	return policy != nil && policy.PreventSelfApproval
}

// ArePaymentsEnabled returns true if the policy can settle reports at all
func ArePaymentsEnabled(policy *models.Policy) bool {
	return policy != nil && policy.PaymentsEnabled
}

// GetValidConnectedIntegration returns the policy's first supported accounting
// connection, or nil when none is configured.
func GetValidConnectedIntegration(policy *models.Policy) *models.AccountingConnection {
	if policy == nil {
		return nil
	}
	for i := range policy.Connections {
		if supportedIntegrations[policy.Connections[i].Name] {
			return &policy.Connections[i]
		}
	}
	return nil
}

// HasIntegrationAutoSync returns true if the named connection syncs
// automatically. An unknown connection reads as no auto-sync.
func HasIntegrationAutoSync(policy *models.Policy, name string) bool {
	if policy == nil {
		return false
	}
	for _, conn := range policy.Connections {
		if conn.Name == name {
			return conn.AutoSync
		}
	}
	return false
}

// IsPreferredExporter returns true if accountID is designated to perform
// manual exports on the connection, falling back to the policy owner when no
// preferred exporter is set.
func IsPreferredExporter(policy *models.Policy, conn *models.AccountingConnection, accountID int64) bool {
	if policy == nil || conn == nil || accountID == 0 {
		return false
	}
	if conn.PreferredExporterAccountID != 0 {
		return conn.PreferredExporterAccountID == accountID
	}
	return policy.OwnerAccountID == accountID
}

// GetCorrectedAutoReportingFrequency returns the policy's effective
// auto-submit frequency: manual when harvesting is disabled, instant when
// harvesting is enabled without an explicit frequency.
func GetCorrectedAutoReportingFrequency(policy *models.Policy) models.AutoReportingFrequency {
	if policy == nil || !policy.AutoReporting {
		return models.FrequencyManual
	}
	if policy.AutoReportingFrequency == "" {
		return models.FrequencyInstant
	}
	return policy.AutoReportingFrequency
}
