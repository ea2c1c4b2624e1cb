// Package decision resolves which single financial action a report, a
// transaction thread, or a report preview card should surface to the current
// user. Each resolver is an ordered chain of guarded rules evaluated
// top-to-bottom; the first matching rule wins and evaluation stops, so exactly
// one action (or none) comes out of every call. The resolvers are pure: they
// read the snapshot passed in, keep no state between calls, and are cheap
// enough to re-run on every refresh. Callers that need memoization own it
// themselves; caching a stale financial action here would be a correctness
// bug, not an optimization.
package decision

// PrimaryAction is the single action surfaced on a report. The empty value
// means no action applies and the caller renders a neutral state.
type PrimaryAction string

const (
	PrimaryActionNone               PrimaryAction = ""
	PrimaryActionAddExpense         PrimaryAction = "ADD_EXPENSE"
	PrimaryActionMarkAsCash         PrimaryAction = "MARK_AS_CASH"
	PrimaryActionReviewDuplicates   PrimaryAction = "REVIEW_DUPLICATES"
	PrimaryActionRemoveHold         PrimaryAction = "REMOVE_HOLD"
	PrimaryActionSubmit             PrimaryAction = "SUBMIT"
	PrimaryActionApprove            PrimaryAction = "APPROVE"
	PrimaryActionPay                PrimaryAction = "PAY"
	PrimaryActionExportToAccounting PrimaryAction = "EXPORT_TO_ACCOUNTING"
)

var validPrimaryActions = map[PrimaryAction]bool{
	PrimaryActionNone:               true,
	PrimaryActionAddExpense:         true,
	PrimaryActionMarkAsCash:         true,
	PrimaryActionReviewDuplicates:   true,
	PrimaryActionRemoveHold:         true,
	PrimaryActionSubmit:             true,
	PrimaryActionApprove:            true,
	PrimaryActionPay:                true,
	PrimaryActionExportToAccounting: true,
}

// IsValid returns true if the action is part of the closed vocabulary
func (a PrimaryAction) IsValid() bool {
	return validPrimaryActions[a]
}

// String returns the string representation of the action
func (a PrimaryAction) String() string {
	return string(a)
}

// TransactionThreadAction is the single action surfaced on one transaction
// thread. The empty value means no action applies.
type TransactionThreadAction string

const (
	ThreadActionNone             TransactionThreadAction = ""
	ThreadActionRemoveHold       TransactionThreadAction = "REMOVE_HOLD"
	ThreadActionReviewDuplicates TransactionThreadAction = "REVIEW_DUPLICATES"
	ThreadActionMarkAsCash       TransactionThreadAction = "MARK_AS_CASH"
)

var validThreadActions = map[TransactionThreadAction]bool{
	ThreadActionNone:             true,
	ThreadActionRemoveHold:       true,
	ThreadActionReviewDuplicates: true,
	ThreadActionMarkAsCash:       true,
}

// IsValid returns true if the action is part of the closed vocabulary
func (a TransactionThreadAction) IsValid() bool {
	return validThreadActions[a]
}

// String returns the string representation of the action
func (a TransactionThreadAction) String() string {
	return string(a)
}

// PreviewAction is the single action surfaced on a report's summary card.
// Unlike PrimaryAction there is no empty result: the card always shows
// something, View at minimum.
type PreviewAction string

const (
	PreviewActionAddExpense PreviewAction = "ADD_EXPENSE"
	PreviewActionReview     PreviewAction = "REVIEW"
	PreviewActionSubmit     PreviewAction = "SUBMIT"
	PreviewActionApprove    PreviewAction = "APPROVE"
	PreviewActionPay        PreviewAction = "PAY"
	PreviewActionExport     PreviewAction = "EXPORT_TO_ACCOUNTING"
	PreviewActionView       PreviewAction = "VIEW"
)

var validPreviewActions = map[PreviewAction]bool{
	PreviewActionAddExpense: true,
	PreviewActionReview:     true,
	PreviewActionSubmit:     true,
	PreviewActionApprove:    true,
	PreviewActionPay:        true,
	PreviewActionExport:     true,
	PreviewActionView:       true,
}

// IsValid returns true if the action is part of the closed vocabulary
func (a PreviewAction) IsValid() bool {
	return validPreviewActions[a]
}

// String returns the string representation of the action
func (a PreviewAction) String() string {
	return string(a)
}
