package models

// Session identifies the user the snapshot was assembled for
type Session struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email,omitempty"`
}
