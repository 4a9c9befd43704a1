package models

// Account is the persisted form of a plan comptable account.
// ParentAccountID is nullable; roots of each class have none.
type Account struct {
	AccountID       string  `db:"account_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	Class           int     `db:"class"`
	AccountType     string  `db:"account_type"`
	Level           int     `db:"level"`
	ParentAccountID *string `db:"parent_account_id"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}
