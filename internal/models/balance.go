package models

import "github.com/shopspring/decimal"

// Balance is the persisted form of one (exercise, account, period) balance
// row. The primary key is the triple; rows exist only for periods with
// movement.
type Balance struct {
	ExerciseID       string          `db:"exercise_id"`
	AccountID        string          `db:"account_id"`
	Period           string          `db:"period"`
	OpeningDebit     decimal.Decimal `db:"opening_debit"`
	OpeningCredit    decimal.Decimal `db:"opening_credit"`
	MovementDebit    decimal.Decimal `db:"movement_debit"`
	MovementCredit   decimal.Decimal `db:"movement_credit"`
	CumulativeDebit  decimal.Decimal `db:"cumulative_debit"`
	CumulativeCredit decimal.Decimal `db:"cumulative_credit"`
	DebtorBalance    decimal.Decimal `db:"debtor_balance"`
	CreditorBalance  decimal.Decimal `db:"creditor_balance"`
}
