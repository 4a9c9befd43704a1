package domain

import "github.com/shopspring/decimal"

// Balance is the aggregated debit/credit position of one account for one
// period of an exercise. It is a materialized view over the entry set:
// always recomputable, never hand-edited.
type Balance struct {
	ExerciseID       string          `json:"exerciseID"`
	AccountID        string          `json:"accountID"`
	Period           Period          `json:"period"`
	OpeningDebit     decimal.Decimal `json:"openingDebit"`
	OpeningCredit    decimal.Decimal `json:"openingCredit"`
	MovementDebit    decimal.Decimal `json:"movementDebit"`
	MovementCredit   decimal.Decimal `json:"movementCredit"`
	CumulativeDebit  decimal.Decimal `json:"cumulativeDebit"`
	CumulativeCredit decimal.Decimal `json:"cumulativeCredit"`
	DebtorBalance    decimal.Decimal `json:"debtorBalance"`   // Solde débiteur
	CreditorBalance  decimal.Decimal `json:"creditorBalance"` // Solde créditeur
}
