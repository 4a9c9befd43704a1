package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account line of a balance générale for a period.
type TrialBalanceRow struct {
	AccountCode      string          `json:"accountCode"`
	AccountName      string          `json:"accountName"`
	Class            AccountClass    `json:"class"`
	CumulativeDebit  decimal.Decimal `json:"cumulativeDebit"`
	CumulativeCredit decimal.Decimal `json:"cumulativeCredit"`
	DebtorBalance    decimal.Decimal `json:"debtorBalance"`
	CreditorBalance  decimal.Decimal `json:"creditorBalance"`
}

// TrialBalance aggregates the per-account rows with their totals. For a
// ledger under double-entry discipline TotalDebit equals TotalCredit; Drift
// exposes any difference instead of hiding it.
type TrialBalance struct {
	Year        int             `json:"year"`
	Period      Period          `json:"period"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Drift       decimal.Decimal `json:"drift"`
}
