package dto

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse mirrors domain.Balance for API consumers.
type BalanceResponse struct {
	ExerciseID       string          `json:"exerciseID"`
	AccountID        string          `json:"accountID"`
	Period           string          `json:"period"`
	OpeningDebit     decimal.Decimal `json:"openingDebit"`
	OpeningCredit    decimal.Decimal `json:"openingCredit"`
	MovementDebit    decimal.Decimal `json:"movementDebit"`
	MovementCredit   decimal.Decimal `json:"movementCredit"`
	CumulativeDebit  decimal.Decimal `json:"cumulativeDebit"`
	CumulativeCredit decimal.Decimal `json:"cumulativeCredit"`
	DebtorBalance    decimal.Decimal `json:"debtorBalance"`
	CreditorBalance  decimal.Decimal `json:"creditorBalance"`
}

// ToBalanceResponse converts a domain.Balance to BalanceResponse.
func ToBalanceResponse(b *domain.Balance) BalanceResponse {
	return BalanceResponse{
		ExerciseID:       b.ExerciseID,
		AccountID:        b.AccountID,
		Period:           b.Period.String(),
		OpeningDebit:     b.OpeningDebit,
		OpeningCredit:    b.OpeningCredit,
		MovementDebit:    b.MovementDebit,
		MovementCredit:   b.MovementCredit,
		CumulativeDebit:  b.CumulativeDebit,
		CumulativeCredit: b.CumulativeCredit,
		DebtorBalance:    b.DebtorBalance,
		CreditorBalance:  b.CreditorBalance,
	}
}

// ToListBalanceResponse converts a slice of balances.
func ToListBalanceResponse(balances []domain.Balance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i := range balances {
		res[i] = ToBalanceResponse(&balances[i])
	}
	return res
}

// BalanceQueryParams selects one period of one exercise.
type BalanceQueryParams struct {
	Period string `form:"period" binding:"required,accounting_period"`
}
