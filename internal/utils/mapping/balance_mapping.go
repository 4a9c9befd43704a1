package mapping

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/models"
)

// ToModelBalance converts a domain Balance to a model Balance
func ToModelBalance(d domain.Balance) models.Balance {
	return models.Balance{
		ExerciseID:       d.ExerciseID,
		AccountID:        d.AccountID,
		Period:           d.Period.String(),
		OpeningDebit:     d.OpeningDebit,
		OpeningCredit:    d.OpeningCredit,
		MovementDebit:    d.MovementDebit,
		MovementCredit:   d.MovementCredit,
		CumulativeDebit:  d.CumulativeDebit,
		CumulativeCredit: d.CumulativeCredit,
		DebtorBalance:    d.DebtorBalance,
		CreditorBalance:  d.CreditorBalance,
	}
}

// ToDomainBalance converts a model Balance to a domain Balance
func ToDomainBalance(m models.Balance) domain.Balance {
	return domain.Balance{
		ExerciseID:       m.ExerciseID,
		AccountID:        m.AccountID,
		Period:           domain.Period(m.Period),
		OpeningDebit:     m.OpeningDebit,
		OpeningCredit:    m.OpeningCredit,
		MovementDebit:    m.MovementDebit,
		MovementCredit:   m.MovementCredit,
		CumulativeDebit:  m.CumulativeDebit,
		CumulativeCredit: m.CumulativeCredit,
		DebtorBalance:    m.DebtorBalance,
		CreditorBalance:  m.CreditorBalance,
	}
}

// ToDomainBalanceSlice converts a slice of model Balances to a slice of domain Balances
func ToDomainBalanceSlice(ms []models.Balance) []domain.Balance {
	ds := make([]domain.Balance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBalance(m)
	}
	return ds
}
