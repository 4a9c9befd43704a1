package services

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// BalanceSvcFacade exposes balance aggregation and reporting.
type BalanceSvcFacade interface {
	// RecomputeExercise rebuilds every balance row of the year from the full
	// écriture set and persists the result. Idempotent.
	RecomputeExercise(ctx context.Context, year int) ([]domain.Balance, error)

	// GetBalance retrieves one (year, account, period) balance row.
	GetBalance(ctx context.Context, year int, accountCode string, period domain.Period) (*domain.Balance, error)

	// ListBalances lists every account's balance row for one period.
	ListBalances(ctx context.Context, year int, period domain.Period) ([]domain.Balance, error)

	// TrialBalance builds the balance générale of a period.
	TrialBalance(ctx context.Context, year int, period domain.Period) (*domain.TrialBalance, error)
}
