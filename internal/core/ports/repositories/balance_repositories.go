package repositories

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// BalanceReader defines read operations for balance rows
type BalanceReader interface {
	// FindBalanceAsOf retrieves the account's most recent balance row at or
	// before the period. Balance rows exist only for periods with movement,
	// so a quiet period is served by the last period that moved.
	FindBalanceAsOf(ctx context.Context, exerciseID, accountID string, period domain.Period) (*domain.Balance, error)

	// ListBalancesAsOf retrieves, for every account of the exercise, its
	// most recent balance row at or before the period, ordered by account
	// code.
	ListBalancesAsOf(ctx context.Context, exerciseID string, period domain.Period) ([]domain.Balance, error)

	// FindLatestBalances retrieves, per account, the most recent balance row
	// at or before the given period. Used to check for non-zero positions.
	FindLatestBalances(ctx context.Context, exerciseID string, accountIDs []string, period domain.Period) (map[string]domain.Balance, error)
}

// BalanceWriter defines write operations for balance rows
type BalanceWriter interface {
	// ReplaceExerciseBalances deletes and rewrites every balance row of an
	// exercise in one transaction (full recomputation).
	ReplaceExerciseBalances(ctx context.Context, exerciseID string, balances []domain.Balance) error
}

// BalanceRepositoryFacade combines all balance-related repository interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
