package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/fofal/erp-backend/internal/utils/accounting"
)

// balanceService rebuilds and serves balance rows. Balances are a
// materialized view over the écriture set; this service is the only writer
// outside the posting path.
type balanceService struct {
	balanceRepo  portsrepo.BalanceRepositoryFacade
	entryRepo    portsrepo.EntryReader
	exerciseRepo portsrepo.ExerciseReader
	accountRepo  portsrepo.AccountReader
}

// NewBalanceService creates a new BalanceSvcFacade.
func NewBalanceService(balanceRepo portsrepo.BalanceRepositoryFacade, entryRepo portsrepo.EntryReader, exerciseRepo portsrepo.ExerciseReader, accountRepo portsrepo.AccountReader) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo:  balanceRepo,
		entryRepo:    entryRepo,
		exerciseRepo: exerciseRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// RecomputeExercise rebuilds every balance row of the year from the full
// écriture history. Running it twice over an unchanged entry set yields
// identical rows.
func (s *balanceService) RecomputeExercise(ctx context.Context, year int) ([]domain.Balance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}

	entries, err := s.entryRepo.ListEntriesByExercise(ctx, *exercise)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries of exercise %d: %w", year, err)
	}

	balances := accounting.ComputeExerciseBalances(exercise.ExerciseID, entries)
	if err := s.balanceRepo.ReplaceExerciseBalances(ctx, exercise.ExerciseID, balances); err != nil {
		logger.Error("Failed to persist recomputed balances", slog.String("error", err.Error()), slog.Int("year", year))
		return nil, fmt.Errorf("failed to persist balances of exercise %d: %w", year, err)
	}

	logger.Info("Exercise balances recomputed", slog.Int("year", year), slog.Int("rows", len(balances)))
	return balances, nil
}

// GetBalance retrieves the account's position as of the period. Quiet
// periods carry the cumulative figures of the last period with movement.
func (s *balanceService) GetBalance(ctx context.Context, year int, accountCode string, period domain.Period) (*domain.Balance, error) {
	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountCode, err)
	}
	balance, err := s.balanceRepo.FindBalanceAsOf(ctx, exercise.ExerciseID, account.AccountID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance %d/%s/%s: %w", year, accountCode, period, err)
	}
	return balance, nil
}

// ListBalances lists every account's position as of the period.
func (s *balanceService) ListBalances(ctx context.Context, year int, period domain.Period) ([]domain.Balance, error) {
	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}
	balances, err := s.balanceRepo.ListBalancesAsOf(ctx, exercise.ExerciseID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances of %d/%s: %w", year, period, err)
	}
	return balances, nil
}

// TrialBalance builds the balance générale of a period: per-account
// cumulative positions with their totals and the debit/credit drift.
func (s *balanceService) TrialBalance(ctx context.Context, year int, period domain.Period) (*domain.TrialBalance, error) {
	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}

	balances, err := s.balanceRepo.ListBalancesAsOf(ctx, exercise.ExerciseID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances of %d/%s: %w", year, period, err)
	}

	accountIDs := make([]string, len(balances))
	for i, b := range balances {
		accountIDs[i] = b.AccountID
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for trial balance: %w", err)
	}

	report := &domain.TrialBalance{
		Year:        year,
		Period:      period,
		Rows:        make([]domain.TrialBalanceRow, 0, len(balances)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		acc, ok := accounts[b.AccountID]
		if !ok {
			return nil, fmt.Errorf("internal error: account %s missing while building trial balance", b.AccountID)
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountCode:      acc.Code,
			AccountName:      acc.Name,
			Class:            acc.Class,
			CumulativeDebit:  b.CumulativeDebit,
			CumulativeCredit: b.CumulativeCredit,
			DebtorBalance:    b.DebtorBalance,
			CreditorBalance:  b.CreditorBalance,
		})
		report.TotalDebit = report.TotalDebit.Add(b.CumulativeDebit)
		report.TotalCredit = report.TotalCredit.Add(b.CumulativeCredit)
	}
	report.Drift = report.TotalDebit.Sub(report.TotalCredit)
	return report, nil
}
