package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	"github.com/fofal/erp-backend/internal/models"
	"github.com/fofal/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const balanceColumns = `exercise_id, account_id, period, opening_debit, opening_credit, movement_debit, movement_credit, cumulative_debit, cumulative_credit, debtor_balance, creditor_balance`

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for balance rows.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var m models.Balance
	err := row.Scan(
		&m.ExerciseID,
		&m.AccountID,
		&m.Period,
		&m.OpeningDebit,
		&m.OpeningCredit,
		&m.MovementDebit,
		&m.MovementCredit,
		&m.CumulativeDebit,
		&m.CumulativeCredit,
		&m.DebtorBalance,
		&m.CreditorBalance,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainBalance(m)
	return &d, nil
}

// insertBalancesInTx batch-inserts balance rows inside an existing transaction.
func insertBalancesInTx(ctx context.Context, tx pgx.Tx, balances []domain.Balance) error {
	if len(balances) == 0 {
		return nil
	}
	query := `
		INSERT INTO balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, b := range balances {
		m := mapping.ToModelBalance(b)
		batch.Queue(query,
			m.ExerciseID,
			m.AccountID,
			m.Period,
			m.OpeningDebit,
			m.OpeningCredit,
			m.MovementDebit,
			m.MovementCredit,
			m.CumulativeDebit,
			m.CumulativeCredit,
			m.DebtorBalance,
			m.CreditorBalance,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range balances {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert balance row: %w", err)
		}
	}
	return nil
}

// deleteAccountBalancesInTx removes the balance rows of the given accounts
// for one exercise inside an existing transaction.
func deleteAccountBalancesInTx(ctx context.Context, tx pgx.Tx, exerciseID string, accountIDs []string) error {
	query := `DELETE FROM balances WHERE exercise_id = $1 AND account_id = ANY($2);`
	if _, err := tx.Exec(ctx, query, exerciseID, accountIDs); err != nil {
		return fmt.Errorf("failed to delete balance rows: %w", err)
	}
	return nil
}

// FindBalanceAsOf retrieves the account's most recent balance row at or
// before the period. Rows exist only for periods with movement, so the
// cumulative position of a quiet period lives on the last period that moved.
func (r *PgxBalanceRepository) FindBalanceAsOf(ctx context.Context, exerciseID, accountID string, period domain.Period) (*domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE exercise_id = $1 AND account_id = $2 AND period <= $3
		ORDER BY period DESC
		LIMIT 1;
	`
	balance, err := scanBalance(r.Pool.QueryRow(ctx, query, exerciseID, accountID, period.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no balance for account %s at or before period %s", accountID, period))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find balance for account %s in period %s", accountID, period), err)
	}
	return balance, nil
}

// ListBalancesAsOf retrieves, per account of the exercise, the most recent
// balance row at or before the period, ordered by account code.
func (r *PgxBalanceRepository) ListBalancesAsOf(ctx context.Context, exerciseID string, period domain.Period) ([]domain.Balance, error) {
	query := `
		SELECT bal.*
		FROM (
			SELECT DISTINCT ON (account_id) ` + balanceColumns + `
			FROM balances
			WHERE exercise_id = $1 AND period <= $2
			ORDER BY account_id, period DESC
		) bal
		JOIN accounts a ON a.account_id = bal.account_id
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, exerciseID, period.String())
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to list balances of period %s", period), err)
	}
	defer rows.Close()

	var balances []domain.Balance
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan balance row", err)
		}
		balances = append(balances, *balance)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating balance rows", err)
	}
	return balances, nil
}

// FindLatestBalances retrieves, per account, the most recent balance row at
// or before the given period.
func (r *PgxBalanceRepository) FindLatestBalances(ctx context.Context, exerciseID string, accountIDs []string, period domain.Period) (map[string]domain.Balance, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Balance{}, nil
	}

	query := `
		SELECT DISTINCT ON (account_id) ` + balanceColumns + `
		FROM balances
		WHERE exercise_id = $1 AND account_id = ANY($2) AND period <= $3
		ORDER BY account_id, period DESC;
	`
	rows, err := r.Pool.Query(ctx, query, exerciseID, accountIDs, period.String())
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query latest balances", err)
	}
	defer rows.Close()

	balances := make(map[string]domain.Balance)
	for rows.Next() {
		balance, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan balance row", err)
		}
		balances[balance.AccountID] = *balance
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating balance rows", err)
	}
	return balances, nil
}

// ReplaceExerciseBalances deletes and rewrites every balance row of an
// exercise in one transaction.
func (r *PgxBalanceRepository) ReplaceExerciseBalances(ctx context.Context, exerciseID string, balances []domain.Balance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM balances WHERE exercise_id = $1;`, exerciseID); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to clear balances of exercise %s", exerciseID), err)
	}
	if err := insertBalancesInTx(ctx, tx, balances); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to rewrite balances of exercise %s", exerciseID), err)
	}
	return r.Commit(ctx, tx)
}
