package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	"github.com/fofal/erp-backend/internal/models"
	"github.com/fofal/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, code, name, class, account_type, level, parent_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for plan comptable data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Class,
		&m.AccountType,
		&m.Level,
		&m.ParentAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Class,
		m.AccountType,
		m.Level,
		m.ParentAccountID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to save account %s", m.Code), err)
	}
	return nil
}

// FindAccountByCode retrieves an account by its unique code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with code %s not found", code))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find account by code %s", code), err)
	}
	return account, nil
}

// FindAccountByID retrieves an account by its id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find account %s", accountID), err)
	}
	return account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by id.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query accounts by ids", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating account rows", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts ordered by code, optionally filtered by class.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, class domain.AccountClass, limit, offset int) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1 = 0 OR class = $1)
		ORDER BY code
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, int(class), limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating account rows", err)
	}
	return accounts, nil
}

// FindParentChain walks parent references from the account to its class root
// using a recursive CTE, returning the chain starting with the account itself.
func (r *PgxAccountRepository) FindParentChain(ctx context.Context, accountID string) ([]domain.Account, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT ` + accountColumns + `, 0 AS depth
			FROM accounts WHERE account_id = $1
			UNION ALL
			SELECT a.account_id, a.code, a.name, a.class, a.account_type, a.level, a.parent_account_id, a.is_active,
			       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by, c.depth + 1
			FROM accounts a
			JOIN chain c ON a.account_id = c.parent_account_id
		)
		SELECT account_id, code, name, class, account_type, level, parent_account_id, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM chain ORDER BY depth;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to load parent chain of account %s", accountID), err)
	}
	defer rows.Close()

	var chain []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan account row", err)
		}
		chain = append(chain, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating parent chain rows", err)
	}
	if len(chain) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return chain, nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to deactivate account %s", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return nil
}
