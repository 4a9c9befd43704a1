package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	"github.com/fofal/erp-backend/internal/models"
	"github.com/fofal/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, date, transaction_type, category, amount, currency, description, reference, status, source_account_id, destination_account_id, project_id, supporting_doc_path, created_at, created_by, last_updated_at, last_updated_by`

const treasuryAccountColumns = `treasury_account_id, number, name, account_type, currency, balance, bank_name, iban, swift, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	entryRepo portsrepo.EntryTransactionSupport
}

// newPgxTransactionRepository creates a new repository for finance
// transactions and comptes financiers. The entry repository is injected so
// validation can compose écriture persistence into its own transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, entryRepo portsrepo.EntryTransactionSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		entryRepo:      entryRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Date,
		&m.TransactionType,
		&m.Category,
		&m.Amount,
		&m.Currency,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.SourceAccountID,
		&m.DestinationAccountID,
		&m.ProjectID,
		&m.SupportingDocPath,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

func scanTreasuryAccount(row pgx.Row) (*domain.TreasuryAccount, error) {
	var m models.TreasuryAccount
	err := row.Scan(
		&m.TreasuryAccountID,
		&m.Number,
		&m.Name,
		&m.AccountType,
		&m.Currency,
		&m.Balance,
		&m.BankName,
		&m.IBAN,
		&m.SWIFT,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTreasuryAccount(m)
	return &d, nil
}

// SaveTransaction persists a new (pending) transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Date,
		m.TransactionType,
		m.Category,
		m.Amount,
		m.Currency,
		m.Description,
		m.Reference,
		m.Status,
		m.SourceAccountID,
		m.DestinationAccountID,
		m.ProjectID,
		m.SupportingDocPath,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to save transaction %s", m.TransactionID), err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find transaction %s", transactionID), err)
	}
	return txn, nil
}

// FindTransactionByReference retrieves a transaction by its unique reference.
func (r *PgxTransactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with reference %s not found", reference))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find transaction by reference %s", reference), err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions newest first, optionally filtered
// by status.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1 = '' OR status = $1)
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan transaction row", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating transaction rows", err)
	}
	return txns, nil
}

// UpdateTransactionStatus moves a transaction to a terminal status without
// side effects. The WHERE clause re-checks the pending status so a lost race
// surfaces as ErrConflict.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(status), now, userID, string(domain.StatusPending))
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to update status of transaction %s", transactionID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrConflict, transactionID)
	}
	return nil
}

// SaveValidation atomically posts the paired écritures, refreshes the
// touched balance rows, applies the treasury solde deltas and marks the
// transaction VALIDEE.
func (r *PgxTransactionRepository) SaveValidation(ctx context.Context, txn domain.Transaction, exercise domain.Exercise, entries []domain.Entry, soldeDeltas map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the transaction row and re-verify it is still pending.
	var status string
	lockQuery := `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, txn.TransactionID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", txn.TransactionID))
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to lock transaction %s", txn.TransactionID), err)
	}
	if status != string(domain.StatusPending) {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrConflict, txn.TransactionID, status)
	}

	if err := lockOpenExercise(ctx, tx, exercise); err != nil {
		return err
	}

	// Lock the treasury accounts before touching soldes.
	treasuryIDs := make([]string, 0, len(soldeDeltas))
	for id := range soldeDeltas {
		treasuryIDs = append(treasuryIDs, id)
	}
	if len(treasuryIDs) > 0 {
		lockTreasury := `SELECT treasury_account_id FROM treasury_accounts WHERE treasury_account_id = ANY($1) FOR UPDATE;`
		rows, err := tx.Query(ctx, lockTreasury, treasuryIDs)
		if err != nil {
			return apperrors.NewStorageError("failed to lock treasury accounts", err)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return apperrors.NewStorageError("failed to lock treasury accounts", err)
		}
	}

	seen := make(map[string]bool)
	var accountIDs []string
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			accountIDs = append(accountIDs, e.AccountID)
		}
	}
	if err := lockAccountBalances(ctx, tx, exercise.ExerciseID, accountIDs); err != nil {
		return apperrors.NewStorageError("failed to lock balances for validation", err)
	}

	if err := r.entryRepo.InsertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}
	if err := r.entryRepo.RefreshBalancesInTx(ctx, tx, exercise, accountIDs); err != nil {
		return apperrors.NewStorageError("failed to refresh balances during validation", err)
	}

	soldeQuery := `
		UPDATE treasury_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE treasury_account_id = $1;
	`
	for id, delta := range soldeDeltas {
		tag, err := tx.Exec(ctx, soldeQuery, id, delta, now, userID)
		if err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to move solde of treasury account %s", id), err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("treasury account %s not found", id))
		}
	}

	statusQuery := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, txn.TransactionID, string(domain.StatusValidated), now, userID); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to mark transaction %s validated", txn.TransactionID), err)
	}
	return r.Commit(ctx, tx)
}

// SaveTreasuryAccount persists a new treasury account.
func (r *PgxTransactionRepository) SaveTreasuryAccount(ctx context.Context, account domain.TreasuryAccount) error {
	m := mapping.ToModelTreasuryAccount(account)

	query := `
		INSERT INTO treasury_accounts (` + treasuryAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TreasuryAccountID,
		m.Number,
		m.Name,
		m.AccountType,
		m.Currency,
		m.Balance,
		m.BankName,
		m.IBAN,
		m.SWIFT,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: treasury account with number %s already exists", apperrors.ErrDuplicate, m.Number)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to save treasury account %s", m.Number), err)
	}
	return nil
}

// FindTreasuryAccountByNumber retrieves a treasury account by numéro.
func (r *PgxTransactionRepository) FindTreasuryAccountByNumber(ctx context.Context, number string) (*domain.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts WHERE number = $1;`

	account, err := scanTreasuryAccount(r.Pool.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("treasury account with number %s not found", number))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find treasury account by number %s", number), err)
	}
	return account, nil
}

// FindTreasuryAccountByID retrieves a treasury account by id.
func (r *PgxTransactionRepository) FindTreasuryAccountByID(ctx context.Context, id string) (*domain.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts WHERE treasury_account_id = $1;`

	account, err := scanTreasuryAccount(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("treasury account %s not found", id))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find treasury account %s", id), err)
	}
	return account, nil
}

// ListTreasuryAccounts retrieves all treasury accounts ordered by numéro.
func (r *PgxTransactionRepository) ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error) {
	query := `SELECT ` + treasuryAccountColumns + ` FROM treasury_accounts ORDER BY number;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list treasury accounts", err)
	}
	defer rows.Close()

	var accounts []domain.TreasuryAccount
	for rows.Next() {
		account, err := scanTreasuryAccount(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan treasury account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating treasury account rows", err)
	}
	return accounts, nil
}
