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
	"github.com/fofal/erp-backend/internal/utils/accounting"
	"github.com/fofal/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, journal_id, account_id, entry_date, piece_number, piece_type, label, debit, credit, period, transaction_id, attachment_path, reverses_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for écritures comptables.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.JournalID,
		&m.AccountID,
		&m.EntryDate,
		&m.PieceNumber,
		&m.PieceType,
		&m.Label,
		&m.Debit,
		&m.Credit,
		&m.Period,
		&m.TransactionID,
		&m.AttachmentPath,
		&m.ReversesID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainEntry(m)
	return &d, nil
}

func collectEntries(rows pgx.Rows) ([]domain.Entry, error) {
	defer rows.Close()
	var entries []domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating entry rows", err)
	}
	return entries, nil
}

// FindEntryByID retrieves an écriture by its id.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find entry %s", entryID), err)
	}
	return entry, nil
}

// ListEntriesByAccount retrieves an account's écritures over an inclusive
// period range, ordered by date then creation time.
func (r *PgxEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, from, to domain.Period) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE account_id = $1 AND period BETWEEN $2 AND $3
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from.String(), to.String())
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to list entries of account %s", accountID), err)
	}
	return collectEntries(rows)
}

// ListEntriesByJournal retrieves a journal's écritures for one period.
func (r *PgxEntryRepository) ListEntriesByJournal(ctx context.Context, journalID string, period domain.Period) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE journal_id = $1 AND period = $2
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, journalID, period.String())
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to list entries of journal %s", journalID), err)
	}
	return collectEntries(rows)
}

// ListEntriesByExercise retrieves every écriture whose period falls within
// the exercise's range.
func (r *PgxEntryRepository) ListEntriesByExercise(ctx context.Context, exercise domain.Exercise) ([]domain.Entry, error) {
	first := domain.PeriodOf(exercise.StartDate)
	last := domain.PeriodOf(exercise.EndDate)

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE period BETWEEN $1 AND $2
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, first.String(), last.String())
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to list entries of exercise %d", exercise.Year), err)
	}
	return collectEntries(rows)
}

// InsertEntriesInTx inserts écritures inside an existing transaction.
func (r *PgxEntryRepository) InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.JournalID,
			m.AccountID,
			m.EntryDate,
			m.PieceNumber,
			m.PieceType,
			m.Label,
			m.Debit,
			m.Credit,
			m.Period,
			m.TransactionID,
			m.AttachmentPath,
			m.ReversesID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: entry already exists", apperrors.ErrDuplicate)
			}
			return fmt.Errorf("failed to insert entry: %w", err)
		}
	}
	return nil
}

// RefreshBalancesInTx recomputes and rewrites the balance rows of the given
// accounts for the exercise, inside an existing transaction. The caller must
// already hold the row locks.
func (r *PgxEntryRepository) RefreshBalancesInTx(ctx context.Context, tx pgx.Tx, exercise domain.Exercise, accountIDs []string) error {
	first := domain.PeriodOf(exercise.StartDate)
	last := domain.PeriodOf(exercise.EndDate)

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE account_id = ANY($1) AND period BETWEEN $2 AND $3;
	`
	rows, err := tx.Query(ctx, query, accountIDs, first.String(), last.String())
	if err != nil {
		return fmt.Errorf("failed to load entries for balance refresh: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return err
	}

	if err := deleteAccountBalancesInTx(ctx, tx, exercise.ExerciseID, accountIDs); err != nil {
		return err
	}

	var balances []domain.Balance
	for _, accountID := range accountIDs {
		balances = append(balances, accounting.ComputeAccountBalances(exercise.ExerciseID, accountID, entries)...)
	}
	return insertBalancesInTx(ctx, tx, balances)
}

// lockAccountBalances takes FOR UPDATE locks on the balance rows of the
// given accounts so concurrent postings serialize per account.
func lockAccountBalances(ctx context.Context, tx pgx.Tx, exerciseID string, accountIDs []string) error {
	query := `
		SELECT account_id FROM balances
		WHERE exercise_id = $1 AND account_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, exerciseID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock balance rows: %w", err)
	}
	rows.Close()
	return rows.Err()
}

// lockOpenExercise takes a shared lock on the exercise row and re-verifies
// it is still open. A concurrent CloseExercise holds the row FOR UPDATE, so
// either this posting commits before the close reads the écriture set, or
// it blocks and fails here once the clôture lands.
func lockOpenExercise(ctx context.Context, tx pgx.Tx, exercise domain.Exercise) error {
	var closed bool
	query := `SELECT closed FROM exercises WHERE exercise_id = $1 FOR SHARE;`
	if err := tx.QueryRow(ctx, query, exercise.ExerciseID).Scan(&closed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("exercise %s not found", exercise.ExerciseID))
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to lock exercise %s", exercise.ExerciseID), err)
	}
	if closed {
		return fmt.Errorf("%w: exercise %d is closed", apperrors.ErrPeriodClosed, exercise.Year)
	}
	return nil
}

// SaveEntries atomically inserts the écritures and refreshes the balance
// rows of every touched account within the exercise.
func (r *PgxEntryRepository) SaveEntries(ctx context.Context, exercise domain.Exercise, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var accountIDs []string
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			accountIDs = append(accountIDs, e.AccountID)
		}
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockOpenExercise(ctx, tx, exercise); err != nil {
		return err
	}
	if err := lockAccountBalances(ctx, tx, exercise.ExerciseID, accountIDs); err != nil {
		return apperrors.NewStorageError("failed to lock balances for posting", err)
	}
	if err := r.InsertEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}
	if err := r.RefreshBalancesInTx(ctx, tx, exercise, accountIDs); err != nil {
		return apperrors.NewStorageError("failed to refresh balances after posting", err)
	}
	return r.Commit(ctx, tx)
}

// UpdateEntryAttachment sets the pièce jointe path.
func (r *PgxEntryRepository) UpdateEntryAttachment(ctx context.Context, entryID string, path string, userID string, now time.Time) error {
	query := `
		UPDATE entries
		SET attachment_path = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, path, now, userID)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to update attachment of entry %s", entryID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("entry %s not found", entryID))
	}
	return nil
}
