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

const journalColumns = `journal_id, code, name, journal_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journaux comptables.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.Code,
		&m.Name,
		&m.JournalType,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournal(m)
	return &d, nil
}

// SaveJournal persists a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)

	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.JournalID,
		m.Code,
		m.Name,
		m.JournalType,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to save journal %s", m.Code), err)
	}
	return nil
}

// FindJournalByCode retrieves a journal by its unique code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE code = $1;`

	journal, err := scanJournal(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal with code %s not found", code))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find journal by code %s", code), err)
	}
	return journal, nil
}

// ListJournals retrieves journals ordered by code.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE ($1 OR is_active)
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list journals", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		journal, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan journal row", err)
		}
		journals = append(journals, *journal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating journal rows", err)
	}
	return journals, nil
}

// DeactivateJournal marks a journal as inactive, stopping new postings.
func (r *PgxJournalRepository) DeactivateJournal(ctx context.Context, journalID string, userID string, now time.Time) error {
	query := `
		UPDATE journals
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE journal_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, journalID, now, userID)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to deactivate journal %s", journalID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("journal %s not found", journalID))
	}
	return nil
}
