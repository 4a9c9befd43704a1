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

const exerciseColumns = `exercise_id, year, start_date, end_date, closed, closed_at, closed_by_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxExerciseRepository struct {
	BaseRepository
}

// newPgxExerciseRepository creates a new repository for exercices comptables.
func newPgxExerciseRepository(pool *pgxpool.Pool) portsrepo.ExerciseRepositoryFacade {
	return &PgxExerciseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExerciseRepositoryFacade = (*PgxExerciseRepository)(nil)

func scanExercise(row pgx.Row) (*domain.Exercise, error) {
	var m models.Exercise
	err := row.Scan(
		&m.ExerciseID,
		&m.Year,
		&m.StartDate,
		&m.EndDate,
		&m.Closed,
		&m.ClosedAt,
		&m.ClosedByID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainExercise(m)
	return &d, nil
}

// SaveExercise persists a new (open) exercise.
func (r *PgxExerciseRepository) SaveExercise(ctx context.Context, exercise domain.Exercise) error {
	m := mapping.ToModelExercise(exercise)

	query := `
		INSERT INTO exercises (` + exerciseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExerciseID,
		m.Year,
		m.StartDate,
		m.EndDate,
		m.Closed,
		m.ClosedAt,
		m.ClosedByID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: exercise for year %d already exists", apperrors.ErrDuplicate, m.Year)
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to save exercise %d", m.Year), err)
	}
	return nil
}

// FindExerciseByYear retrieves the exercise for a fiscal year.
func (r *PgxExerciseRepository) FindExerciseByYear(ctx context.Context, year int) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE year = $1;`

	exercise, err := scanExercise(r.Pool.QueryRow(ctx, query, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("exercise for year %d not found", year))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find exercise for year %d", year), err)
	}
	return exercise, nil
}

// FindExerciseForPeriod retrieves the exercise whose date range covers the period.
func (r *PgxExerciseRepository) FindExerciseForPeriod(ctx context.Context, period domain.Period) (*domain.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE to_char(start_date, 'YYYY-MM') <= $1 AND to_char(end_date, 'YYYY-MM') >= $1;
	`
	exercise, err := scanExercise(r.Pool.QueryRow(ctx, query, period.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no exercise covers period %s", period))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find exercise for period %s", period), err)
	}
	return exercise, nil
}

// ListExercises retrieves all exercises ordered by year descending.
func (r *PgxExerciseRepository) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY year DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list exercises", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan exercise row", err)
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating exercise rows", err)
	}
	return exercises, nil
}

// FindOverlapping retrieves exercises whose date range intersects [start, end].
func (r *PgxExerciseRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY year;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query overlapping exercises", err)
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan exercise row", err)
		}
		exercises = append(exercises, *exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating exercise rows", err)
	}
	return exercises, nil
}

// CloseExercise atomically locks the exercise row, re-verifies it is open,
// loads the écriture set under the lock, computes and writes the final
// balance rows and stamps the clôture fields. The FOR UPDATE lock serializes
// the close against SaveEntries, which takes the same row FOR SHARE, so the
// frozen balances cover every committed écriture and no posting can land in
// the exercise afterwards.
func (r *PgxExerciseRepository) CloseExercise(ctx context.Context, exercise domain.Exercise, computeFinal portsrepo.FinalBalanceFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var closed bool
	lockQuery := `SELECT closed FROM exercises WHERE exercise_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, exercise.ExerciseID).Scan(&closed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError(fmt.Sprintf("exercise %s not found", exercise.ExerciseID))
		}
		return apperrors.NewStorageError(fmt.Sprintf("failed to lock exercise %s", exercise.ExerciseID), err)
	}
	if closed {
		return fmt.Errorf("%w: exercise %d is already closed", apperrors.ErrConflict, exercise.Year)
	}

	entryQuery := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE period BETWEEN $1 AND $2
		ORDER BY entry_date, created_at;
	`
	first := domain.PeriodOf(exercise.StartDate)
	last := domain.PeriodOf(exercise.EndDate)
	rows, err := tx.Query(ctx, entryQuery, first.String(), last.String())
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to load entries of exercise %d", exercise.Year), err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return err
	}
	finalBalances := computeFinal(entries)

	if _, err := tx.Exec(ctx, `DELETE FROM balances WHERE exercise_id = $1;`, exercise.ExerciseID); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to clear balances of exercise %d", exercise.Year), err)
	}
	if err := insertBalancesInTx(ctx, tx, finalBalances); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write final balances of exercise %d", exercise.Year), err)
	}

	closeQuery := `
		UPDATE exercises
		SET closed = TRUE, closed_at = $2, closed_by_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE exercise_id = $1;
	`
	if _, err := tx.Exec(ctx, closeQuery,
		exercise.ExerciseID,
		exercise.ClosedAt,
		exercise.ClosedByID,
		exercise.LastUpdatedAt,
		exercise.LastUpdatedBy,
	); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to close exercise %d", exercise.Year), err)
	}
	return r.Commit(ctx, tx)
}
