package repositories

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// ExerciseReader defines read operations for exercices comptables
type ExerciseReader interface {
	// FindExerciseByYear retrieves the exercise for a fiscal year.
	FindExerciseByYear(ctx context.Context, year int) (*domain.Exercise, error)

	// FindExerciseForPeriod retrieves the exercise whose date range covers
	// the period.
	FindExerciseForPeriod(ctx context.Context, period domain.Period) (*domain.Exercise, error)

	// ListExercises retrieves all exercises ordered by year descending.
	ListExercises(ctx context.Context) ([]domain.Exercise, error)

	// FindOverlapping retrieves exercises whose date range intersects [start, end].
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Exercise, error)
}

// FinalBalanceFunc computes the frozen balance set from an exercise's full
// écriture history. CloseExercise calls it while holding the exercise lock,
// so no posting can add an écriture between the read and the freeze.
type FinalBalanceFunc func(entries []domain.Entry) []domain.Balance

// ExerciseWriter defines write operations for exercices comptables
type ExerciseWriter interface {
	// SaveExercise persists a new (open) exercise.
	SaveExercise(ctx context.Context, exercise domain.Exercise) error

	// CloseExercise atomically locks the exercise row, re-verifies it is
	// open, loads the écriture set under the lock, computes the final
	// balances with computeFinal, replaces the stored balance rows, and
	// stamps the clôture fields. Returns ErrConflict if a concurrent close
	// won the lock first.
	CloseExercise(ctx context.Context, exercise domain.Exercise, computeFinal FinalBalanceFunc) error
}

// ExerciseRepositoryFacade combines all exercise-related repository interfaces
type ExerciseRepositoryFacade interface {
	ExerciseReader
	ExerciseWriter
}
