package services

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/dto"
)

// ExerciseSvcFacade exposes the exercice comptable lifecycle.
type ExerciseSvcFacade interface {
	// OpenExercise creates a new open fiscal year.
	OpenExercise(ctx context.Context, req dto.OpenExerciseRequest, creatorID string) (*domain.Exercise, error)

	// CloseExercise freezes the year: final balances are recomputed and
	// persisted, the clôture is stamped, and postings into any of its
	// periods are rejected from then on. One-way.
	CloseExercise(ctx context.Context, year int, closedByID string) (*domain.Exercise, error)

	// GetExercise retrieves the exercise of a fiscal year.
	GetExercise(ctx context.Context, year int) (*domain.Exercise, error)

	// ListExercises lists exercises, newest first.
	ListExercises(ctx context.Context) ([]domain.Exercise, error)

	// CurrentOpenExercise retrieves the most recent open exercise.
	CurrentOpenExercise(ctx context.Context) (*domain.Exercise, error)
}
