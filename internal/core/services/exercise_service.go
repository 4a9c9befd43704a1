package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/fofal/erp-backend/internal/utils/accounting"
)

// exerciseService manages the exercice comptable lifecycle.
type exerciseService struct {
	exerciseRepo portsrepo.ExerciseRepositoryFacade
	refValidator portssvc.ReferenceValidator
	// First month of the fiscal year, from configuration.
	fiscalYearStartMonth time.Month
}

// NewExerciseService creates a new ExerciseSvcFacade.
func NewExerciseService(exerciseRepo portsrepo.ExerciseRepositoryFacade, refValidator portssvc.ReferenceValidator, fiscalYearStartMonth time.Month) portssvc.ExerciseSvcFacade {
	return &exerciseService{
		exerciseRepo:         exerciseRepo,
		refValidator:         refValidator,
		fiscalYearStartMonth: fiscalYearStartMonth,
	}
}

var _ portssvc.ExerciseSvcFacade = (*exerciseService)(nil)

// OpenExercise creates a new open fiscal year.
func (s *exerciseService) OpenExercise(ctx context.Context, req dto.OpenExerciseRequest, creatorID string) (*domain.Exercise, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: exercise end date must follow start date", apperrors.ErrValidation)
	}
	if req.StartDate.Month() != s.fiscalYearStartMonth {
		return nil, fmt.Errorf("%w: exercise must start in month %d", apperrors.ErrValidation, s.fiscalYearStartMonth)
	}
	if req.StartDate.Year() != req.Year {
		return nil, fmt.Errorf("%w: start date %s is outside fiscal year %d", apperrors.ErrValidation, req.StartDate.Format("2006-01-02"), req.Year)
	}

	if existing, err := s.exerciseRepo.FindExerciseByYear(ctx, req.Year); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: exercise %d already exists", apperrors.ErrConflict, req.Year)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check exercise %d: %w", req.Year, err)
	}

	overlapping, err := s.exerciseRepo.FindOverlapping(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check exercise overlap: %w", err)
	}
	candidate := domain.Exercise{StartDate: req.StartDate, EndDate: req.EndDate}
	for _, other := range overlapping {
		if other.Overlaps(candidate) {
			return nil, fmt.Errorf("%w: date range overlaps exercise %d", apperrors.ErrConflict, other.Year)
		}
	}

	now := time.Now().UTC()
	exercise := domain.Exercise{
		ExerciseID: uuid.NewString(),
		Year:       req.Year,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Closed:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.exerciseRepo.SaveExercise(ctx, exercise); err != nil {
		logger.Error("Failed to save exercise", slog.String("error", err.Error()), slog.Int("year", req.Year))
		return nil, fmt.Errorf("failed to save exercise %d: %w", req.Year, err)
	}

	logger.Info("Exercise opened", slog.Int("year", exercise.Year), slog.String("exercise_id", exercise.ExerciseID))
	return &exercise, nil
}

// CloseExercise freezes the year. The repository recomputes the final
// balances from the écriture set it reads under the exercise lock, in the
// same transaction that stamps the clôture, so no posting can slip in
// between the read and the freeze.
func (s *exerciseService) CloseExercise(ctx context.Context, year int, closedByID string) (*domain.Exercise, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}
	if exercise.Closed {
		return nil, fmt.Errorf("%w: exercise %d is already closed", apperrors.ErrConflict, year)
	}

	if err := s.refValidator.EnsureActive(ctx, portsrepo.DomainEmployees, closedByID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	closed := *exercise
	closed.Closed = true
	closed.ClosedAt = &now
	closed.ClosedByID = &closedByID
	closed.LastUpdatedAt = now
	closed.LastUpdatedBy = closedByID

	computeFinal := func(entries []domain.Entry) []domain.Balance {
		return accounting.ComputeExerciseBalances(exercise.ExerciseID, entries)
	}
	if err := s.exerciseRepo.CloseExercise(ctx, closed, computeFinal); err != nil {
		logger.Error("Failed to close exercise", slog.String("error", err.Error()), slog.Int("year", year))
		return nil, fmt.Errorf("failed to close exercise %d: %w", year, err)
	}

	logger.Info("Exercise closed", slog.Int("year", year), slog.String("closed_by", closedByID))
	return &closed, nil
}

// GetExercise retrieves the exercise of a fiscal year.
func (s *exerciseService) GetExercise(ctx context.Context, year int) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.FindExerciseByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve exercise %d: %w", year, err)
	}
	return exercise, nil
}

// ListExercises lists exercises, newest first.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

// CurrentOpenExercise retrieves the most recent open exercise.
func (s *exerciseService) CurrentOpenExercise(ctx context.Context) (*domain.Exercise, error) {
	exercises, err := s.exerciseRepo.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	for i := range exercises {
		if !exercises[i].Closed {
			return &exercises[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no open exercise", apperrors.ErrNotFound)
}
