package dto

import (
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// OpenExerciseRequest defines the data needed to open a fiscal year.
type OpenExerciseRequest struct {
	Year      int       `json:"year" binding:"required,min=2000,max=2100"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// CloseExerciseRequest identifies the employee performing the clôture.
type CloseExerciseRequest struct {
	ClosedByID string `json:"closedByID" binding:"required"`
}

// ExerciseResponse mirrors domain.Exercise for API consumers.
type ExerciseResponse struct {
	ExerciseID string     `json:"exerciseID"`
	Year       int        `json:"year"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Closed     bool       `json:"closed"`
	ClosedAt   *time.Time `json:"closedAt"`
	ClosedByID *string    `json:"closedByID"`
	CreatedAt  time.Time  `json:"createdAt"`
	CreatedBy  string     `json:"createdBy"`
}

// ToExerciseResponse converts a domain.Exercise to ExerciseResponse.
func ToExerciseResponse(e *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ExerciseID: e.ExerciseID,
		Year:       e.Year,
		StartDate:  e.StartDate,
		EndDate:    e.EndDate,
		Closed:     e.Closed,
		ClosedAt:   e.ClosedAt,
		ClosedByID: e.ClosedByID,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy,
	}
}

// ToListExerciseResponse converts a slice of exercises.
func ToListExerciseResponse(exercises []domain.Exercise) []ExerciseResponse {
	res := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		res[i] = ToExerciseResponse(&exercises[i])
	}
	return res
}
