package mapping

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/models"
)

// ToModelExercise converts a domain Exercise to a model Exercise
func ToModelExercise(d domain.Exercise) models.Exercise {
	return models.Exercise{
		ExerciseID:  d.ExerciseID,
		Year:        d.Year,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Closed:      d.Closed,
		ClosedAt:    d.ClosedAt,
		ClosedByID:  d.ClosedByID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExercise converts a model Exercise to a domain Exercise
func ToDomainExercise(m models.Exercise) domain.Exercise {
	return domain.Exercise{
		ExerciseID:  m.ExerciseID,
		Year:        m.Year,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Closed:      m.Closed,
		ClosedAt:    m.ClosedAt,
		ClosedByID:  m.ClosedByID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExerciseSlice converts a slice of model Exercises to a slice of domain Exercises
func ToDomainExerciseSlice(ms []models.Exercise) []domain.Exercise {
	ds := make([]domain.Exercise, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExercise(m)
	}
	return ds
}
