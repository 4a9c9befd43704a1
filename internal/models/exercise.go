package models

import "time"

// Exercise is the persisted form of an exercice comptable.
type Exercise struct {
	ExerciseID string     `db:"exercise_id"`
	Year       int        `db:"year"`
	StartDate  time.Time  `db:"start_date"`
	EndDate    time.Time  `db:"end_date"`
	Closed     bool       `db:"closed"`
	ClosedAt   *time.Time `db:"closed_at"`
	ClosedByID *string    `db:"closed_by_id"`
	AuditFields
}
