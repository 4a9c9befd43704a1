package domain

import "time"

// Exercise is a fiscal year (exercice comptable): the unit of period closing.
// Created open; transitions to closed exactly once, which freezes balances.
type Exercise struct {
	ExerciseID string     `json:"exerciseID"`
	Year       int        `json:"year"` // Unique
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	Closed     bool       `json:"closed"`
	ClosedAt   *time.Time `json:"closedAt"`
	ClosedByID *string    `json:"closedByID"` // Employee who performed the clôture
	AuditFields
}

// Covers reports whether the period falls within the exercise's date range.
func (e Exercise) Covers(p Period) bool {
	first := PeriodOf(e.StartDate)
	last := PeriodOf(e.EndDate)
	return !p.Before(first) && !last.Before(p)
}

// Periods lists every accounting period of the exercise in chronological order.
func (e Exercise) Periods() []Period {
	return PeriodsBetween(PeriodOf(e.StartDate), PeriodOf(e.EndDate))
}

// Overlaps reports whether the two exercises' date ranges intersect.
func (e Exercise) Overlaps(other Exercise) bool {
	return !e.EndDate.Before(other.StartDate) && !other.EndDate.Before(e.StartDate)
}
