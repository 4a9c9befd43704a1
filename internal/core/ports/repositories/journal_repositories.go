package repositories

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// JournalReader defines read operations for journaux comptables
type JournalReader interface {
	// FindJournalByCode retrieves a journal by its unique code.
	FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// ListJournals retrieves all journals ordered by code.
	ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journaux comptables
type JournalWriter interface {
	// SaveJournal persists a new journal.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// DeactivateJournal marks a journal as inactive, stopping new postings.
	DeactivateJournal(ctx context.Context, journalID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
