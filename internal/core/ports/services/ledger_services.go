package services

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/dto"
)

// LedgerSvcFacade exposes journal management and écriture posting.
type LedgerSvcFacade interface {
	// CreateJournal registers a new journal comptable.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorID string) (*domain.Journal, error)

	// ListJournals lists journals.
	ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error)

	// DeactivateJournal stops new postings into a journal.
	DeactivateJournal(ctx context.Context, code string, userID string) error

	// PostEntry records one écriture against an open period. Atomic: the
	// écriture and its balance effect land together or not at all.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.Entry, error)

	// ReverseEntry appends a new écriture with the sides swapped, leaving
	// the original untouched. Fails with ErrPeriodClosed when the original
	// period's exercise is closed; the correction must then be reposted into
	// the current open period by the caller.
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.Entry, error)

	// GetEntry retrieves one écriture.
	GetEntry(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByAccount lists an account's écritures over a period range.
	ListEntriesByAccount(ctx context.Context, accountCode string, from, to domain.Period) ([]domain.Entry, error)

	// ListEntriesByJournal lists a journal's écritures for one period.
	ListEntriesByJournal(ctx context.Context, journalCode string, period domain.Period) ([]domain.Entry, error)

	// AttachPiece sets the pièce jointe path on a posted écriture.
	AttachPiece(ctx context.Context, entryID string, path string, userID string) (*domain.Entry, error)
}
