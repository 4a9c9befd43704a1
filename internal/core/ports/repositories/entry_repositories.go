package repositories

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryReader defines read operations for écritures comptables
type EntryReader interface {
	// FindEntryByID retrieves an écriture by its id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByAccount retrieves an account's écritures over an inclusive
	// period range, ordered by date then creation time.
	ListEntriesByAccount(ctx context.Context, accountID string, from, to domain.Period) ([]domain.Entry, error)

	// ListEntriesByJournal retrieves a journal's écritures for one period.
	ListEntriesByJournal(ctx context.Context, journalID string, period domain.Period) ([]domain.Entry, error)

	// ListEntriesByExercise retrieves every écriture whose period falls within
	// the exercise's range, the input of a full balance recomputation.
	ListEntriesByExercise(ctx context.Context, exercise domain.Exercise) ([]domain.Entry, error)
}

// EntryWriter defines write operations for écritures comptables
type EntryWriter interface {
	// SaveEntries atomically inserts the écritures and refreshes the balance
	// rows of every touched account within the given exercise. All entries
	// must belong to periods covered by the exercise.
	SaveEntries(ctx context.Context, exercise domain.Exercise, entries []domain.Entry) error

	// UpdateEntryAttachment sets the pièce jointe path, the only mutable
	// field of a posted écriture.
	UpdateEntryAttachment(ctx context.Context, entryID string, path string, userID string, now time.Time) error
}

// EntryTransactionSupport exposes the écriture persistence steps for callers
// composing them into a wider database transaction.
type EntryTransactionSupport interface {
	// InsertEntriesInTx inserts écritures inside an existing transaction.
	InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error

	// RefreshBalancesInTx recomputes and upserts the balance rows of the
	// given accounts for the exercise, inside an existing transaction. The
	// relevant balance rows must have been locked by the caller.
	RefreshBalancesInTx(ctx context.Context, tx pgx.Tx, exercise domain.Exercise, accountIDs []string) error
}

// EntryRepositoryFacade combines all écriture-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	EntryTransactionSupport
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
