package pgsql

import (
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	exerciseRepo := newPgxExerciseRepository(dbPool)
	balanceRepo := newPgxBalanceRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, entryRepo)
	referenceRepo := newPgxReferenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		EntryRepo:       entryRepo,
		ExerciseRepo:    exerciseRepo,
		BalanceRepo:     balanceRepo,
		TransactionRepo: transactionRepo,
		ReferenceRepo:   referenceRepo,
	}
}
