package repositories

// RepositoryProvider bundles the repository facades handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	JournalRepo     JournalRepositoryFacade
	EntryRepo       EntryRepositoryFacade
	ExerciseRepo    ExerciseRepositoryFacade
	BalanceRepo     BalanceRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ReferenceRepo   ReferenceReader
}
