package services_test

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, class domain.AccountClass, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, class, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindParentChain(ctx context.Context, accountID string) ([]domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeactivateJournal(ctx context.Context, journalID string, userID string, now time.Time) error {
	args := m.Called(ctx, journalID, userID, now)
	return args.Error(0)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, from, to domain.Period) ([]domain.Entry, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByJournal(ctx context.Context, journalID string, period domain.Period) ([]domain.Entry, error) {
	args := m.Called(ctx, journalID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntriesByExercise(ctx context.Context, exercise domain.Exercise) ([]domain.Entry, error) {
	args := m.Called(ctx, exercise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntries(ctx context.Context, exercise domain.Exercise, entries []domain.Entry) error {
	args := m.Called(ctx, exercise, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryAttachment(ctx context.Context, entryID string, path string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, path, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) InsertEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.Entry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) RefreshBalancesInTx(ctx context.Context, tx pgx.Tx, exercise domain.Exercise, accountIDs []string) error {
	args := m.Called(ctx, tx, exercise, accountIDs)
	return args.Error(0)
}

// --- Mock ExerciseRepository ---

type MockExerciseRepository struct {
	mock.Mock
}

var _ portsrepo.ExerciseRepositoryFacade = (*MockExerciseRepository)(nil)

func (m *MockExerciseRepository) FindExerciseByYear(ctx context.Context, year int) (*domain.Exercise, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) FindExerciseForPeriod(ctx context.Context, period domain.Period) (*domain.Exercise, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.Exercise, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) SaveExercise(ctx context.Context, exercise domain.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) CloseExercise(ctx context.Context, exercise domain.Exercise, computeFinal portsrepo.FinalBalanceFunc) error {
	args := m.Called(ctx, exercise, computeFinal)
	return args.Error(0)
}

// --- Mock BalanceRepository ---

type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepositoryFacade = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) FindBalanceAsOf(ctx context.Context, exerciseID, accountID string, period domain.Period) (*domain.Balance, error) {
	args := m.Called(ctx, exerciseID, accountID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ListBalancesAsOf(ctx context.Context, exerciseID string, period domain.Period) ([]domain.Balance, error) {
	args := m.Called(ctx, exerciseID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) FindLatestBalances(ctx context.Context, exerciseID string, accountIDs []string, period domain.Period) (map[string]domain.Balance, error) {
	args := m.Called(ctx, exerciseID, accountIDs, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) ReplaceExerciseBalances(ctx context.Context, exerciseID string, balances []domain.Balance) error {
	args := m.Called(ctx, exerciseID, balances)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, status, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveValidation(ctx context.Context, txn domain.Transaction, exercise domain.Exercise, entries []domain.Entry, soldeDeltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, txn, exercise, entries, soldeDeltas, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTreasuryAccountByNumber(ctx context.Context, number string) (*domain.TreasuryAccount, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryAccount), args.Error(1)
}

func (m *MockTransactionRepository) FindTreasuryAccountByID(ctx context.Context, id string) (*domain.TreasuryAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryAccount), args.Error(1)
}

func (m *MockTransactionRepository) ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreasuryAccount), args.Error(1)
}

func (m *MockTransactionRepository) SaveTreasuryAccount(ctx context.Context, account domain.TreasuryAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock ReferenceReader ---

type MockReferenceReader struct {
	mock.Mock
}

var _ portsrepo.ReferenceReader = (*MockReferenceReader)(nil)

func (m *MockReferenceReader) Exists(ctx context.Context, refDomain portsrepo.ReferenceDomain, id string) (bool, error) {
	args := m.Called(ctx, refDomain, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferenceReader) IsActive(ctx context.Context, refDomain portsrepo.ReferenceDomain, id string) (bool, error) {
	args := m.Called(ctx, refDomain, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock ReferenceValidator ---

type MockReferenceValidator struct {
	mock.Mock
}

var _ portssvc.ReferenceValidator = (*MockReferenceValidator)(nil)

func (m *MockReferenceValidator) EnsureExists(ctx context.Context, refDomain portsrepo.ReferenceDomain, id string) error {
	args := m.Called(ctx, refDomain, id)
	return args.Error(0)
}

func (m *MockReferenceValidator) EnsureActive(ctx context.Context, refDomain portsrepo.ReferenceDomain, id string) error {
	args := m.Called(ctx, refDomain, id)
	return args.Error(0)
}
