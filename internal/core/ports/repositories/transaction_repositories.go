package repositories

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for finance transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a transaction by its unique reference.
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions filtered by status ("" = all),
	// newest first.
	ListTransactions(ctx context.Context, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for finance transactions
type TransactionWriter interface {
	// SaveTransaction persists a new (pending) transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction to a terminal status
	// without side effects (reject, cancel).
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error

	// SaveValidation atomically posts the paired écritures, refreshes the
	// touched balance rows, applies the treasury solde deltas and marks the
	// transaction VALIDEE.
	SaveValidation(ctx context.Context, txn domain.Transaction, exercise domain.Exercise, entries []domain.Entry, soldeDeltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// TreasuryAccountReader defines read operations for comptes financiers
type TreasuryAccountReader interface {
	// FindTreasuryAccountByNumber retrieves a treasury account by numéro.
	FindTreasuryAccountByNumber(ctx context.Context, number string) (*domain.TreasuryAccount, error)

	// FindTreasuryAccountByID retrieves a treasury account by id.
	FindTreasuryAccountByID(ctx context.Context, id string) (*domain.TreasuryAccount, error)

	// ListTreasuryAccounts retrieves all treasury accounts ordered by numéro.
	ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error)
}

// TreasuryAccountWriter defines write operations for comptes financiers
type TreasuryAccountWriter interface {
	// SaveTreasuryAccount persists a new treasury account.
	SaveTreasuryAccount(ctx context.Context, account domain.TreasuryAccount) error
}

// TransactionRepositoryFacade combines all finance-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TreasuryAccountReader
	TreasuryAccountWriter
}
