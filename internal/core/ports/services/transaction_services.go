package services

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/dto"
)

// FinanceSvcFacade exposes finance transactions and treasury accounts.
type FinanceSvcFacade interface {
	// CreateTreasuryAccount registers a compte financier.
	CreateTreasuryAccount(ctx context.Context, req dto.CreateTreasuryAccountRequest, creatorID string) (*domain.TreasuryAccount, error)

	// ListTreasuryAccounts lists comptes financiers.
	ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error)

	// CreateTransaction records a pending financial movement.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorID string) (*domain.Transaction, error)

	// ValidateTransaction posts the paired écritures for a pending
	// transaction, moves the treasury soldes and marks it VALIDEE. Atomic.
	ValidateTransaction(ctx context.Context, transactionID string, req dto.ValidateTransactionRequest, userID string) (*domain.Transaction, error)

	// RejectTransaction marks a pending transaction REJETEE (terminal).
	RejectTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// CancelTransaction marks a pending transaction ANNULEE (terminal).
	CancelTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)

	// GetTransaction retrieves one transaction.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions lists transactions, optionally filtered by status.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}
