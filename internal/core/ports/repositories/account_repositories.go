package repositories

import (
	"context"
	"time"

	"github.com/fofal/erp-backend/internal/core/domain"
)

// AccountReader defines read operations for plan comptable data
type AccountReader interface {
	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountByID retrieves an account by its id.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally filtered by class (0 = all),
	// ordered by code.
	ListAccounts(ctx context.Context, class domain.AccountClass, limit, offset int) ([]domain.Account, error)

	// FindParentChain walks parent references from the account up to its
	// class root, returning the chain starting with the account itself.
	FindParentChain(ctx context.Context, accountID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for plan comptable data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
