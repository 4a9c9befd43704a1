package services

import (
	"context"

	"github.com/fofal/erp-backend/internal/core/domain"
	"github.com/fofal/erp-backend/internal/dto"
)

// ChartOfAccountsSvcFacade exposes the plan comptable registry operations.
type ChartOfAccountsSvcFacade interface {
	// CreateAccount validates and registers a new account in the hierarchy.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account after verifying it carries
	// no balance in the current open exercise.
	DeactivateAccount(ctx context.Context, code string, userID string) error

	// GetAccountByCode resolves an account code.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts lists accounts, optionally restricted to one OHADA class.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetHierarchy returns the parent chain from the account to its class root.
	GetHierarchy(ctx context.Context, code string) ([]domain.Account, error)
}
