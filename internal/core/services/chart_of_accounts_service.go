package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/fofal/erp-backend/internal/utils/accounting"
)

// maxHierarchyDepth bounds parent-chain walks; the OHADA numbering scheme
// cannot nest deeper than the code length.
const maxHierarchyDepth = 10

// chartOfAccountsService maintains the plan comptable tree.
type chartOfAccountsService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	balanceRepo  portsrepo.BalanceReader
	exerciseRepo portsrepo.ExerciseReader
}

// NewChartOfAccountsService creates a new ChartOfAccountsSvcFacade.
func NewChartOfAccountsService(accountRepo portsrepo.AccountRepositoryFacade, balanceRepo portsrepo.BalanceReader, exerciseRepo portsrepo.ExerciseReader) portssvc.ChartOfAccountsSvcFacade {
	return &chartOfAccountsService{
		accountRepo:  accountRepo,
		balanceRepo:  balanceRepo,
		exerciseRepo: exerciseRepo,
	}
}

var _ portssvc.ChartOfAccountsSvcFacade = (*chartOfAccountsService)(nil)

// CreateAccount validates and registers a new account.
func (s *chartOfAccountsService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	class, err := accounting.ClassFromCode(req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !accounting.ClassAllowsType(class, req.AccountType) {
		return nil, fmt.Errorf("%w: type %s is not allowed in OHADA class %d", apperrors.ErrValidation, req.AccountType, class)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}

	level := 1
	var parentID *string
	if req.ParentCode != nil {
		parent, err := s.accountRepo.FindAccountByCode(ctx, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, *req.ParentCode)
			}
			return nil, fmt.Errorf("failed to resolve parent account %s: %w", *req.ParentCode, err)
		}
		if !parent.IsActive {
			return nil, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parent.Code)
		}
		if parent.Class != class {
			return nil, fmt.Errorf("%w: parent account %s belongs to class %d, not %d", apperrors.ErrValidation, parent.Code, parent.Class, class)
		}
		if !accounting.IsChildCode(parent.Code, req.Code) {
			return nil, fmt.Errorf("%w: code %s does not extend parent code %s", apperrors.ErrValidation, req.Code, parent.Code)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: type %s conflicts with parent type %s", apperrors.ErrValidation, req.AccountType, parent.AccountType)
		}
		if err := s.ensureAcyclicChain(ctx, parent); err != nil {
			return nil, err
		}
		level = parent.Level + 1
		parentID = &parent.AccountID
	} else if len(req.Code) > 1 {
		// Non-root codes must hang off a registered parent so every parent
		// chain terminates at a class root.
		return nil, fmt.Errorf("%w: account %s requires a parent account", apperrors.ErrValidation, req.Code)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		Class:           class,
		AccountType:     req.AccountType,
		Level:           level,
		ParentAccountID: parentID,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account %s: %w", req.Code, err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// ensureAcyclicChain walks the parent chain and verifies it terminates at a
// class root within the depth bound.
func (s *chartOfAccountsService) ensureAcyclicChain(ctx context.Context, start *domain.Account) error {
	seen := map[string]bool{}
	current := start
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if seen[current.AccountID] {
			return fmt.Errorf("%w: account hierarchy cycle at %s", apperrors.ErrValidation, current.Code)
		}
		seen[current.AccountID] = true
		if current.ParentAccountID == nil {
			if current.Level != 1 {
				return fmt.Errorf("%w: account %s has no parent but is not a class root", apperrors.ErrValidation, current.Code)
			}
			return nil
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, *current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("failed to walk parent chain of %s: %w", start.Code, err)
		}
		current = parent
	}
	return fmt.Errorf("%w: parent chain of %s exceeds maximum depth", apperrors.ErrValidation, start.Code)
}

// DeactivateAccount soft-deletes an account with no open-exercise balance.
func (s *chartOfAccountsService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, code)
	}

	// A non-zero position in any open exercise blocks deactivation.
	exercises, err := s.exerciseRepo.ListExercises(ctx)
	if err != nil {
		return fmt.Errorf("failed to list exercises: %w", err)
	}
	for _, ex := range exercises {
		if ex.Closed {
			continue
		}
		latest, err := s.balanceRepo.FindLatestBalances(ctx, ex.ExerciseID, []string{account.AccountID}, domain.PeriodOf(ex.EndDate))
		if err != nil {
			return fmt.Errorf("failed to check balances for account %s: %w", code, err)
		}
		if b, ok := latest[account.AccountID]; ok {
			if !b.DebtorBalance.IsZero() || !b.CreditorBalance.IsZero() {
				return fmt.Errorf("%w: account %s carries a non-zero balance in exercise %d", apperrors.ErrConflict, code, ex.Year)
			}
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, account.AccountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("code", code))
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}

	logger.Info("Account deactivated", slog.String("code", code))
	return nil
}

// GetAccountByCode resolves an account code.
func (s *chartOfAccountsService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts lists accounts, optionally restricted to one class.
func (s *chartOfAccountsService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountClass(params.Class), limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetHierarchy returns the parent chain from the account to its class root.
func (s *chartOfAccountsService) GetHierarchy(ctx context.Context, code string) ([]domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	chain, err := s.accountRepo.FindParentChain(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to walk hierarchy of %s: %w", code, err)
	}
	root := chain[len(chain)-1]
	if root.Level != 1 || root.Class != account.Class {
		return nil, fmt.Errorf("%w: hierarchy of %s does not terminate at its class root", apperrors.ErrValidation, code)
	}
	return chain, nil
}
