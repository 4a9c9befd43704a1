package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portsrepo "github.com/fofal/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
)

// transactionService manages comptes financiers and the transaction
// lifecycle. Validation is the bridge into the ledger: it posts the paired
// écritures and moves the treasury soldes in one database transaction.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	journalRepo  portsrepo.JournalReader
	accountRepo  portsrepo.AccountReader
	exerciseRepo portsrepo.ExerciseReader
	refValidator portssvc.ReferenceValidator
	currency     string
}

// NewTransactionService creates a new FinanceSvcFacade. currency is the ISO
// code every transaction must carry (XAF for FOFAL).
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader, exerciseRepo portsrepo.ExerciseReader, refValidator portssvc.ReferenceValidator, currency string) portssvc.FinanceSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		exerciseRepo: exerciseRepo,
		refValidator: refValidator,
		currency:     currency,
	}
}

var _ portssvc.FinanceSvcFacade = (*transactionService)(nil)

// CreateTreasuryAccount registers a compte financier with a zero opening solde.
func (s *transactionService) CreateTreasuryAccount(ctx context.Context, req dto.CreateTreasuryAccountRequest, creatorID string) (*domain.TreasuryAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.txnRepo.FindTreasuryAccountByNumber(ctx, req.Number); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: treasury account number %s", apperrors.ErrDuplicate, req.Number)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check treasury account number %s: %w", req.Number, err)
	}
	if req.Currency != s.currency {
		return nil, fmt.Errorf("%w: currency must be %s", apperrors.ErrValidation, s.currency)
	}

	now := time.Now().UTC()
	account := domain.TreasuryAccount{
		TreasuryAccountID: uuid.NewString(),
		Number:            req.Number,
		Name:              req.Name,
		AccountType:       req.AccountType,
		Currency:          req.Currency,
		Balance:           decimal.Zero,
		BankName:          req.BankName,
		IBAN:              req.IBAN,
		SWIFT:             req.SWIFT,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.txnRepo.SaveTreasuryAccount(ctx, account); err != nil {
		logger.Error("Failed to save treasury account", slog.String("error", err.Error()), slog.String("number", req.Number))
		return nil, fmt.Errorf("failed to save treasury account %s: %w", req.Number, err)
	}

	logger.Info("Treasury account created", slog.String("treasury_account_id", account.TreasuryAccountID), slog.String("number", account.Number))
	return &account, nil
}

// ListTreasuryAccounts lists comptes financiers.
func (s *transactionService) ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error) {
	accounts, err := s.txnRepo.ListTreasuryAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list treasury accounts: %w", err)
	}
	return accounts, nil
}

// resolveTreasurySide resolves an optional treasury account number and
// verifies the account can take movements.
func (s *transactionService) resolveTreasurySide(ctx context.Context, number *string, side string) (*domain.TreasuryAccount, error) {
	if number == nil {
		return nil, nil
	}
	account, err := s.txnRepo.FindTreasuryAccountByNumber(ctx, *number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s treasury account %s does not exist", apperrors.ErrReference, side, *number)
		}
		return nil, fmt.Errorf("failed to resolve %s treasury account %s: %w", side, *number, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s treasury account %s is inactive", apperrors.ErrValidation, side, *number)
	}
	return account, nil
}

// CreateTransaction records a pending movement. Which sides are required
// depends on the type: a VIREMENT moves between two comptes, a RECETTE flows
// in from outside, a DEPENSE flows out, an AJUSTEMENT corrects one side.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.Currency != s.currency {
		return nil, fmt.Errorf("%w: currency must be %s", apperrors.ErrValidation, s.currency)
	}

	switch req.TransactionType {
	case domain.Transfer:
		if req.SourceAccountNumber == nil || req.DestinationAccountNumber == nil {
			return nil, fmt.Errorf("%w: a VIREMENT requires both source and destination accounts", apperrors.ErrValidation)
		}
	case domain.Receipt:
		if req.DestinationAccountNumber == nil {
			return nil, fmt.Errorf("%w: a RECETTE requires a destination account", apperrors.ErrValidation)
		}
	case domain.Payment:
		if req.SourceAccountNumber == nil {
			return nil, fmt.Errorf("%w: a DEPENSE requires a source account", apperrors.ErrValidation)
		}
	case domain.Adjustment:
		if req.SourceAccountNumber == nil && req.DestinationAccountNumber == nil {
			return nil, fmt.Errorf("%w: an AJUSTEMENT requires at least one account", apperrors.ErrValidation)
		}
	}

	if existing, err := s.txnRepo.FindTransactionByReference(ctx, req.Reference); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: transaction reference %s", apperrors.ErrDuplicate, req.Reference)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check transaction reference %s: %w", req.Reference, err)
	}

	source, err := s.resolveTreasurySide(ctx, req.SourceAccountNumber, "source")
	if err != nil {
		return nil, err
	}
	destination, err := s.resolveTreasurySide(ctx, req.DestinationAccountNumber, "destination")
	if err != nil {
		return nil, err
	}
	if source != nil && destination != nil && source.TreasuryAccountID == destination.TreasuryAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	if req.ProjectID != nil {
		if err := s.refValidator.EnsureExists(ctx, portsrepo.DomainProjects, *req.ProjectID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Date:              now,
		TransactionType:   req.TransactionType,
		Category:          req.Category,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Description:       req.Description,
		Reference:         req.Reference,
		Status:            domain.StatusPending,
		ProjectID:         req.ProjectID,
		SupportingDocPath: req.SupportingDocPath,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if source != nil {
		txn.SourceAccountID = &source.TreasuryAccountID
	}
	if destination != nil {
		txn.DestinationAccountID = &destination.TreasuryAccountID
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("reference", req.Reference))
		return nil, fmt.Errorf("failed to save transaction %s: %w", req.Reference, err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("reference", txn.Reference),
	)
	return &txn, nil
}

// pieceTypeFor maps a transaction type onto the pièce backing its écritures.
func pieceTypeFor(t domain.TransactionType) domain.PieceType {
	switch t {
	case domain.Receipt:
		return domain.PieceReceipt
	case domain.Payment:
		return domain.PieceInvoice
	case domain.Transfer:
		return domain.PieceTransfer
	default:
		return domain.PieceJournal
	}
}

// ValidateTransaction moves a pending transaction to VALIDEE. It posts the
// debit and credit écritures named by the request, refreshes the touched
// balances and applies the solde deltas, all in one database transaction.
func (s *transactionService) ValidateTransaction(ctx context.Context, transactionID string, req dto.ValidateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transaction %s: %w", transactionID, err)
	}
	if !txn.CanTransitionTo(domain.StatusValidated) {
		return nil, fmt.Errorf("%w: transaction %s is %s, only %s transactions can be validated",
			apperrors.ErrConflict, transactionID, txn.Status, domain.StatusPending)
	}

	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	exercise, err := s.exerciseRepo.FindExerciseForPeriod(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no exercise covers period %s", apperrors.ErrValidation, period)
		}
		return nil, fmt.Errorf("failed to resolve exercise for period %s: %w", period, err)
	}
	if exercise.Closed {
		return nil, fmt.Errorf("%w: exercise %d is closed", apperrors.ErrPeriodClosed, exercise.Year)
	}

	journal, err := s.journalRepo.FindJournalByCode(ctx, req.JournalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", req.JournalCode, err)
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: %v %s", apperrors.ErrValidation, ErrJournalInactive, journal.Code)
	}

	debitAccount, err := s.resolveActiveAccount(ctx, req.DebitAccountCode)
	if err != nil {
		return nil, err
	}
	creditAccount, err := s.resolveActiveAccount(ctx, req.CreditAccountCode)
	if err != nil {
		return nil, err
	}
	if debitAccount.AccountID == creditAccount.AccountID {
		return nil, fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	pieceType := pieceTypeFor(txn.TransactionType)
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	entries := []domain.Entry{
		{
			EntryID:       uuid.NewString(),
			JournalID:     journal.JournalID,
			AccountID:     debitAccount.AccountID,
			EntryDate:     txn.Date,
			PieceNumber:   txn.Reference,
			PieceType:     pieceType,
			Label:         txn.Description,
			Debit:         txn.Amount,
			Credit:        decimal.Zero,
			Period:        period,
			TransactionID: &txn.TransactionID,
			AuditFields:   audit,
		},
		{
			EntryID:       uuid.NewString(),
			JournalID:     journal.JournalID,
			AccountID:     creditAccount.AccountID,
			EntryDate:     txn.Date,
			PieceNumber:   txn.Reference,
			PieceType:     pieceType,
			Label:         txn.Description,
			Debit:         decimal.Zero,
			Credit:        txn.Amount,
			Period:        period,
			TransactionID: &txn.TransactionID,
			AuditFields:   audit,
		},
	}

	soldeDeltas := make(map[string]decimal.Decimal)
	if txn.SourceAccountID != nil {
		soldeDeltas[*txn.SourceAccountID] = txn.Amount.Neg()
	}
	if txn.DestinationAccountID != nil {
		soldeDeltas[*txn.DestinationAccountID] = txn.Amount
	}

	if err := s.txnRepo.SaveValidation(ctx, *txn, *exercise, entries, soldeDeltas, userID, now); err != nil {
		logger.Error("Failed to validate transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to validate transaction %s: %w", transactionID, err)
	}

	txn.Status = domain.StatusValidated
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	logger.Info("Transaction validated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("journal", journal.Code),
		slog.String("period", period.String()),
	)
	return txn, nil
}

func (s *transactionService) resolveActiveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %v %s", apperrors.ErrValidation, ErrAccountInactive, account.Code)
	}
	return account, nil
}

// RejectTransaction marks a pending transaction REJETEE.
func (s *transactionService) RejectTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	return s.closeWithoutPosting(ctx, transactionID, domain.StatusRejected, userID)
}

// CancelTransaction marks a pending transaction ANNULEE.
func (s *transactionService) CancelTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	return s.closeWithoutPosting(ctx, transactionID, domain.StatusCancelled, userID)
}

// closeWithoutPosting moves a pending transaction to a terminal status that
// has no ledger or solde side effects.
func (s *transactionService) closeWithoutPosting(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transaction %s: %w", transactionID, err)
	}
	if !txn.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: transaction %s is %s and cannot move to %s",
			apperrors.ErrConflict, transactionID, txn.Status, status)
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, status, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	txn.Status = status
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	middleware.GetLoggerFromCtx(ctx).Info("Transaction closed without posting",
		slog.String("transaction_id", transactionID),
		slog.String("status", string(status)),
	)
	return txn, nil
}

// GetTransaction retrieves one transaction.
func (s *transactionService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions lists transactions newest first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, domain.TransactionStatus(params.Status), params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
