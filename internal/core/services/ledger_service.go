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

var (
	ErrJournalInactive = errors.New("journal is inactive")
	ErrAccountInactive = errors.New("account is inactive")
)

// ledgerService records écritures against open periods and manages journaux.
type ledgerService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	entryRepo    portsrepo.EntryRepositoryFacade
	accountRepo  portsrepo.AccountReader
	exerciseRepo portsrepo.ExerciseReader
	txnRepo      portsrepo.TransactionReader
}

// NewLedgerService creates a new LedgerSvcFacade.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, entryRepo portsrepo.EntryRepositoryFacade, accountRepo portsrepo.AccountReader, exerciseRepo portsrepo.ExerciseReader, txnRepo portsrepo.TransactionReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo:  journalRepo,
		entryRepo:    entryRepo,
		accountRepo:  accountRepo,
		exerciseRepo: exerciseRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateJournal registers a new journal comptable.
func (s *ledgerService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if existing, err := s.journalRepo.FindJournalByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: journal code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check journal code %s: %w", req.Code, err)
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		JournalType: req.JournalType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save journal %s: %w", req.Code, err)
	}

	logger.Info("Journal created", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	return &journal, nil
}

// ListJournals lists journals.
func (s *ledgerService) ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	return journals, nil
}

// DeactivateJournal stops new postings into a journal. Existing écritures
// are untouched.
func (s *ledgerService) DeactivateJournal(ctx context.Context, code string, userID string) error {
	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to resolve journal %s: %w", code, err)
	}
	if !journal.IsActive {
		return fmt.Errorf("%w: journal %s is already inactive", apperrors.ErrConflict, code)
	}
	if err := s.journalRepo.DeactivateJournal(ctx, journal.JournalID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate journal %s: %w", code, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Journal deactivated", slog.String("code", code))
	return nil
}

// resolveOpenExercise finds the exercise covering the period and verifies it
// is open.
func (s *ledgerService) resolveOpenExercise(ctx context.Context, period domain.Period) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.FindExerciseForPeriod(ctx, period)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no exercise covers period %s", apperrors.ErrValidation, period)
		}
		return nil, fmt.Errorf("failed to resolve exercise for period %s: %w", period, err)
	}
	if !exercise.Covers(period) {
		return nil, fmt.Errorf("%w: exercise %d does not cover period %s", apperrors.ErrValidation, exercise.Year, period)
	}
	if exercise.Closed {
		return nil, fmt.Errorf("%w: exercise %d is closed", apperrors.ErrPeriodClosed, exercise.Year)
	}
	return exercise, nil
}

// PostEntry records one écriture against an open period.
func (s *ledgerService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if domain.PeriodOf(req.EntryDate) != period {
		return nil, fmt.Errorf("%w: entry date %s falls outside period %s", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"), period)
	}

	journal, err := s.journalRepo.FindJournalByCode(ctx, req.JournalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", req.JournalCode, err)
	}
	if !journal.IsActive {
		return nil, fmt.Errorf("%w: %v %s", apperrors.ErrValidation, ErrJournalInactive, journal.Code)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, req.AccountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", req.AccountCode, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %v %s", apperrors.ErrValidation, ErrAccountInactive, account.Code)
	}

	exercise, err := s.resolveOpenExercise(ctx, period)
	if err != nil {
		return nil, err
	}

	if req.TransactionID != nil {
		if _, err := s.txnRepo.FindTransactionByID(ctx, *req.TransactionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: transaction %s does not exist", apperrors.ErrReference, *req.TransactionID)
			}
			return nil, fmt.Errorf("failed to resolve transaction %s: %w", *req.TransactionID, err)
		}
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:       uuid.NewString(),
		JournalID:     journal.JournalID,
		AccountID:     account.AccountID,
		EntryDate:     req.EntryDate,
		PieceNumber:   req.PieceNumber,
		PieceType:     req.PieceType,
		Label:         req.Label,
		Period:        period,
		TransactionID: req.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	// Exactly one side carries the amount.
	if req.Direction == domain.Debit {
		entry.Debit = req.Amount
		entry.Credit = decimal.Zero
	} else {
		entry.Debit = decimal.Zero
		entry.Credit = req.Amount
	}

	if err := s.entryRepo.SaveEntries(ctx, *exercise, []domain.Entry{entry}); err != nil {
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("account", account.Code), slog.String("period", period.String()))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	logger.Info("Entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("journal", journal.Code),
		slog.String("account", account.Code),
		slog.String("period", period.String()),
	)
	return &entry, nil
}

// ReverseEntry appends an écriture with the sides swapped. The original is
// never mutated or deleted.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry %s: %w", entryID, err)
	}
	if original.ReversesID != nil {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrConflict, entryID)
	}

	exercise, err := s.resolveOpenExercise(ctx, original.Period)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	reversal := domain.Entry{
		EntryID:       uuid.NewString(),
		JournalID:     original.JournalID,
		AccountID:     original.AccountID,
		EntryDate:     now,
		PieceNumber:   original.PieceNumber,
		PieceType:     domain.PieceJournal,
		Label:         "Extourne: " + original.Label,
		Debit:         original.Credit,
		Credit:        original.Debit,
		Period:        original.Period,
		TransactionID: original.TransactionID,
		ReversesID:    &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.entryRepo.SaveEntries(ctx, *exercise, []domain.Entry{reversal}); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("original_entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal of %s: %w", entryID, err)
	}

	logger.Info("Entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	return &reversal, nil
}

// GetEntry retrieves one écriture.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntriesByAccount lists an account's écritures over a period range.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountCode string, from, to domain.Period) ([]domain.Entry, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountCode, err)
	}
	entries, err := s.entryRepo.ListEntriesByAccount(ctx, account.AccountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for account %s: %w", accountCode, err)
	}
	return entries, nil
}

// ListEntriesByJournal lists a journal's écritures for one period.
func (s *ledgerService) ListEntriesByJournal(ctx context.Context, journalCode string, period domain.Period) ([]domain.Entry, error) {
	journal, err := s.journalRepo.FindJournalByCode(ctx, journalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve journal %s: %w", journalCode, err)
	}
	entries, err := s.entryRepo.ListEntriesByJournal(ctx, journal.JournalID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for journal %s: %w", journalCode, err)
	}
	return entries, nil
}

// AttachPiece sets the pièce jointe path, the only mutable field of a
// posted écriture.
func (s *ledgerService) AttachPiece(ctx context.Context, entryID string, path string, userID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	if err := s.entryRepo.UpdateEntryAttachment(ctx, entryID, path, userID, now); err != nil {
		return nil, fmt.Errorf("failed to attach piece to entry %s: %w", entryID, err)
	}

	entry.AttachmentPath = &path
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}
