package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/core/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockEntryRepo    *MockEntryRepository
	mockAccountRepo  *MockAccountRepository
	mockExerciseRepo *MockExerciseRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.LedgerSvcFacade

	userID   string
	journal  *domain.Journal
	account  *domain.Account
	exercise *domain.Exercise
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockExerciseRepo = new(MockExerciseRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.service = services.NewLedgerService(s.mockJournalRepo, s.mockEntryRepo, s.mockAccountRepo, s.mockExerciseRepo, s.mockTxnRepo)

	s.userID = uuid.NewString()
	s.journal = &domain.Journal{
		JournalID:   uuid.NewString(),
		Code:        "BQ",
		Name:        "Banque",
		JournalType: domain.JournalBank,
		IsActive:    true,
	}
	s.account = &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "521",
		Name:        "Banques locales",
		Class:       domain.ClassTreasury,
		AccountType: domain.Asset,
		Level:       1,
		IsActive:    true,
	}
	s.exercise = &domain.Exercise{
		ExerciseID: uuid.NewString(),
		Year:       2025,
		StartDate:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (s *LedgerServiceTestSuite) postEntryRequest() dto.PostEntryRequest {
	return dto.PostEntryRequest{
		JournalCode: "BQ",
		AccountCode: "521",
		EntryDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(25000),
		Direction:   domain.Debit,
		Period:      "2025-03",
		PieceType:   domain.PieceReceipt,
		PieceNumber: "RC-2025-0042",
		Label:       "Encaissement vente cacao",
	}
}

func (s *LedgerServiceTestSuite) TestPostEntry_Debit() {
	ctx := context.Background()
	req := s.postEntryRequest()

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(s.exercise, nil).Once()
	s.mockEntryRepo.On("SaveEntries", ctx, *s.exercise, mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.NotEmpty(entry.EntryID)
	s.Equal(s.journal.JournalID, entry.JournalID)
	s.Equal(s.account.AccountID, entry.AccountID)
	s.True(entry.Debit.Equal(req.Amount))
	s.True(entry.Credit.IsZero())
	s.Equal(domain.Period("2025-03"), entry.Period)
	s.Equal(s.userID, entry.CreatedBy)
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostEntry_CreditSideCarriesAmount() {
	ctx := context.Background()
	req := s.postEntryRequest()
	req.Direction = domain.Credit

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(s.exercise, nil).Once()
	s.mockEntryRepo.On("SaveEntries", ctx, *s.exercise, mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	entry, err := s.service.PostEntry(ctx, req, s.userID)

	s.Require().NoError(err)
	s.True(entry.Debit.IsZero())
	s.True(entry.Credit.Equal(req.Amount))
}

func (s *LedgerServiceTestSuite) TestPostEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := s.postEntryRequest()
	req.Amount = decimal.Zero

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_InvalidPeriod() {
	ctx := context.Background()
	req := s.postEntryRequest()
	req.Period = "2025-13"

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestPostEntry_DateOutsidePeriod() {
	ctx := context.Background()
	req := s.postEntryRequest()
	req.EntryDate = time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "FindJournalByCode", mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_ExerciseDoesNotCoverPeriod() {
	ctx := context.Background()
	req := s.postEntryRequest()
	mismatched := &domain.Exercise{
		ExerciseID: uuid.NewString(),
		Year:       2024,
		StartDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(mismatched, nil).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_InactiveJournal() {
	ctx := context.Background()
	req := s.postEntryRequest()
	inactive := *s.journal
	inactive.IsActive = false

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(&inactive, nil).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := s.postEntryRequest()
	inactive := *s.account
	inactive.IsActive = false

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(&inactive, nil).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestPostEntry_NoCoveringExercise() {
	ctx := context.Background()
	req := s.postEntryRequest()

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerServiceTestSuite) TestPostEntry_ClosedExercise() {
	ctx := context.Background()
	req := s.postEntryRequest()
	closed := *s.exercise
	closed.Closed = true

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(&closed, nil).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrPeriodClosed)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostEntry_DanglingTransactionLink() {
	ctx := context.Background()
	req := s.postEntryRequest()
	missing := uuid.NewString()
	req.TransactionID = &missing

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "521").Return(s.account, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(s.exercise, nil).Once()
	s.mockTxnRepo.On("FindTransactionByID", ctx, missing).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.PostEntry(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrReference)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_SwapsSides() {
	ctx := context.Background()
	original := &domain.Entry{
		EntryID:     uuid.NewString(),
		JournalID:   s.journal.JournalID,
		AccountID:   s.account.AccountID,
		EntryDate:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		PieceNumber: "RC-2025-0042",
		PieceType:   domain.PieceReceipt,
		Label:       "Encaissement vente cacao",
		Debit:       decimal.NewFromInt(25000),
		Credit:      decimal.Zero,
		Period:      "2025-03",
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(s.exercise, nil).Once()
	s.mockEntryRepo.On("SaveEntries", ctx, *s.exercise, mock.AnythingOfType("[]domain.Entry")).Return(nil).Once()

	reversal, err := s.service.ReverseEntry(ctx, original.EntryID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(reversal)
	s.NotEqual(original.EntryID, reversal.EntryID)
	s.True(reversal.Debit.IsZero(), "reversal flips the amount to the other side")
	s.True(reversal.Credit.Equal(original.Debit))
	s.Equal(original.Period, reversal.Period)
	s.Require().NotNil(reversal.ReversesID)
	s.Equal(original.EntryID, *reversal.ReversesID)
	s.True(original.Debit.Sub(reversal.Credit).IsZero(), "original plus reversal nets to zero")
}

func (s *LedgerServiceTestSuite) TestReverseEntry_RefusesReversalOfReversal() {
	ctx := context.Background()
	originalID := uuid.NewString()
	reversal := &domain.Entry{
		EntryID:    uuid.NewString(),
		ReversesID: &originalID,
		Period:     "2025-03",
	}

	s.mockEntryRepo.On("FindEntryByID", ctx, reversal.EntryID).Return(reversal, nil).Once()

	_, err := s.service.ReverseEntry(ctx, reversal.EntryID, s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockEntryRepo.AssertNotCalled(s.T(), "SaveEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestReverseEntry_ClosedPeriod() {
	ctx := context.Background()
	original := &domain.Entry{
		EntryID: uuid.NewString(),
		Debit:   decimal.NewFromInt(100),
		Period:  "2025-03",
	}
	closed := *s.exercise
	closed.Closed = true

	s.mockEntryRepo.On("FindEntryByID", ctx, original.EntryID).Return(original, nil).Once()
	s.mockExerciseRepo.On("FindExerciseForPeriod", ctx, domain.Period("2025-03")).Return(&closed, nil).Once()

	_, err := s.service.ReverseEntry(ctx, original.EntryID, s.userID)

	s.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (s *LedgerServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Code:        "VE",
		Name:        "Ventes",
		JournalType: domain.JournalSales,
	}

	s.mockJournalRepo.On("FindJournalByCode", ctx, "VE").Return(nil, apperrors.ErrNotFound).Once()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal")).Return(nil).Once()

	journal, err := s.service.CreateJournal(ctx, req, s.userID)

	s.Require().NoError(err)
	s.NotEmpty(journal.JournalID)
	s.Equal("VE", journal.Code)
	s.True(journal.IsActive)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestCreateJournal_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{Code: "BQ", Name: "Banque", JournalType: domain.JournalBank}

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()

	_, err := s.service.CreateJournal(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *LedgerServiceTestSuite) TestDeactivateJournal_AlreadyInactive() {
	ctx := context.Background()
	inactive := *s.journal
	inactive.IsActive = false

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(&inactive, nil).Once()

	err := s.service.DeactivateJournal(ctx, "BQ", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestAttachPiece_UpdatesPath() {
	ctx := context.Background()
	entry := &domain.Entry{EntryID: uuid.NewString(), Period: "2025-03"}

	s.mockEntryRepo.On("FindEntryByID", ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockEntryRepo.On("UpdateEntryAttachment", ctx, entry.EntryID, "pieces/rc-0042.pdf", s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := s.service.AttachPiece(ctx, entry.EntryID, "pieces/rc-0042.pdf", s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(updated.AttachmentPath)
	s.Equal("pieces/rc-0042.pdf", *updated.AttachmentPath)
	s.Equal(s.userID, updated.LastUpdatedBy)
}

func (s *LedgerServiceTestSuite) TestListEntriesByJournal_ResolvesJournalCode() {
	ctx := context.Background()
	entries := []domain.Entry{
		{EntryID: uuid.NewString(), JournalID: s.journal.JournalID, Period: "2025-03"},
		{EntryID: uuid.NewString(), JournalID: s.journal.JournalID, Period: "2025-03"},
	}

	s.mockJournalRepo.On("FindJournalByCode", ctx, "BQ").Return(s.journal, nil).Once()
	s.mockEntryRepo.On("ListEntriesByJournal", ctx, s.journal.JournalID, domain.Period("2025-03")).Return(entries, nil).Once()

	got, err := s.service.ListEntriesByJournal(ctx, "BQ", "2025-03")

	s.Require().NoError(err)
	s.Len(got, 2)
	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockEntryRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestListEntriesByJournal_UnknownJournal() {
	ctx := context.Background()

	s.mockJournalRepo.On("FindJournalByCode", ctx, "ZZ").Return(nil, apperrors.NewNotFoundError("journal ZZ")).Once()

	_, err := s.service.ListEntriesByJournal(ctx, "ZZ", "2025-03")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
