package services_test

import (
	"context"
	"testing"

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

type ChartOfAccountsServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockBalanceRepo  *MockBalanceRepository
	mockExerciseRepo *MockExerciseRepository
	service          portssvc.ChartOfAccountsSvcFacade
	userID           string
}

func (s *ChartOfAccountsServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockBalanceRepo = new(MockBalanceRepository)
	s.mockExerciseRepo = new(MockExerciseRepository)
	s.service = services.NewChartOfAccountsService(s.mockAccountRepo, s.mockBalanceRepo, s.mockExerciseRepo)
	s.userID = uuid.NewString()
}

func (s *ChartOfAccountsServiceTestSuite) classRoot(code string, accountType domain.AccountType) *domain.Account {
	class := domain.AccountClass(code[0] - '0')
	return &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        "Classe " + code,
		Class:       class,
		AccountType: accountType,
		Level:       1,
		IsActive:    true,
	}
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_ClassRoot() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "6", Name: "Charges", AccountType: domain.Expense}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "6").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(account)
	s.Equal("6", account.Code)
	s.Equal(domain.ClassExpenses, account.Class)
	s.Equal(1, account.Level)
	s.Nil(account.ParentAccountID)
	s.True(account.IsActive)
	s.Equal(s.userID, account.CreatedBy)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_ChildInheritsParentLevel() {
	ctx := context.Background()
	parent := s.classRoot("60", domain.Expense)
	parent.Level = 2
	parentOfParent := s.classRoot("6", domain.Expense)
	parent.ParentAccountID = &parentOfParent.AccountID

	req := dto.CreateAccountRequest{Code: "605", Name: "Autres achats", AccountType: domain.Expense, ParentCode: &parent.Code}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "605").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "60").Return(parent, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, parentOfParent.AccountID).Return(parentOfParent, nil).Once()
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, req, s.userID)

	s.Require().NoError(err)
	s.Equal(3, account.Level)
	s.Require().NotNil(account.ParentAccountID)
	s.Equal(parent.AccountID, *account.ParentAccountID)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_InvalidCode() {
	ctx := context.Background()

	for _, code := range []string{"", "60A", "801", "60510000011"} {
		req := dto.CreateAccountRequest{Code: code, Name: "Invalid", AccountType: domain.Expense}
		_, err := s.service.CreateAccount(ctx, req, s.userID)
		s.ErrorIs(err, apperrors.ErrValidation, "code %q", code)
	}
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_TypeClassMismatch() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "6", Name: "Charges", AccountType: domain.Revenue}

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := s.classRoot("6", domain.Expense)
	req := dto.CreateAccountRequest{Code: "6", Name: "Charges", AccountType: domain.Expense}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "6").Return(existing, nil).Once()

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockAccountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_NonRootRequiresParent() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "605", Name: "Autres achats", AccountType: domain.Expense}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "605").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_ParentClassMismatch() {
	ctx := context.Background()
	parent := s.classRoot("7", domain.Revenue)
	req := dto.CreateAccountRequest{Code: "605", Name: "Autres achats", AccountType: domain.Expense, ParentCode: &parent.Code}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "605").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "7").Return(parent, nil).Once()

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_CodeMustExtendParent() {
	ctx := context.Background()
	parent := s.classRoot("60", domain.Expense)
	parent.Level = 2
	req := dto.CreateAccountRequest{Code: "615", Name: "Transports", AccountType: domain.Expense, ParentCode: &parent.Code}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "615").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "60").Return(parent, nil).Once()

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChartOfAccountsServiceTestSuite) TestCreateAccount_InactiveParent() {
	ctx := context.Background()
	parent := s.classRoot("6", domain.Expense)
	parent.IsActive = false
	req := dto.CreateAccountRequest{Code: "60", Name: "Achats", AccountType: domain.Expense, ParentCode: &parent.Code}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "60").Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountRepo.On("FindAccountByCode", ctx, "6").Return(parent, nil).Once()

	_, err := s.service.CreateAccount(ctx, req, s.userID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChartOfAccountsServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := s.classRoot("571", domain.Asset)
	exercise := domain.Exercise{ExerciseID: uuid.NewString(), Year: 2025}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "571").Return(account, nil).Once()
	s.mockExerciseRepo.On("ListExercises", ctx).Return([]domain.Exercise{exercise}, nil).Once()
	s.mockBalanceRepo.On("FindLatestBalances", ctx, exercise.ExerciseID, []string{account.AccountID}, mock.AnythingOfType("domain.Period")).
		Return(map[string]domain.Balance{}, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, "571", s.userID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *ChartOfAccountsServiceTestSuite) TestDeactivateAccount_BlockedByOpenBalance() {
	ctx := context.Background()
	account := s.classRoot("571", domain.Asset)
	exercise := domain.Exercise{ExerciseID: uuid.NewString(), Year: 2025}
	position := domain.Balance{
		AccountID:     account.AccountID,
		DebtorBalance: decimal.NewFromInt(5000),
	}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "571").Return(account, nil).Once()
	s.mockExerciseRepo.On("ListExercises", ctx).Return([]domain.Exercise{exercise}, nil).Once()
	s.mockBalanceRepo.On("FindLatestBalances", ctx, exercise.ExerciseID, []string{account.AccountID}, mock.AnythingOfType("domain.Period")).
		Return(map[string]domain.Balance{account.AccountID: position}, nil).Once()

	err := s.service.DeactivateAccount(ctx, "571", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ChartOfAccountsServiceTestSuite) TestDeactivateAccount_ClosedExercisesIgnored() {
	ctx := context.Background()
	account := s.classRoot("571", domain.Asset)
	closed := domain.Exercise{ExerciseID: uuid.NewString(), Year: 2024, Closed: true}

	s.mockAccountRepo.On("FindAccountByCode", ctx, "571").Return(account, nil).Once()
	s.mockExerciseRepo.On("ListExercises", ctx).Return([]domain.Exercise{closed}, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, "571", s.userID)

	s.Require().NoError(err)
	s.mockBalanceRepo.AssertNotCalled(s.T(), "FindLatestBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ChartOfAccountsServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	account := s.classRoot("571", domain.Asset)
	account.IsActive = false

	s.mockAccountRepo.On("FindAccountByCode", ctx, "571").Return(account, nil).Once()

	err := s.service.DeactivateAccount(ctx, "571", s.userID)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ChartOfAccountsServiceTestSuite) TestGetHierarchy_TerminatesAtClassRoot() {
	ctx := context.Background()
	root := s.classRoot("6", domain.Expense)
	mid := s.classRoot("60", domain.Expense)
	mid.Level = 2
	leaf := s.classRoot("605", domain.Expense)
	leaf.Level = 3

	s.mockAccountRepo.On("FindAccountByCode", ctx, "605").Return(leaf, nil).Once()
	s.mockAccountRepo.On("FindParentChain", ctx, leaf.AccountID).Return([]domain.Account{*leaf, *mid, *root}, nil).Once()

	chain, err := s.service.GetHierarchy(ctx, "605")

	s.Require().NoError(err)
	s.Require().Len(chain, 3)
	s.Equal("605", chain[0].Code)
	s.Equal("6", chain[2].Code)
}

func (s *ChartOfAccountsServiceTestSuite) TestGetHierarchy_BrokenChain() {
	ctx := context.Background()
	leaf := s.classRoot("605", domain.Expense)
	leaf.Level = 3
	orphan := s.classRoot("60", domain.Expense)
	orphan.Level = 2 // chain ends before a class root

	s.mockAccountRepo.On("FindAccountByCode", ctx, "605").Return(leaf, nil).Once()
	s.mockAccountRepo.On("FindParentChain", ctx, leaf.AccountID).Return([]domain.Account{*leaf, *orphan}, nil).Once()

	_, err := s.service.GetHierarchy(ctx, "605")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ChartOfAccountsServiceTestSuite) TestListAccounts_DefaultsLimit() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAccounts", ctx, domain.AccountClass(0), 50, 0).Return([]domain.Account{}, nil).Once()

	_, err := s.service.ListAccounts(ctx, dto.ListAccountsParams{})

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func TestChartOfAccountsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartOfAccountsServiceTestSuite))
}
