package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fofal/erp-backend/internal/apperrors"
	"github.com/fofal/erp-backend/internal/core/domain"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/handlers"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ChartOfAccountsService ---

type MockChartOfAccountsService struct {
	mock.Mock
}

var _ portssvc.ChartOfAccountsSvcFacade = (*MockChartOfAccountsService)(nil)

func (m *MockChartOfAccountsService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartOfAccountsService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

func (m *MockChartOfAccountsService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockChartOfAccountsService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockChartOfAccountsService) GetHierarchy(ctx context.Context, code string) ([]domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock LedgerService ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorID string) (*domain.Journal, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockLedgerService) ListJournals(ctx context.Context, includeInactive bool) ([]domain.Journal, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockLedgerService) DeactivateJournal(ctx context.Context, code string, userID string) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

func (m *MockLedgerService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorID string) (*domain.Entry, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockLedgerService) ListEntriesByAccount(ctx context.Context, accountCode string, from, to domain.Period) ([]domain.Entry, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockLedgerService) ListEntriesByJournal(ctx context.Context, journalCode string, period domain.Period) ([]domain.Entry, error) {
	args := m.Called(ctx, journalCode, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockLedgerService) AttachPiece(ctx context.Context, entryID string, path string, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, path, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

// --- Mock ExerciseService ---

type MockExerciseService struct {
	mock.Mock
}

var _ portssvc.ExerciseSvcFacade = (*MockExerciseService)(nil)

func (m *MockExerciseService) OpenExercise(ctx context.Context, req dto.OpenExerciseRequest, creatorID string) (*domain.Exercise, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseService) CloseExercise(ctx context.Context, year int, closedByID string) (*domain.Exercise, error) {
	args := m.Called(ctx, year, closedByID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseService) GetExercise(ctx context.Context, year int) (*domain.Exercise, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Exercise), args.Error(1)
}

func (m *MockExerciseService) CurrentOpenExercise(ctx context.Context) (*domain.Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

// --- Mock BalanceService ---

type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

func (m *MockBalanceService) RecomputeExercise(ctx context.Context, year int) ([]domain.Balance, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceService) GetBalance(ctx context.Context, year int, accountCode string, period domain.Period) (*domain.Balance, error) {
	args := m.Called(ctx, year, accountCode, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceService) ListBalances(ctx context.Context, year int, period domain.Period) ([]domain.Balance, error) {
	args := m.Called(ctx, year, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Balance), args.Error(1)
}

func (m *MockBalanceService) TrialBalance(ctx context.Context, year int, period domain.Period) (*domain.TrialBalance, error) {
	args := m.Called(ctx, year, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

// --- Mock FinanceService ---

type MockFinanceService struct {
	mock.Mock
}

var _ portssvc.FinanceSvcFacade = (*MockFinanceService)(nil)

func (m *MockFinanceService) CreateTreasuryAccount(ctx context.Context, req dto.CreateTreasuryAccountRequest, creatorID string) (*domain.TreasuryAccount, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasuryAccount), args.Error(1)
}

func (m *MockFinanceService) ListTreasuryAccounts(ctx context.Context) ([]domain.TreasuryAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TreasuryAccount), args.Error(1)
}

func (m *MockFinanceService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) ValidateTransaction(ctx context.Context, transactionID string, req dto.ValidateTransactionRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) RejectTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) CancelTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockFinanceService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCOA     *MockChartOfAccountsService
	mockLedger  *MockLedgerService
	mockExSvc   *MockExerciseService
	mockBalance *MockBalanceService
	mockFinance *MockFinanceService
	actorID     string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockCOA = new(MockChartOfAccountsService)
	suite.mockLedger = new(MockLedgerService)
	suite.mockExSvc = new(MockExerciseService)
	suite.mockBalance = new(MockBalanceService)
	suite.mockFinance = new(MockFinanceService)
	suite.actorID = uuid.NewString()

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		ChartOfAccounts: suite.mockCOA,
		Ledger:          suite.mockLedger,
		Exercise:        suite.mockExSvc,
		Balance:         suite.mockBalance,
		Finance:         suite.mockFinance,
	})
}

func (suite *AccountHandlerTestSuite) doJSON(method, path string, body any, withActor bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withActor {
		req.Header.Set(middleware.ActorHeader, suite.actorID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "521",
		Name:        "Banques locales",
		Class:       domain.ClassTreasury,
		AccountType: domain.Asset,
		Level:       1,
		IsActive:    true,
	}
	suite.mockCOA.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), suite.actorID).Return(account, nil).Once()

	body := gin.H{"code": "521", "name": "Banques locales", "type": "ACTIF"}
	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("521", resp.Code)
	suite.mockCOA.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingActor() {
	body := gin.H{"code": "521", "name": "Banques locales", "type": "ACTIF"}
	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", body, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCOA.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BadAccountType() {
	body := gin.H{"code": "521", "name": "Banques locales", "type": "BANQUE"}
	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateMapsToConflict() {
	suite.mockCOA.On("CreateAccount", mock.Anything, mock.Anything, suite.actorID).Return(nil, apperrors.ErrDuplicate).Once()

	body := gin.H{"code": "521", "name": "Banques locales", "type": "ACTIF"}
	w := suite.doJSON(http.MethodPost, "/api/v1/accounts", body, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockCOA.On("GetAccountByCode", mock.Anything, "999").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/accounts/999", nil, false)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_NoContent() {
	suite.mockCOA.On("DeactivateAccount", mock.Anything, "521", suite.actorID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/accounts/521", nil, true)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *AccountHandlerTestSuite) TestPostEntry_ClosedPeriodMapsToLocked() {
	suite.mockLedger.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.actorID).Return(nil, apperrors.ErrPeriodClosed).Once()

	body := gin.H{
		"journalCode": "BQ",
		"accountCode": "521",
		"entryDate":   "2025-03-10T00:00:00Z",
		"amount":      "25000",
		"direction":   "DEBIT",
		"period":      "2025-03",
		"pieceType":   "RECU",
		"pieceNumber": "RC-2025-0042",
		"label":       "Encaissement vente cacao",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/entries", body, true)

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *AccountHandlerTestSuite) TestPostEntry_InvalidPeriodRejectedAtBinding() {
	body := gin.H{
		"journalCode": "BQ",
		"accountCode": "521",
		"entryDate":   "2025-03-10T00:00:00Z",
		"amount":      "25000",
		"direction":   "DEBIT",
		"period":      "2025-13",
		"pieceType":   "RECU",
		"pieceNumber": "RC-2025-0042",
		"label":       "Encaissement vente cacao",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/entries", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestValidateTransaction_ReferenceErrorMapsTo422() {
	txnID := uuid.NewString()
	suite.mockFinance.On("ValidateTransaction", mock.Anything, txnID, mock.AnythingOfType("dto.ValidateTransactionRequest"), suite.actorID).
		Return(nil, apperrors.ErrReference).Once()

	body := gin.H{
		"journalCode":       "BQ",
		"period":            "2025-03",
		"debitAccountCode":  "521",
		"creditAccountCode": "701",
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/"+txnID+"/validate", body, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *AccountHandlerTestSuite) TestTrialBalance_Success() {
	report := &domain.TrialBalance{
		Year:        2025,
		Period:      "2025-03",
		TotalDebit:  decimal.NewFromInt(1000),
		TotalCredit: decimal.NewFromInt(1000),
		Drift:       decimal.Zero,
	}
	suite.mockBalance.On("TrialBalance", mock.Anything, 2025, domain.Period("2025-03")).Return(report, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/exercises/2025/trial-balance?period=2025-03", nil, false)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AccountHandlerTestSuite) TestHealthEndpoint() {
	w := suite.doJSON(http.MethodGet, "/health", nil, false)
	suite.Equal(http.StatusOK, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
