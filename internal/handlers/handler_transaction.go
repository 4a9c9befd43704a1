package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for finance transactions and
// comptes financiers.
type transactionHandler struct {
	financeService portssvc.FinanceSvcFacade
}

func newTransactionHandler(s portssvc.FinanceSvcFacade) *transactionHandler {
	return &transactionHandler{financeService: s}
}

// registerTransactionRoutes registers finance routes.
func registerTransactionRoutes(rg *gin.RouterGroup, financeService portssvc.FinanceSvcFacade) {
	h := newTransactionHandler(financeService)

	treasury := rg.Group("/treasury-accounts")
	{
		treasury.POST("", h.createTreasuryAccount)
		treasury.GET("", h.listTreasuryAccounts)
	}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/validate", h.validateTransaction)
		transactions.POST("/:id/reject", h.rejectTransaction)
		transactions.POST("/:id/cancel", h.cancelTransaction)
	}
}

func (h *transactionHandler) createTreasuryAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTreasuryAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTreasuryAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	account, err := h.financeService.CreateTreasuryAccount(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create treasury account")
		return
	}

	logger.Info("Treasury account created", slog.String("number", account.Number))
	c.JSON(http.StatusCreated, dto.ToTreasuryAccountResponse(account))
}

func (h *transactionHandler) listTreasuryAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.financeService.ListTreasuryAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list treasury accounts")
		return
	}

	res := make([]dto.TreasuryAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = dto.ToTreasuryAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, res)
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	txn, err := h.financeService.CreateTransaction(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.financeService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	txn, err := h.financeService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) validateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.ValidateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	txn, err := h.financeService.ValidateTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to validate transaction")
		return
	}

	logger.Info("Transaction validated", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) rejectTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	txn, err := h.financeService.RejectTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reject transaction")
		return
	}

	logger.Info("Transaction rejected", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

func (h *transactionHandler) cancelTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	userID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	txn, err := h.financeService.CancelTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to cancel transaction")
		return
	}

	logger.Info("Transaction cancelled", slog.String("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
