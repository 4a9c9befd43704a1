package handlers

import (
	"log/slog"
	"net/http"

	"github.com/fofal/erp-backend/internal/core/domain"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for balances and the balance générale.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(s portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: s}
}

// registerBalanceRoutes registers balance routes under the exercise group.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	rg.GET("/exercises/:year/balances", h.listBalances)
	rg.POST("/exercises/:year/balances/recompute", h.recomputeBalances)
	rg.GET("/exercises/:year/trial-balance", h.trialBalance)
	rg.GET("/exercises/:year/accounts/:code/balance", h.getBalance)
}

func bindBalanceQuery(c *gin.Context) (domain.Period, bool) {
	var params dto.BalanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return "", false
	}
	return domain.Period(params.Period), true
}

func (h *balanceHandler) listBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := parseYearParam(c)
	if !ok {
		return
	}
	period, ok := bindBalanceQuery(c)
	if !ok {
		return
	}

	balances, err := h.balanceService.ListBalances(c.Request.Context(), year, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

func (h *balanceHandler) recomputeBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := parseYearParam(c)
	if !ok {
		return
	}

	balances, err := h.balanceService.RecomputeExercise(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, logger, err, "Failed to recompute balances")
		return
	}

	logger.Info("Balances recomputed", slog.Int("year", year), slog.Int("rows", len(balances)))
	c.JSON(http.StatusOK, dto.ToListBalanceResponse(balances))
}

func (h *balanceHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := parseYearParam(c)
	if !ok {
		return
	}
	period, ok := bindBalanceQuery(c)
	if !ok {
		return
	}

	report, err := h.balanceService.TrialBalance(c.Request.Context(), year, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := parseYearParam(c)
	if !ok {
		return
	}
	period, ok := bindBalanceQuery(c)
	if !ok {
		return
	}
	code := c.Param("code")

	balance, err := h.balanceService.GetBalance(c.Request.Context(), year, code, period)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}
