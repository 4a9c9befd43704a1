package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journaux comptables.
type journalHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newJournalHandler(s portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{ledgerService: s}
}

// registerJournalRoutes registers journal routes.
func registerJournalRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledgerService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.DELETE("/:code", h.deactivateJournal)
	}
}

func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	journal, err := h.ledgerService.CreateJournal(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create journal")
		return
	}

	logger.Info("Journal created", slog.String("code", journal.Code))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	includeInactive := c.Query("includeInactive") == "true"

	journals, err := h.ledgerService.ListJournals(c.Request.Context(), includeInactive)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalResponse(journals))
}

func (h *journalHandler) deactivateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	userID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	if err := h.ledgerService.DeactivateJournal(c.Request.Context(), code, userID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate journal")
		return
	}

	logger.Info("Journal deactivated", slog.String("code", code))
	c.Status(http.StatusNoContent)
}
