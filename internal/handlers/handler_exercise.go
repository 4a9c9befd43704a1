package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/dto"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exerciseHandler handles HTTP requests for exercices comptables.
type exerciseHandler struct {
	exerciseService portssvc.ExerciseSvcFacade
}

func newExerciseHandler(s portssvc.ExerciseSvcFacade) *exerciseHandler {
	return &exerciseHandler{exerciseService: s}
}

// registerExerciseRoutes registers exercise routes.
func registerExerciseRoutes(rg *gin.RouterGroup, exerciseService portssvc.ExerciseSvcFacade) {
	h := newExerciseHandler(exerciseService)

	exercises := rg.Group("/exercises")
	{
		exercises.POST("", h.openExercise)
		exercises.GET("", h.listExercises)
		// "current" resolves the most recent open exercise; gin's tree
		// does not allow a static sibling next to the :year parameter.
		exercises.GET("/:year", h.getExercise)
		exercises.POST("/:year/close", h.closeExercise)
	}
}

func parseYearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year must be an integer"})
		return 0, false
	}
	return year, true
}

func (h *exerciseHandler) openExercise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenExercise", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing actor identity"})
		return
	}

	exercise, err := h.exerciseService.OpenExercise(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to open exercise")
		return
	}

	logger.Info("Exercise opened", slog.Int("year", exercise.Year))
	c.JSON(http.StatusCreated, dto.ToExerciseResponse(exercise))
}

func (h *exerciseHandler) listExercises(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list exercises")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExerciseResponse(exercises))
}

func (h *exerciseHandler) currentOpenExercise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	exercise, err := h.exerciseService.CurrentOpenExercise(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve current exercise")
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseResponse(exercise))
}

func (h *exerciseHandler) getExercise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if c.Param("year") == "current" {
		h.currentOpenExercise(c)
		return
	}
	year, ok := parseYearParam(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve exercise")
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseResponse(exercise))
}

func (h *exerciseHandler) closeExercise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, ok := parseYearParam(c)
	if !ok {
		return
	}

	var req dto.CloseExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	exercise, err := h.exerciseService.CloseExercise(c.Request.Context(), year, req.ClosedByID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close exercise")
		return
	}

	logger.Info("Exercise closed", slog.Int("year", year))
	c.JSON(http.StatusOK, dto.ToExerciseResponse(exercise))
}
