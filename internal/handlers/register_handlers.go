package handlers

import (
	"github.com/fofal/erp-backend/internal/core/domain"
	portssvc "github.com/fofal/erp-backend/internal/core/ports/services"
	"github.com/fofal/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, services.ChartOfAccounts)
	registerJournalRoutes(v1, services.Ledger)
	registerEntryRoutes(v1, services.Ledger)
	registerExerciseRoutes(v1, services.Exercise)
	registerBalanceRoutes(v1, services.Balance)
	registerTransactionRoutes(v1, services.Finance)
}

// registerCustomValidators wires the accounting_period binding tag so any
// request field tagged with it must be a valid YYYY-MM period.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("accounting_period", func(fl validator.FieldLevel) bool {
			_, err := domain.ParsePeriod(fl.Field().String())
			return err == nil
		})
	}
}
