package routes

import (
	"time"

	"repair-crm/internal/controllers"
	"repair-crm/internal/repositories"
	"repair-crm/internal/services"
	"repair-crm/pkg/eventbus"
	"repair-crm/pkg/strapi"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runLedgerRouter(secureGroup *echo.Group, api *strapi.Client, cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, cacheTTL time.Duration, logger *zap.Logger) services.LedgerServiceInterface {
	ledgerRepo := repositories.NewLedgerRepository(api)
	userRepo := repositories.NewUserRepository(api)
	ledgerService := services.NewLedgerService(ledgerRepo, userRepo, cache, bus, cacheTTL, logger)
	ledgerCtrl := controllers.NewLedgerController(ledgerService, logger)
	{
		secureGroup.GET("/ledger", ledgerCtrl.GetAllLedger)
		secureGroup.POST("/ledger", ledgerCtrl.CreateEntry)
		secureGroup.POST("/ledger/post", ledgerCtrl.PostManual)
		secureGroup.POST("/ledger/repair-dates", ledgerCtrl.RepairDates)
		secureGroup.GET("/ledger/:resource", ledgerCtrl.GetEntries)
		secureGroup.GET("/ledger/:resource/all", ledgerCtrl.GetAllEntries)
		secureGroup.PATCH("/ledger/:resource/:id/approve", ledgerCtrl.ApproveEntry)
		secureGroup.DELETE("/ledger/:resource/:id", ledgerCtrl.DeleteEntry)
	}
	return ledgerService
}
