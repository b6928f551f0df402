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

func runCashboxRouter(secureGroup *echo.Group, api *strapi.Client, cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, cacheTTL time.Duration, logger *zap.Logger) {
	cashboxRepo := repositories.NewCashboxRepository(api)
	cashboxService := services.NewCashboxService(cashboxRepo, cache, bus, cacheTTL, logger)
	cashboxCtrl := controllers.NewCashboxController(cashboxService, logger)
	{
		secureGroup.GET("/cashbox", cashboxCtrl.GetCashbox)
		secureGroup.GET("/cashbox/transactions", cashboxCtrl.GetTransactions)
		secureGroup.POST("/cashbox/operations", cashboxCtrl.Operate)
	}
}
