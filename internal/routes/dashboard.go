package routes

import (
	"repair-crm/internal/controllers"
	"repair-crm/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runDashboardRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, ledgerService services.LedgerServiceInterface, logger *zap.Logger) {
	statsService := services.NewStatsService(orderService, ledgerService, logger)
	dashboardCtrl := controllers.NewDashboardController(statsService, logger)
	{
		secureGroup.GET("/stats/tiles", dashboardCtrl.GetTiles)
	}
}
