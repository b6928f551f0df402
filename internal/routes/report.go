package routes

import (
	"repair-crm/internal/controllers"
	"repair-crm/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runReportRouter(secureGroup *echo.Group, orderService services.OrderServiceInterface, userService services.UserServiceInterface, ledgerService services.LedgerServiceInterface, logger *zap.Logger) {
	reportService := services.NewReportService(orderService, userService, ledgerService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)
	{
		secureGroup.GET("/reports/masters", reportCtrl.GetMasterReport)
		secureGroup.GET("/reports/service", reportCtrl.GetServiceReport)
	}
}
