package routes

import (
	"repair-crm/internal/controllers"
	"repair-crm/internal/repositories"
	"repair-crm/internal/services"
	"repair-crm/pkg/strapi"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runSettingsRouter(secureGroup *echo.Group, api *strapi.Client, logger *zap.Logger) {
	settingsRepo := repositories.NewSettingsRepository(api)
	settingsService := services.NewSettingsService(settingsRepo, logger)
	settingsCtrl := controllers.NewSettingsController(settingsService, logger)
	{
		secureGroup.GET("/settings", settingsCtrl.GetSettings)
		secureGroup.PUT("/settings", settingsCtrl.UpdateSettings)
	}
}
