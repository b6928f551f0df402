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

func runClientRouter(secureGroup *echo.Group, api *strapi.Client, cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, cacheTTL time.Duration, logger *zap.Logger) {
	clientRepo := repositories.NewClientRepository(api)
	clientService := services.NewClientService(clientRepo, cache, bus, cacheTTL, logger)
	clientCtrl := controllers.NewClientController(clientService, logger)
	{
		secureGroup.GET("/clients", clientCtrl.GetClients)
		secureGroup.GET("/clients/all", clientCtrl.GetAllClients)
		secureGroup.POST("/clients", clientCtrl.CreateClient)
		secureGroup.GET("/clients/:id", clientCtrl.FindClient)
		secureGroup.PUT("/clients/:id", clientCtrl.UpdateClient)
		secureGroup.DELETE("/clients/:id", clientCtrl.DeleteClient)
	}
}
