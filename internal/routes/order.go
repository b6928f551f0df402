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

func runOrderRouter(secureGroup *echo.Group, api *strapi.Client, cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, cacheTTL time.Duration, logger *zap.Logger) services.OrderServiceInterface {
	orderRepo := repositories.NewOrderRepository(api)
	orderService := services.NewOrderService(orderRepo, cache, bus, cacheTTL, logger)
	orderCtrl := controllers.NewOrderController(orderService, logger)
	{
		secureGroup.GET("/orders", orderCtrl.GetOrders)
		secureGroup.GET("/orders/all", orderCtrl.GetAllOrders)
		secureGroup.POST("/orders", orderCtrl.CreateOrder)
		secureGroup.GET("/orders/:id", orderCtrl.FindOrder)
		secureGroup.PUT("/orders/:id", orderCtrl.UpdateOrder)
		secureGroup.DELETE("/orders/:id", orderCtrl.DeleteOrder)
		secureGroup.PATCH("/orders/:id/status", orderCtrl.ChangeStatus)
		secureGroup.POST("/orders/:id/chat", orderCtrl.AppendChatMessage)
	}
	return orderService
}
