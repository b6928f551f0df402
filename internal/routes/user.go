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

func runUserRouter(secureGroup *echo.Group, api *strapi.Client, cache repositories.CacheRepositoryInterface, bus *eventbus.Bus, cacheTTL time.Duration, logger *zap.Logger) services.UserServiceInterface {
	userRepo := repositories.NewUserRepository(api)
	userService := services.NewUserService(userRepo, cache, bus, cacheTTL, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	{
		secureGroup.GET("/users", userCtrl.GetUsers)
		secureGroup.GET("/users/masters", userCtrl.GetMasters)
		secureGroup.GET("/users/:id", userCtrl.FindUser)
		secureGroup.PUT("/users/:id", userCtrl.UpdateUser)
		secureGroup.PATCH("/users/:id/block", userCtrl.BlockUser)
		secureGroup.PATCH("/users/:id/unblock", userCtrl.UnblockUser)
	}
	return userService
}
