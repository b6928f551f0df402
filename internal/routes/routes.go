package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-crm/internal/repositories"
	"repair-crm/internal/services"
	"repair-crm/pkg/config"
	"repair-crm/pkg/eventbus"
	"repair-crm/pkg/middleware"
	"repair-crm/pkg/strapi"
)

// InitRouter собирает весь граф зависимостей шлюза: репозитории поверх
// CMS-клиента, сервисы с кешем и шиной событий, контроллеры и маршруты.
func InitRouter(e *echo.Echo, api *strapi.Client, redisClient *redis.Client, bus *eventbus.Bus, cfg *config.Config, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	apiGroup := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(logger)
	services.RegisterAuditListener(bus, logger)
	cache := repositories.NewRedisCacheRepository(redisClient)
	cacheTTL := cfg.Cache.TTL

	secureGroup := apiGroup.Group("", authMW.Auth)

	orderService := runOrderRouter(secureGroup, api, cache, bus, cacheTTL, logger)
	runClientRouter(secureGroup, api, cache, bus, cacheTTL, logger)
	userService := runUserRouter(secureGroup, api, cache, bus, cacheTTL, logger)
	ledgerService := runLedgerRouter(secureGroup, api, cache, bus, cacheTTL, logger)
	runCashboxRouter(secureGroup, api, cache, bus, cacheTTL, logger)
	runSettingsRouter(secureGroup, api, logger)

	runDashboardRouter(secureGroup, orderService, ledgerService, logger)
	runReportRouter(secureGroup, orderService, userService, ledgerService, logger)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
