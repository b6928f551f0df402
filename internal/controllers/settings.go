package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type SettingsController struct {
	settingsService services.SettingsServiceInterface
	logger          *zap.Logger
}

func NewSettingsController(settingsService services.SettingsServiceInterface, logger *zap.Logger) *SettingsController {
	return &SettingsController{settingsService: settingsService, logger: logger}
}

func (c *SettingsController) GetSettings(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.settingsService.GetSettings(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Настройки успешно получены", http.StatusOK)
}

func (c *SettingsController) UpdateSettings(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateSettingsDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateSettings: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.settingsService.UpdateSettings(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Настройки успешно обновлены", http.StatusOK)
}
