package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CashboxController struct {
	cashboxService services.CashboxServiceInterface
	logger         *zap.Logger
}

func NewCashboxController(cashboxService services.CashboxServiceInterface, logger *zap.Logger) *CashboxController {
	return &CashboxController{cashboxService: cashboxService, logger: logger}
}

func (c *CashboxController) GetCashbox(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.cashboxService.GetCashbox(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Состояние кассы успешно получено", http.StatusOK)
}

func (c *CashboxController) GetTransactions(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.cashboxService.GetTransactions(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Операции кассы успешно получены", http.StatusOK, total)
}

// Operate проводит операцию кассы: Приход, Расход или Корректировка.
func (c *CashboxController) Operate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CashboxOperationDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("Operate: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.cashboxService.Operate(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Операция кассы успешно проведена", http.StatusCreated)
}
