package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ClientController struct {
	clientService services.ClientServiceInterface
	logger        *zap.Logger
}

func NewClientController(clientService services.ClientServiceInterface, logger *zap.Logger) *ClientController {
	return &ClientController{clientService: clientService, logger: logger}
}

func (c *ClientController) GetClients(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.clientService.GetClients(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список клиентов успешно получен", http.StatusOK, total)
}

func (c *ClientController) GetAllClients(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.clientService.GetAllClients(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Полный список клиентов успешно получен", http.StatusOK, total)
}

func (c *ClientController) FindClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	res, err := c.clientService.FindClient(reqCtx, documentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Клиент успешно найден", http.StatusOK)
}

func (c *ClientController) CreateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateClient: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.CreateClient(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Клиент успешно создан", http.StatusCreated)
}

func (c *ClientController) UpdateClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	var payload dto.UpdateClientDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateClient: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.clientService.UpdateClient(reqCtx, documentID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Клиент успешно обновлён", http.StatusOK)
}

func (c *ClientController) DeleteClient(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	if err := c.clientService.DeleteClient(reqCtx, documentID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Клиент успешно удалён", http.StatusOK)
}
