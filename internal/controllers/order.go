package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.orderService.GetOrders(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список заявок успешно получен", http.StatusOK, total)
}

// GetAllOrders отдаёт полную выборку без постраничной навигации:
// шлюз сам обходит все страницы CMS.
func (c *OrderController) GetAllOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.orderService.GetAllOrders(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Полный список заявок успешно получен", http.StatusOK, total)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	res, err := c.orderService.FindOrder(reqCtx, documentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно найдена", http.StatusOK)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateOrder: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.CreateOrder(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateOrder: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateOrder(reqCtx, documentID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	if err := c.orderService.DeleteOrder(reqCtx, documentID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Заявка успешно удалена", http.StatusOK)
}

func (c *OrderController) ChangeStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	var payload dto.ChangeOrderStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("ChangeStatus: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.ChangeStatus(reqCtx, documentID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Статус заявки успешно изменён", http.StatusOK)
}

func (c *OrderController) AppendChatMessage(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	var payload dto.AppendChatMessageDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("AppendChatMessage: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.AppendChatMessage(reqCtx, documentID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сообщение добавлено в чат заявки", http.StatusOK)
}
