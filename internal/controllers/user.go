package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.userService.GetUsers(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список сотрудников успешно получен", http.StatusOK, total)
}

// GetMasters - короткий справочник мастеров для выпадающих списков.
func (c *UserController) GetMasters(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	list, total, err := c.userService.GetMasters(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Список мастеров успешно получен", http.StatusOK, total)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	res, err := c.userService.FindUser(reqCtx, documentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сотрудник успешно найден", http.StatusOK)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateUser: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(reqCtx, documentID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Сотрудник успешно обновлён", http.StatusOK)
}

func (c *UserController) BlockUser(ctx echo.Context) error {
	return c.setBlocked(ctx, true, "Сотрудник заблокирован")
}

func (c *UserController) UnblockUser(ctx echo.Context) error {
	return c.setBlocked(ctx, false, "Сотрудник разблокирован")
}

func (c *UserController) setBlocked(ctx echo.Context, blocked bool, message string) error {
	reqCtx := ctx.Request().Context()
	documentID := ctx.Param("id")

	res, err := c.userService.SetBlocked(reqCtx, documentID, blocked)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}
