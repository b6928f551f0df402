package controllers

import (
	"net/http"

	"repair-crm/internal/dto"
	"repair-crm/internal/services"
	apperrors "repair-crm/pkg/errors"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LedgerController struct {
	ledgerService services.LedgerServiceInterface
	logger        *zap.Logger
}

func NewLedgerController(ledgerService services.LedgerServiceInterface, logger *zap.Logger) *LedgerController {
	return &LedgerController{ledgerService: ledgerService, logger: logger}
}

// resourceParam проверяет, что :resource - один из журнальных ресурсов CMS.
func (c *LedgerController) resourceParam(ctx echo.Context) (string, error) {
	resource := ctx.Param("resource")
	if !services.IsLedgerResource(resource) {
		return "", apperrors.NewInvalidInputError("неизвестный журнальный ресурс: %s", resource)
	}
	return resource, nil
}

func (c *LedgerController) GetEntries(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	resource, err := c.resourceParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.ledgerService.GetEntries(reqCtx, resource, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Записи журнала успешно получены", http.StatusOK, total)
}

func (c *LedgerController) GetAllEntries(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	resource, err := c.resourceParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, total, err := c.ledgerService.GetAllEntries(reqCtx, resource, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Полный журнал успешно получен", http.StatusOK, total)
}

// GetAllLedger сливает записи всех трёх журнальных ресурсов в одну выборку.
func (c *LedgerController) GetAllLedger(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	list, err := c.ledgerService.GetAllLedger(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, list, "Сводный журнал успешно получен", http.StatusOK, uint64(len(list)))
}

func (c *LedgerController) CreateEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateLedgerEntryDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateEntry: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ledgerService.CreateEntry(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Запись журнала успешно создана", http.StatusCreated)
}

func (c *LedgerController) ApproveEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	resource, err := c.resourceParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ledgerService.ApproveEntry(reqCtx, resource, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Запись журнала подтверждена", http.StatusOK)
}

func (c *LedgerController) DeleteEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	resource, err := c.resourceParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.ledgerService.DeleteEntry(reqCtx, resource, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, struct{}{}, "Запись журнала успешно удалена", http.StatusOK)
}

// PostManual проводит ручной доход/расход: запись журнала плюс баланс
// сотрудника одним вызовом.
func (c *LedgerController) PostManual(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.PostLedgerDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("PostManual: не удалось разобрать тело запроса", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.ledgerService.PostManual(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Проводка успешно выполнена", http.StatusCreated)
}

// RepairDates проставляет бизнес-дату createdDate старым записям,
// у которых она пустая.
func (c *LedgerController) RepairDates(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	fixed, err := c.ledgerService.RepairDates(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]int{"fixed": fixed}, "Даты записей журнала восстановлены", http.StatusOK)
}
