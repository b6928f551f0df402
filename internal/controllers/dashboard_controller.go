package controllers

import (
	"net/http"
	"time"

	"repair-crm/internal/entities"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	statsService services.StatsServiceInterface
	logger       *zap.Logger
}

func NewDashboardController(statsService services.StatsServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{statsService: statsService, logger: logger}
}

// parsePeriod читает границы периода из query: принимаем и RFC3339,
// и короткую форму ГГГГ-ММ-ДД.
func parsePeriod(ctx echo.Context) entities.ReportPeriod {
	parse := func(raw string) time.Time {
		if raw == "" {
			return time.Time{}
		}
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
		return time.Time{}
	}

	return entities.ReportPeriod{
		From: parse(ctx.QueryParam("date_from")),
		To:   parse(ctx.QueryParam("date_to")),
	}
}

func (c *DashboardController) GetTiles(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	period := parsePeriod(ctx)

	c.logger.Debug("Запрос плиток дашборда",
		zap.Time("from", period.From),
		zap.Time("to", period.To),
	)

	res, err := c.statsService.GetTiles(reqCtx, period)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Показатели дашборда успешно получены", http.StatusOK)
}
