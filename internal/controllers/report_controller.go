package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"repair-crm/internal/reports"
	"repair-crm/internal/services"
	"repair-crm/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetMasterReport - отчёт по мастерам: выдано, выручка, доход/расход,
// ручные проводки, баланс. format=json|xlsx|pdf.
func (c *ReportController) GetMasterReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	period := parsePeriod(ctx)
	format := strings.ToLower(ctx.QueryParam("format"))

	c.logger.Debug("Запрос отчёта по мастерам",
		zap.Time("from", period.From),
		zap.Time("to", period.To),
		zap.String("format", format),
	)

	rows, err := c.reportService.MasterReport(reqCtx, period)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	switch format {
	case "xlsx":
		data, err := reports.MasterReportXLSX(rows, period)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.sendFile(ctx, data, xlsxContentType, "masters_report", "xlsx")
	case "pdf":
		data, err := reports.MasterReportPDF(rows, period)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.sendFile(ctx, data, pdfContentType, "masters_report", "pdf")
	}

	return utils.SuccessResponse(ctx, rows, "Отчёт по мастерам успешно сформирован", http.StatusOK, uint64(len(rows)))
}

// GetServiceReport - помесячная сводка сервиса за период.
func (c *ReportController) GetServiceReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	period := parsePeriod(ctx)
	format := strings.ToLower(ctx.QueryParam("format"))

	rows, err := c.reportService.ServiceReport(reqCtx, period)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	switch format {
	case "xlsx":
		data, err := reports.ServiceReportXLSX(rows, period)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.sendFile(ctx, data, xlsxContentType, "service_report", "xlsx")
	case "pdf":
		data, err := reports.ServiceReportPDF(rows, period)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return c.sendFile(ctx, data, pdfContentType, "service_report", "pdf")
	}

	return utils.SuccessResponse(ctx, rows, "Сводный отчёт успешно сформирован", http.StatusOK, uint64(len(rows)))
}

func (c *ReportController) sendFile(ctx echo.Context, data []byte, contentType, name, ext string) error {
	fileName := fmt.Sprintf("%s_%s.%s", name, time.Now().Format("2006-01-02"), ext)
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, contentType, data)
}
