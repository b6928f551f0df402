// Package reports рендерит готовые строки отчётов в XLSX и PDF.
// Содержимое колонок фиксировано здесь, визуальное оформление - дело
// десятое и не специфицируется.
package reports

import (
	"bytes"
	"fmt"

	"repair-crm/internal/entities"

	"github.com/xuri/excelize/v2"
)

var masterReportHeaders = []interface{}{
	"Мастер", "Выдано заявок", "Выручка", "Доход", "Расход", "Ручные проводки", "Баланс",
}

var serviceReportHeaders = []interface{}{
	"Период", "Выдано", "Выручка", "Доход", "Расход", "Сальдо",
}

func MasterReportXLSX(rows []entities.MasterReportRow, period entities.ReportPeriod) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Отчёт по мастерам"
	f.SetSheetName("Sheet1", sheet)

	f.SetSheetRow(sheet, "A1", &masterReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.MasterName, row.OrdersIssued, row.Revenue, row.Income, row.Outcome, row.ManualIO, row.Balance,
		}
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "G", 16)

	return writeXLSX(f)
}

func ServiceReportXLSX(rows []entities.ServiceReportRow, period entities.ReportPeriod) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Отчёт сервиса"
	f.SetSheetName("Sheet1", sheet)

	f.SetSheetRow(sheet, "A1", &serviceReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			row.Period, row.Issued, row.Revenue, row.Income, row.Outcome, row.Net,
		}
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "F", 16)

	return writeXLSX(f)
}

func writeXLSX(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("запись XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

func periodTitle(period entities.ReportPeriod) string {
	const layout = "02.01.2006"
	switch {
	case !period.From.IsZero() && !period.To.IsZero():
		return fmt.Sprintf("за период %s - %s", period.From.Format(layout), period.To.Format(layout))
	case !period.From.IsZero():
		return "с " + period.From.Format(layout)
	case !period.To.IsZero():
		return "по " + period.To.Format(layout)
	default:
		return "за всё время"
	}
}
