package reports

import (
	"fmt"

	"repair-crm/internal/entities"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func newDocument(title string, period entities.ReportPeriod) core.Maroto {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10, text.NewCol(12, title, props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(7, text.NewCol(12, periodTitle(period), props.Text{
		Size:  10,
		Align: align.Center,
	}))
	m.AddRow(4)

	return m
}

func headerCell(width int, value string) core.Col {
	return text.NewCol(width, value, props.Text{Size: 9, Style: fontstyle.Bold})
}

func bodyCell(width int, value string) core.Col {
	return text.NewCol(width, value, props.Text{Size: 9})
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func MasterReportPDF(rows []entities.MasterReportRow, period entities.ReportPeriod) ([]byte, error) {
	m := newDocument("Отчёт по мастерам", period)

	m.AddRow(7,
		headerCell(3, "Мастер"),
		headerCell(1, "Выдано"),
		headerCell(2, "Выручка"),
		headerCell(2, "Доход"),
		headerCell(2, "Расход"),
		headerCell(1, "Ручные"),
		headerCell(1, "Баланс"),
	)
	for _, row := range rows {
		m.AddRow(6,
			bodyCell(3, row.MasterName),
			bodyCell(1, fmt.Sprintf("%d", row.OrdersIssued)),
			bodyCell(2, money(row.Revenue)),
			bodyCell(2, money(row.Income)),
			bodyCell(2, money(row.Outcome)),
			bodyCell(1, money(row.ManualIO)),
			bodyCell(1, money(row.Balance)),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("генерация PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func ServiceReportPDF(rows []entities.ServiceReportRow, period entities.ReportPeriod) ([]byte, error) {
	m := newDocument("Отчёт сервиса", period)

	m.AddRow(7,
		headerCell(2, "Период"),
		headerCell(2, "Выдано"),
		headerCell(2, "Выручка"),
		headerCell(2, "Доход"),
		headerCell(2, "Расход"),
		headerCell(2, "Сальдо"),
	)
	for _, row := range rows {
		m.AddRow(6,
			bodyCell(2, row.Period),
			bodyCell(2, fmt.Sprintf("%d", row.Issued)),
			bodyCell(2, money(row.Revenue)),
			bodyCell(2, money(row.Income)),
			bodyCell(2, money(row.Outcome)),
			bodyCell(2, money(row.Net)),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("генерация PDF: %w", err)
	}
	return doc.GetBytes(), nil
}
