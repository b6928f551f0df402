package services

import (
	"context"
	"sort"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	"repair-crm/pkg/types"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	MasterReport(ctx context.Context, period entities.ReportPeriod) ([]entities.MasterReportRow, error)
	ServiceReport(ctx context.Context, period entities.ReportPeriod) ([]entities.ServiceReportRow, error)
}

type reportService struct {
	orders OrderServiceInterface
	users  UserServiceInterface
	ledger LedgerServiceInterface
	logger *zap.Logger
}

func NewReportService(
	orders OrderServiceInterface,
	users UserServiceInterface,
	ledger LedgerServiceInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{orders: orders, users: users, ledger: ledger, logger: logger}
}

// issuedOrdersFilter - выданные заявки за период, по дате выдачи.
func issuedOrdersFilter(period entities.ReportPeriod) types.Filter {
	filter := periodFilter(period)
	filter.Filter = map[string]string{
		"orderStatus": constants.StatusIssued,
		"date_field":  "date_of_issue",
	}
	return filter
}

// MasterReport - свод по каждому мастеру: выданные заявки, выручка,
// утверждённые доходы/расходы и ручные проводки за период.
func (s *reportService) MasterReport(ctx context.Context, period entities.ReportPeriod) ([]entities.MasterReportRow, error) {
	masters, _, err := s.users.GetMasters(ctx)
	if err != nil {
		return nil, err
	}

	orders, _, err := s.orders.GetAllOrders(ctx, issuedOrdersFilter(period))
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetAllLedger(ctx, periodFilter(period))
	if err != nil {
		return nil, err
	}

	rows := make(map[uint64]*entities.MasterReportRow, len(masters))
	for _, master := range masters {
		rows[master.ID] = &entities.MasterReportRow{
			MasterID:   master.ID,
			MasterName: master.Name,
			Balance:    master.Balance,
		}
	}

	for _, order := range orders {
		if order.Master == nil {
			continue
		}
		row, ok := rows[order.Master.ID]
		if !ok {
			continue
		}
		row.OrdersIssued++
		row.Revenue += ParseDecimal(order.TotalCost)
	}

	for _, entry := range entries {
		if !entry.IsApproved || entry.User == nil {
			continue
		}
		row, ok := rows[entry.User.ID]
		if !ok {
			continue
		}
		if entry.Type == constants.LedgerTypeOutcome {
			row.Outcome += entry.Count
		} else {
			row.Income += entry.Count
		}
		// Ручные проводки не привязаны к заявке (оплата смены и т.п.).
		if entry.Order == nil {
			row.ManualIO += entry.SignedAmount()
		}
	}

	result := make([]entities.MasterReportRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MasterName < result[j].MasterName
	})
	return result, nil
}

// ServiceReport - помесячный свод сервиса: выдачи, выручка, доходы,
// расходы и сальдо.
func (s *reportService) ServiceReport(ctx context.Context, period entities.ReportPeriod) ([]entities.ServiceReportRow, error) {
	orders, _, err := s.orders.GetAllOrders(ctx, issuedOrdersFilter(period))
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetAllLedger(ctx, periodFilter(period))
	if err != nil {
		return nil, err
	}

	const monthLayout = "01.2006"
	buckets := make(map[string]*entities.ServiceReportRow)
	bucket := func(key string) *entities.ServiceReportRow {
		if row, ok := buckets[key]; ok {
			return row
		}
		row := &entities.ServiceReportRow{Period: key}
		buckets[key] = row
		return row
	}

	for _, order := range orders {
		if !order.DateOfIssue.Valid {
			continue
		}
		row := bucket(order.DateOfIssue.Time.Format(monthLayout))
		row.Issued++
		row.Revenue += ParseDecimal(order.TotalCost)
	}

	for _, entry := range entries {
		if !entry.IsApproved {
			continue
		}
		row := bucket(entry.EffectiveDate().Format(monthLayout))
		if entry.Type == constants.LedgerTypeOutcome {
			row.Outcome += entry.Count
		} else {
			row.Income += entry.Count
		}
	}

	result := make([]entities.ServiceReportRow, 0, len(buckets))
	for _, row := range buckets {
		row.Net = row.Income - row.Outcome
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return periodSortKey(result[i].Period) < periodSortKey(result[j].Period)
	})
	return result, nil
}

// periodSortKey переводит "01.2006" в "2006.01" для хронологической
// сортировки строк.
func periodSortKey(period string) string {
	if len(period) != 7 {
		return period
	}
	return period[3:] + "." + period[:2]
}
