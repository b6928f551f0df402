package services

import (
	"context"
	"strconv"
	"time"

	"repair-crm/internal/entities"
	"repair-crm/pkg/constants"
	"repair-crm/pkg/types"
	"repair-crm/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type StatsServiceInterface interface {
	GetTiles(ctx context.Context, period entities.ReportPeriod) (*entities.StatsTiles, error)
}

// statsService считает плитки дашборда поверх полных агрегированных
// выборок. Раньше каждая плитка собирала страницы сама - теперь всё
// ходит через общий агрегатор.
type statsService struct {
	orders OrderServiceInterface
	ledger LedgerServiceInterface
	logger *zap.Logger
}

func NewStatsService(orders OrderServiceInterface, ledger LedgerServiceInterface, logger *zap.Logger) StatsServiceInterface {
	return &statsService{orders: orders, ledger: ledger, logger: logger}
}

func periodFilter(period entities.ReportPeriod) types.Filter {
	filter := types.Filter{
		Page:  1,
		Limit: utils.MaxLimit,
	}
	if !period.From.IsZero() {
		filter.DateFrom = period.From.Format(time.RFC3339)
	}
	if !period.To.IsZero() {
		filter.DateTo = period.To.Format(time.RFC3339)
	}
	return filter
}

func (s *statsService) GetTiles(ctx context.Context, period entities.ReportPeriod) (*entities.StatsTiles, error) {
	orders, total, err := s.orders.GetAllOrders(ctx, periodFilter(period))
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetAllLedger(ctx, periodFilter(period))
	if err != nil {
		return nil, err
	}

	tiles := &entities.StatsTiles{
		OrdersTotal:    int(total),
		OrdersByStatus: make(map[string]int, len(constants.OrderStatuses)),
	}
	for _, status := range constants.OrderStatuses {
		tiles.OrdersByStatus[status] = 0
	}
	for _, order := range orders {
		tiles.OrdersByStatus[order.OrderStatus]++
	}

	for _, entry := range entries {
		if !entry.IsApproved {
			continue
		}
		if entry.Type == constants.LedgerTypeOutcome {
			tiles.OutcomeTotal += entry.Count
		} else {
			tiles.IncomeTotal += entry.Count
		}
	}
	tiles.Net = tiles.IncomeTotal - tiles.OutcomeTotal

	return tiles, nil
}

// ParseDecimal разбирает денежную строку CMS. Пустая или кривая строка
// считается нулём: в отчёте это честнее, чем уронить весь расчёт.
func ParseDecimal(value null.String) float64 {
	if !value.Valid || value.String == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value.String, 64)
	if err != nil {
		return 0
	}
	return parsed
}
