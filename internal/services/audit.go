package services

import (
	"context"

	"repair-crm/pkg/constants"
	"repair-crm/pkg/eventbus"

	"go.uber.org/zap"
)

// RegisterAuditListener пишет в лог каждую мутацию ресурсов CMS,
// прошедшую через шлюз. Подписывается на все известные ресурсы.
func RegisterAuditListener(bus *eventbus.Bus, logger *zap.Logger) {
	resources := []string{
		constants.ResourceOrders,
		constants.ResourceClients,
		constants.ResourceUsers,
		constants.ResourceIncomes,
		constants.ResourceOutcomes,
		constants.ResourceManualIO,
		constants.ResourceCashbox,
		constants.ResourceCashTransactions,
		constants.ResourceSetting,
	}

	listener := func(ctx context.Context, event eventbus.Event) error {
		changed, ok := event.(eventbus.ResourceChanged)
		if !ok {
			return nil
		}
		logger.Info("Аудит: ресурс изменён",
			zap.String("resource", changed.Resource),
			zap.String("document_id", changed.DocumentID),
			zap.String("action", changed.Action),
		)
		return nil
	}

	for _, resource := range resources {
		bus.Subscribe(eventbus.ResourceChanged{Resource: resource}.Name(), listener)
	}
}
