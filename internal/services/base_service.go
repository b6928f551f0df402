package services

import (
	"context"

	"repair-crm/internal/repositories"
	"repair-crm/pkg/eventbus"

	"go.uber.org/zap"
)

// invalidateAndPublish сбрасывает кеш ресурса и извещает шину о мутации.
// Инвалидация синхронная: следующий же запрос списка должен уйти в CMS.
func invalidateAndPublish(
	ctx context.Context,
	cache repositories.CacheRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
	resource, documentID, action string,
) {
	if err := cache.InvalidateNamespace(ctx, resource); err != nil {
		logger.Warn("Не удалось сбросить кеш ресурса",
			zap.String("resource", resource),
			zap.Error(err),
		)
	}
	bus.Publish(ctx, eventbus.ResourceChanged{
		Resource:   resource,
		DocumentID: documentID,
		Action:     action,
	})
}
