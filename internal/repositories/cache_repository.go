package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кеш страниц списков. Помимо обычных Get/Set
// умеет сбрасывать целый неймспейс ресурса: инвалидация у нас грубая,
// любая мутация ресурса выбрасывает все его закешированные страницы.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	InvalidateNamespace(ctx context.Context, resource string) error
}
