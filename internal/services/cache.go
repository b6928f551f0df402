package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"repair-crm/internal/repositories"
)

// cachedList - сериализованная форма страницы в Redis.
type cachedList[T any] struct {
	List  []T    `json:"list"`
	Total uint64 `json:"total"`
}

// pageCacheKey строит ключ страницы. query уже каноничен (см. strapi.Query),
// поэтому структурно равные фильтры всегда попадают в один ключ.
func pageCacheKey(resource string, page, pageSize int, query string) string {
	return fmt.Sprintf("cache:%s:page:%d:%d:%s", resource, page, pageSize, query)
}

// lookupPage пытается достать страницу из кеша. Любая ошибка кеша
// трактуется как промах: Redis не должен ронять чтение из CMS.
func lookupPage[T any](ctx context.Context, cache repositories.CacheRepositoryInterface, key string) (Page[T], bool) {
	raw, err := cache.Get(ctx, key)
	if err != nil || raw == "" {
		return Page[T]{}, false
	}
	var cached cachedList[T]
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return Page[T]{}, false
	}
	return Page[T]{Items: cached.List, Total: cached.Total}, true
}

// storePage кладёт страницу в кеш. Ошибка записи только логируется выше
// по стеку: кеш вспомогательный, данные и так уже получены.
func storePage[T any](ctx context.Context, cache repositories.CacheRepositoryInterface, key string, page Page[T], ttl time.Duration) error {
	payload, err := json.Marshal(cachedList[T]{List: page.Items, Total: page.Total})
	if err != nil {
		return err
	}
	return cache.Set(ctx, key, string(payload), ttl)
}
