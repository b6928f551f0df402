package services

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Page - одна страница списочного ответа CMS.
type Page[T any] struct {
	Items []T
	Total uint64
}

// Жёсткий потолок на число страниц в одной агрегации - защита от лавины
// параллельных запросов к CMS на очень больших выборках.
const maxAggregatePages = 50

// FetchAll собирает полную коллекцию из постраничного ресурса: по первой
// странице считает число оставшихся и запрашивает их параллельно.
//
// Порядок результата - страница 1, затем страницы по возрастанию номера;
// внутри страницы сохраняется сортировка сервера. Количество страниц
// фиксируется по total первой страницы: если total меняется конкурентной
// записью во время сбора, пересчёта на лету нет и выборка может разойтись
// с новым total.
//
// Первая же ошибка отменяет остальные запросы и роняет агрегацию целиком.
func FetchAll[T any](ctx context.Context, pageSize int, first Page[T], fetch func(ctx context.Context, page int) (Page[T], error)) ([]T, uint64, error) {
	total := first.Total
	if pageSize <= 0 {
		return first.Items, total, nil
	}

	pages := int((total + uint64(pageSize) - 1) / uint64(pageSize))
	if pages <= 1 {
		return first.Items, total, nil
	}
	if pages > maxAggregatePages {
		pages = maxAggregatePages
	}

	rest := make([][]T, pages-1)
	g, gctx := errgroup.WithContext(ctx)
	for p := 2; p <= pages; p++ {
		idx, page := p-2, p
		g.Go(func() error {
			res, err := fetch(gctx, page)
			if err != nil {
				return err
			}
			rest[idx] = res.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, total)
	items = append(items, first.Items...)
	for _, chunk := range rest {
		items = append(items, chunk...)
	}
	return items, total, nil
}
