package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPage(total uint64, values ...int) Page[int] {
	return Page[int]{Items: values, Total: total}
}

func TestFetchAllCollectsEveryPage(t *testing.T) {
	// 250 элементов по 100 на страницу: первая отдана, две дозагружаются.
	var fetched int32
	first := intPage(250, makeRange(0, 100)...)

	items, total, err := FetchAll(context.Background(), 100, first, func(ctx context.Context, page int) (Page[int], error) {
		atomic.AddInt32(&fetched, 1)
		switch page {
		case 2:
			return intPage(250, makeRange(100, 100)...), nil
		case 3:
			return intPage(250, makeRange(200, 50)...), nil
		}
		t.Fatalf("неожиданная страница %d", page)
		return Page[int]{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(250), total)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetched))
	require.Len(t, items, 250)
	assert.Equal(t, makeRange(0, 250), items)
}

func TestFetchAllPreservesOrderUnderConcurrency(t *testing.T) {
	// Страницы завершаются в обратном порядке - итог всё равно по номерам.
	first := intPage(50, makeRange(0, 10)...)

	items, _, err := FetchAll(context.Background(), 10, first, func(ctx context.Context, page int) (Page[int], error) {
		// Чем меньше номер, тем дольше ответ.
		time.Sleep(time.Duration(6-page) * 10 * time.Millisecond)
		return intPage(50, makeRange((page-1)*10, 10)...), nil
	})

	require.NoError(t, err)
	assert.Equal(t, makeRange(0, 50), items)
}

func TestFetchAllSinglePageShortCircuit(t *testing.T) {
	first := intPage(7, makeRange(0, 7)...)

	items, total, err := FetchAll(context.Background(), 25, first, func(ctx context.Context, page int) (Page[int], error) {
		t.Fatal("дозагрузка не должна вызываться для одной страницы")
		return Page[int]{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(7), total)
	assert.Equal(t, makeRange(0, 7), items)
}

func TestFetchAllEmptyCollection(t *testing.T) {
	items, total, err := FetchAll(context.Background(), 25, intPage(0), func(ctx context.Context, page int) (Page[int], error) {
		t.Fatal("дозагрузка не должна вызываться для пустой выборки")
		return Page[int]{}, nil
	})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestFetchAllFirstErrorFailsWhole(t *testing.T) {
	boom := errors.New("страница 3 сломалась")
	first := intPage(100, makeRange(0, 25)...)

	items, _, err := FetchAll(context.Background(), 25, first, func(ctx context.Context, page int) (Page[int], error) {
		if page == 3 {
			return Page[int]{}, boom
		}
		// Остальные страницы должны видеть отмену рано или поздно.
		select {
		case <-ctx.Done():
			return Page[int]{}, ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return intPage(100, makeRange((page-1)*25, 25)...), nil
		}
	})

	require.Error(t, err)
	assert.Nil(t, items)
}

func TestFetchAllCapsPageFanOut(t *testing.T) {
	var maxPage int32
	first := intPage(100000, makeRange(0, 100)...)

	_, _, err := FetchAll(context.Background(), 100, first, func(ctx context.Context, page int) (Page[int], error) {
		for {
			current := atomic.LoadInt32(&maxPage)
			if int32(page) <= current || atomic.CompareAndSwapInt32(&maxPage, current, int32(page)) {
				break
			}
		}
		return intPage(100000, makeRange((page-1)*100, 100)...), nil
	})

	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxPage), int32(50))
}

func makeRange(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
