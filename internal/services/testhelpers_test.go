package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"repair-crm/pkg/contextkeys"
	"repair-crm/pkg/eventbus"

	"go.uber.org/zap"
)

func testCtx() context.Context {
	return context.WithValue(context.Background(), contextkeys.TokenKey, "test-token")
}

func testBus() *eventbus.Bus {
	return eventbus.New(zap.NewNop())
}

// fakeCache - кеш в памяти с той же семантикой неймспейсов, что у Redis.
type fakeCache struct {
	mu    sync.Mutex
	store map[string]string

	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.store[key]
	if !ok {
		return "", fmt.Errorf("ключ не найден: %s", key)
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.store, key)
	}
	return nil
}

func (c *fakeCache) InvalidateNamespace(ctx context.Context, resource string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := "cache:" + resource + ":"
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			delete(c.store, key)
		}
	}
	c.invalidated = append(c.invalidated, resource)
	return nil
}

func (c *fakeCache) invalidatedResources() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}
