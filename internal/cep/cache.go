package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]models.Address
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]models.Address)}
}

func (m *MemoryCache) Get(_ context.Context, code string) (*models.Address, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	addr, ok := m.items[code]
	if !ok {
		return nil, nil
	}
	return &addr, nil
}

func (m *MemoryCache) Set(_ context.Context, code string, addr models.Address) error {
	m.mu.Lock()
	m.items[code] = addr
	m.mu.Unlock()
	return nil
}

const keyPrefix = "studio:cep:"

// RedisCache guarda os endereços sem TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, code string) (*models.Address, error) {
	raw, err := r.client.Get(ctx, keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var addr models.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return nil, fmt.Errorf("decode cached cep: %w", err)
	}
	return &addr, nil
}

func (r *RedisCache) Set(ctx context.Context, code string, addr models.Address) error {
	payload, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+code, payload, 0).Err()
}
