package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

const (
	keyCatalogActive = "catalog:services:active"
	keyCatalogAll    = "catalog:services:all"
	keyServiceFmt    = "catalog:service:%d"
)

// CatalogCache read-through кэш каталога услуг поверх репозитория.
// Любая запись в каталог сбрасывает списки и запись услуги целиком -
// каталог маленький, выборочная инвалидация не окупается.
type CatalogCache struct {
	repo   CatalogRepo
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCatalogCache создает кэширующую обертку над репозиторием услуг
func NewCatalogCache(repo CatalogRepo, client *redis.Client, ttl time.Duration, logger Logger) *CatalogCache {
	return &CatalogCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Create создает услугу и сбрасывает кэш списков
func (c *CatalogCache) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	created, err := c.repo.Create(ctx, service)
	if err != nil {
		return nil, err
	}

	c.invalidate(ctx, keyCatalogActive, keyCatalogAll)
	return created, nil
}

// GetByID получает услугу по ID, сперва из кэша
func (c *CatalogCache) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	key := fmt.Sprintf(keyServiceFmt, id)

	var cached domain.Service
	if c.getJSON(ctx, key, &cached) {
		return &cached, nil
	}

	service, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.setJSON(ctx, key, service)
	return service, nil
}

// List получает список услуг, сперва из кэша
func (c *CatalogCache) List(ctx context.Context, includeInactive bool) ([]*domain.Service, error) {
	key := keyCatalogActive
	if includeInactive {
		key = keyCatalogAll
	}

	var cached []*domain.Service
	if c.getJSON(ctx, key, &cached) {
		return cached, nil
	}

	services, err := c.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}

	c.setJSON(ctx, key, services)
	return services, nil
}

// Update обновляет услугу и сбрасывает кэш
func (c *CatalogCache) Update(ctx context.Context, service *domain.Service) error {
	if err := c.repo.Update(ctx, service); err != nil {
		return err
	}

	c.invalidate(ctx, keyCatalogActive, keyCatalogAll, fmt.Sprintf(keyServiceFmt, service.ID))
	return nil
}

// Deactivate мягко удаляет услугу и сбрасывает кэш
func (c *CatalogCache) Deactivate(ctx context.Context, id int64) error {
	if err := c.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx, keyCatalogActive, keyCatalogAll, fmt.Sprintf(keyServiceFmt, id))
	return nil
}

func (c *CatalogCache) getJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("cache: get %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache: unmarshal %s failed: %v", key, err)
		return false
	}

	return true
}

func (c *CatalogCache) setJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set %s failed: %v", key, err)
	}
}

func (c *CatalogCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache: invalidate %v failed: %v", keys, err)
	}
}
