package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

const (
	keyScheduleConfig = "settings:schedule"
	keySiteConfig     = "settings:site"
)

// SettingsCache read-through кэш настроек поверх репозитория.
// Расписание читается на каждый расчет слотов, меняется редко -
// кэширование с коротким TTL снимает основную нагрузку с БД.
// Ошибки redis не фатальны: кэш промахивается и идет в хранилище.
type SettingsCache struct {
	repo   SettingsRepo
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewSettingsCache создает кэширующую обертку над репозиторием настроек
func NewSettingsCache(repo SettingsRepo, client *redis.Client, ttl time.Duration, logger Logger) *SettingsCache {
	return &SettingsCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetScheduleConfig получает конфигурацию расписания, сперва из кэша
func (c *SettingsCache) GetScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error) {
	var cached domain.ScheduleConfig
	if c.getJSON(ctx, keyScheduleConfig, &cached) {
		return &cached, nil
	}

	cfg, err := c.repo.GetScheduleConfig(ctx)
	if err != nil {
		return nil, err
	}

	c.setJSON(ctx, keyScheduleConfig, cfg)
	return cfg, nil
}

// UpdateScheduleConfig сохраняет конфигурацию и сбрасывает кэш
func (c *SettingsCache) UpdateScheduleConfig(ctx context.Context, cfg *domain.ScheduleConfig) error {
	if err := c.repo.UpdateScheduleConfig(ctx, cfg); err != nil {
		return err
	}

	c.invalidate(ctx, keyScheduleConfig)
	return nil
}

// GetSiteConfig получает настройки сайта, сперва из кэша
func (c *SettingsCache) GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	var cached domain.SiteConfig
	if c.getJSON(ctx, keySiteConfig, &cached) {
		return &cached, nil
	}

	cfg, err := c.repo.GetSiteConfig(ctx)
	if err != nil {
		return nil, err
	}

	c.setJSON(ctx, keySiteConfig, cfg)
	return cfg, nil
}

// UpdateSiteConfig сохраняет настройки сайта и сбрасывает кэш
func (c *SettingsCache) UpdateSiteConfig(ctx context.Context, cfg *domain.SiteConfig) error {
	if err := c.repo.UpdateSiteConfig(ctx, cfg); err != nil {
		return err
	}

	c.invalidate(ctx, keySiteConfig)
	return nil
}

func (c *SettingsCache) getJSON(ctx context.Context, key string, dest interface{}) bool {
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

func (c *SettingsCache) setJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache: set %s failed: %v", key, err)
	}
}

func (c *SettingsCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("cache: invalidate %v failed: %v", keys, err)
	}
}
