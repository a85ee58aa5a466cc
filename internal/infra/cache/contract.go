package cache

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SettingsRepo контракт хранилища настроек, которое оборачивает кэш
type SettingsRepo interface {
	GetScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error)
	UpdateScheduleConfig(ctx context.Context, cfg *domain.ScheduleConfig) error
	GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error)
	UpdateSiteConfig(ctx context.Context, cfg *domain.SiteConfig) error
}

// CatalogRepo контракт хранилища каталога услуг, которое оборачивает кэш
type CatalogRepo interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Deactivate(ctx context.Context, id int64) error
}
