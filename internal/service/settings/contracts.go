package settings

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// SettingsRepository интерфейс хранилища настроек.
// Под него подходят и репозиторий напрямую, и redis-обертка над ним.
type SettingsRepository interface {
	GetScheduleConfig(ctx context.Context) (*domain.ScheduleConfig, error)
	UpdateScheduleConfig(ctx context.Context, cfg *domain.ScheduleConfig) error
	GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error)
	UpdateSiteConfig(ctx context.Context, cfg *domain.SiteConfig) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
