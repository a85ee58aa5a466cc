package catalog

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг.
// Под него подходят и репозиторий напрямую, и redis-обертка над ним.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Deactivate(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
