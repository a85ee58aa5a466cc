package clients

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	UpdateCRM(ctx context.Context, id int64, preferences, notes *string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
