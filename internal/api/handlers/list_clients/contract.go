package list_clients

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/service/clients/models"
)

type ClientService interface {
	List(ctx context.Context) (*models.ClientListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
