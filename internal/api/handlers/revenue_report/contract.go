package revenue_report

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	RevenueReport(ctx context.Context, req *models.RevenueReportRequest) (*models.RevenueReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
