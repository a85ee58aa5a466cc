package update_booking

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) error
	GetByID(ctx context.Context, id int64, clientEmail string, isAdmin bool) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
