package create_booking

import (
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientEmail string           // Email клиента (из заголовка аутентификации)
	ClientName  string           // Имя клиента
	ClientPhone *string          // Телефон клиента (опционально)
	ServiceID   int64            // ID услуги
	Date        string           // Дата бронирования "YYYY-MM-DD"
	StartTime   types.TimeString // Время начала сессии, например "10:00"
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            `json:"id"`
	ClientEmail     string           `json:"clientEmail"`
	ServiceID       int64            `json:"serviceId"`
	BookingDate     string           `json:"bookingDate"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
