package get_available_slots

import (
	"fmt"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDateNotInPast проверяет, что дата не прошла.
// Сегодняшний день разрешен целиком.
func validateDateNotInPast(dateStr string, now time.Time) error {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, now.Location())
	if err != nil {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return ErrDateInPast
	}

	return nil
}
