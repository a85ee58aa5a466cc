package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/internal/schedule"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientEmail == "" || !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: valid client email is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	startMinute, err := schedule.ParseTimeToMinutes(string(req.StartTime))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	// Сессии начинаются только на границе получаса
	if startMinute%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: start time must be aligned to %d minutes",
			ErrInvalidStartTime, domain.SlotStepMinutes)
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
