package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// ParseTimeToMinutes конвертирует "HH:MM" в минуты с начала суток
func ParseTimeToMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	if h < 0 || h > 24 || m < 0 || m > 59 || h*60+m > domain.MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return h*60 + m, nil
}

// FormatMinutes конвертирует минуты с начала суток в "HH:MM" (24-часовой формат)
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WeekdayOf возвращает день недели даты YYYY-MM-DD (0=воскресенье .. 6=суббота).
// Дата привязывается к полудню локального времени, чтобы переходы
// на летнее время и границы UTC/локального дня не сдвигали день недели.
func WeekdayOf(dateStr string) (int, error) {
	parsed, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}

	noon := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.Local)
	return int(noon.Weekday()), nil
}
