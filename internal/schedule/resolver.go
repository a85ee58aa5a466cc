package schedule

import (
	"fmt"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

// Window эффективное окно работы студии на конкретную дату
type Window struct {
	StartMinute   int
	EndMinute     int
	BufferMinutes int
}

// ResolveWindow определяет эффективное окно работы студии на дату YYYY-MM-DD.
// Возвращает (nil, nil), если студия в этот день закрыта.
//
// Приоритет источников (строго по убыванию):
//  1. Исключение для конкретной даты (праздник, особый график)
//  2. Правило для дня недели
//  3. Fallback-окно из конфигурации (только если правил по дням нет вообще)
//
// Если правила по дням недели настроены, но для вычисленного дня правила нет,
// день считается закрытым: молчаливый fallback на 09:00-18:00 показал бы
// слоты в день, который студия намеренно не настраивала.
func ResolveWindow(dateStr string, cfg *domain.ScheduleConfig) (*Window, error) {
	weekday, err := WeekdayOf(dateStr)
	if err != nil {
		return nil, err
	}

	buffer := cfg.BufferMinutes

	// 1. Исключение для конкретной даты
	if exc, ok := cfg.DateExceptions[dateStr]; ok {
		if exc.Closed {
			return nil, nil
		}
		if exc.OpenTime == nil || exc.CloseTime == nil {
			return nil, fmt.Errorf("%w: open date exception %s must have explicit open/close times", ErrInvalidConfig, dateStr)
		}
		return windowFromTimes(*exc.OpenTime, *exc.CloseTime, buffer)
	}

	// 2. Правило для дня недели
	if len(cfg.WeekdayRules) > 0 {
		rule, ok := cfg.WeekdayRuleFor(weekday)
		if !ok || rule.Closed {
			return nil, nil
		}
		return windowFromTimes(rule.OpenTime, rule.CloseTime, buffer)
	}

	// 3. Fallback-окно
	start, end := cfg.FallbackStartMinute, cfg.FallbackEndMinute
	if start == 0 && end == 0 {
		start, end = domain.DefaultOpenMinute, domain.DefaultCloseMinute
	}

	return &Window{
		StartMinute:   start,
		EndMinute:     end,
		BufferMinutes: buffer,
	}, nil
}

func windowFromTimes(openTime, closeTime string, buffer int) (*Window, error) {
	start, err := ParseTimeToMinutes(openTime)
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidConfig, err)
	}

	end, err := ParseTimeToMinutes(closeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidConfig, err)
	}

	return &Window{
		StartMinute:   start,
		EndMinute:     end,
		BufferMinutes: buffer,
	}, nil
}
