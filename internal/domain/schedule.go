package domain

// WeekdayRule правило работы студии для одного дня недели.
// Weekday: 0=воскресенье .. 6=суббота.
type WeekdayRule struct {
	Weekday   int
	OpenTime  string // "09:00"
	CloseTime string // "18:00"
	Closed    bool
}

// DateException исключение из недельного расписания для конкретной даты
// (праздник или особый график). Имеет приоритет над правилом дня недели.
type DateException struct {
	Date      string // "YYYY-MM-DD"
	Closed    bool
	OpenTime  *string // Обязательны, если Closed=false
	CloseTime *string
}

// ScheduleConfig конфигурация расписания работы студии.
// Владелец данных - хранилище настроек; для расчета слотов конфигурация
// только читается.
type ScheduleConfig struct {
	// Минимальный перерыв между сессиями в минутах
	// (уборка кабинета, смена белья)
	BufferMinutes int

	// Fallback-окно на случай, когда правила по дням недели не настроены
	FallbackStartMinute int
	FallbackEndMinute   int

	// Правила по дням недели (0=воскресенье .. 6=суббота)
	WeekdayRules []WeekdayRule

	// Исключения по датам, ключ - "YYYY-MM-DD"
	DateExceptions map[string]DateException
}

// WeekdayRuleFor возвращает правило для дня недели (0=воскресенье .. 6=суббота)
func (c *ScheduleConfig) WeekdayRuleFor(weekday int) (WeekdayRule, bool) {
	for _, rule := range c.WeekdayRules {
		if rule.Weekday == weekday {
			return rule, true
		}
	}
	return WeekdayRule{}, false
}

// DefaultScheduleConfig возвращает конфигурацию по умолчанию:
// все 7 дней 09:00-18:00, буфер 15 минут, без исключений
func DefaultScheduleConfig() *ScheduleConfig {
	rules := make([]WeekdayRule, 0, 7)
	for wd := 0; wd < 7; wd++ {
		rules = append(rules, WeekdayRule{
			Weekday:   wd,
			OpenTime:  DefaultOpenTime,
			CloseTime: DefaultCloseTime,
			Closed:    false,
		})
	}

	return &ScheduleConfig{
		BufferMinutes:       DefaultBufferMinutes,
		FallbackStartMinute: DefaultOpenMinute,
		FallbackEndMinute:   DefaultCloseMinute,
		WeekdayRules:        rules,
		DateExceptions:      map[string]DateException{},
	}
}

// SiteConfig общие настройки студии (название, контакты)
type SiteConfig struct {
	StudioName string
	Email      string
	Phone      string
}
