package schedule

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате (не YYYY-MM-DD)
	ErrInvalidDate = errors.New("schedule: invalid date string")

	// ErrInvalidTime возвращается при некорректной строке времени (не HH:MM)
	ErrInvalidTime = errors.New("schedule: invalid time string")

	// ErrInvalidConfig возвращается при некорректной конфигурации расписания
	// (например, открытое исключение без явных часов работы)
	ErrInvalidConfig = errors.New("schedule: invalid config")

	// ErrInvalidDuration возвращается при неположительной длительности сессии
	ErrInvalidDuration = errors.New("schedule: duration must be positive")
)
