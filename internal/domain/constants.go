package domain

// Default schedule values
const (
	DefaultOpenTime    = "09:00"
	DefaultCloseTime   = "18:00"
	DefaultOpenMinute  = 9 * 60  // 09:00
	DefaultCloseMinute = 18 * 60 // 18:00

	// Буфер между сессиями по умолчанию (уборка кабинета)
	DefaultBufferMinutes = 15

	// Длительность сессии по умолчанию
	DefaultSessionMinutes = 60

	// Шаг сетки слотов: новые сессии начинаются только на границе получаса,
	// чтобы список предлагаемых слотов оставался обозримым
	SlotStepMinutes = 30
)

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 240 // 4 часа

	MinBufferMinutes = 0
	MaxBufferMinutes = 120

	MinutesPerDay = 24 * 60

	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы бронирований, не занимающих слот.
// Используются при расчете занятых интервалов.
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByStudio,
	StatusNoShow,
}

// ActiveStatuses статусы активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
