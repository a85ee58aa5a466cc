package domain

import (
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByStudio BookingStatus = "cancelled_by_studio"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking бронирование сессии массажа
type Booking struct {
	ID              int64
	ClientEmail     string
	ClientName      string
	ClientPhone     *string
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Денормализованные данные услуги для истории
	// (цена и название на момент бронирования)
	ServiceName  string
	ServicePrice float64

	// Заметки мастера после сессии (CRM)
	SessionNotes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает свой слот
// (не отменено и не no-show)
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByStudio &&
		b.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByStudio
}

// IsCompleted возвращает true, если сессия состоялась или клиент не пришел
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CountsTowardsRevenue возвращает true, если бронирование учитывается
// в отчете по выручке (подтвержденные и завершенные сессии)
func (b *Booking) CountsTowardsRevenue() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// OccupiedInterval занятый интервал времени на дату (в минутах с начала суток).
// Длительность услуги уже включена, буфер между сессиями - нет.
type OccupiedInterval struct {
	StartMinute int
	EndMinute   int
}

// OccupiedInterval возвращает интервал, занятый бронированием
func (b *Booking) OccupiedInterval() OccupiedInterval {
	start := b.StartTime.Minutes()
	return OccupiedInterval{
		StartMinute: start,
		EndMinute:   start + b.DurationMinutes,
	}
}

// BookingsFilter фильтр для получения бронирований студии
type BookingsFilter struct {
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
