package models

import (
	"errors"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования.
// ClientEmail пуст, если отменяет администратор студии.
type CancelBookingRequest struct {
	ClientEmail        string `json:"clientEmail"`
	ByStudio           bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateBookingRequest запрос на обновление бронирования администратором.
// Можно поменять статус, добавить заметки после сессии, или и то и другое.
type UpdateBookingRequest struct {
	Status       *string `json:"status,omitempty"`
	SessionNotes *string `json:"sessionNotes,omitempty"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientEmail string  `json:"clientEmail"`
	Status      *string `json:"status,omitempty"`
}

// GetStudioBookingsRequest запрос на получение бронирований студии
type GetStudioBookingsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStudioBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// RevenueReportRequest запрос отчета по выручке за период
type RevenueReportRequest struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientEmail     string  `json:"clientEmail"`
	ClientName      string  `json:"clientName"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`     // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`

	// Денормализованные данные услуги
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	SessionNotes *string `json:"sessionNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RevenueDayEntry выручка за один день периода
type RevenueDayEntry struct {
	Date     string  `json:"date"` // "2025-10-15"
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// RevenueMonthEntry выручка за один месяц периода
type RevenueMonthEntry struct {
	Month    string  `json:"month"` // "2025-10"
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// RevenueReportResponse отчет по выручке: итог и разбивка по дням и месяцам.
// Учитываются только подтвержденные и завершенные сессии.
type RevenueReportResponse struct {
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
	TotalBookings int                 `json:"totalBookings"`
	TotalRevenue  float64             `json:"totalRevenue"`
	ByDay         []RevenueDayEntry   `json:"byDay"`
	ByMonth       []RevenueMonthEntry `json:"byMonth"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientEmail:        b.ClientEmail,
		ClientName:         b.ClientName,
		ClientPhone:        b.ClientPhone,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		SessionNotes:       b.SessionNotes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByStudio,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
