package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	bookingRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/booking"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования; для администратора
// передается isAdmin=true и проверка пропускается.
func (s *Service) GetByID(ctx context.Context, id int64, clientEmail string, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for client=%s", id, clientEmail)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.ClientEmail != clientEmail {
		s.logger.Warn("GetByID: access denied for client=%s to booking id=%d", clientEmail, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%s, status=%v", req.ClientEmail, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%s", *req.Status, req.ClientEmail)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientEmail(ctx, req.ClientEmail, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%s: %v", req.ClientEmail, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%s", len(bookings), req.ClientEmail)
	return models.FromDomainBookingList(bookings), nil
}

// GetStudioBookings получает бронирования студии с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
// Доступно только администратору
//
// Примеры использования:
// - Все активные бронирования: GetStudioBookings(ctx, &GetStudioBookingsRequest{})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetStudioBookings(ctx context.Context, req *models.GetStudioBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "GetStudioBookings: fetching studio bookings"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStudioBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStudioBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только свое бронирование (cancelled_by_client)
// Администратор может отменить любое бронирование (cancelled_by_studio)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d, byStudio=%t", bookingID, req.ByStudio)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var cancelStatus domain.BookingStatus
	if req.ByStudio {
		cancelStatus = domain.StatusCancelledByStudio
	} else {
		if booking.ClientEmail != req.ClientEmail {
			s.logger.Warn("Cancel: access denied for client=%s to cancel booking id=%d", req.ClientEmail, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByClient
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// Update обновляет бронирование администратором:
// статус, заметки после сессии, или и то и другое
func (s *Service) Update(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) error {
	s.logger.Info("Update: updating booking id=%d", bookingID)

	if req.Status == nil && req.SessionNotes == nil {
		s.logger.Warn("Update: empty update request for booking id=%d", bookingID)
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Status != nil {
		newStatus, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for booking id=%d", *req.Status, bookingID)
			return fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			s.logger.Error("Update: failed to update status for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.SessionNotes != nil {
		if err := s.bookingRepo.UpdateSessionNotes(ctx, bookingID, *req.SessionNotes); err != nil {
			s.logger.Error("Update: failed to update session notes for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated booking id=%d", bookingID)
	return nil
}

// RevenueReport строит отчет по выручке за период.
// Учитываются только подтвержденные и завершенные сессии;
// разбивка по дням и по месяцам считается в памяти по выборке за период.
func (s *Service) RevenueReport(ctx context.Context, req *models.RevenueReportRequest) (*models.RevenueReportResponse, error) {
	s.logger.Info("RevenueReport: building report for period=%s to %s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.EndDate.Before(req.StartDate) {
		s.logger.Warn("RevenueReport: end date before start date")
		return nil, ErrInvalidPeriod
	}

	filter := domain.BookingsFilter{
		StartDate:       &req.StartDate,
		EndDate:         &req.EndDate,
		IncludeInactive: true,
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("RevenueReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: RevenueReport - repository error: %v", ErrInternal, err)
	}

	report := &models.RevenueReportResponse{
		StartDate: req.StartDate.Format(domain.DateFormat),
		EndDate:   req.EndDate.Format(domain.DateFormat),
		ByDay:     []models.RevenueDayEntry{},
		ByMonth:   []models.RevenueMonthEntry{},
	}

	byDay := make(map[string]*models.RevenueDayEntry)
	byMonth := make(map[string]*models.RevenueMonthEntry)

	for _, booking := range bookings {
		if !booking.CountsTowardsRevenue() {
			continue
		}

		report.TotalBookings++
		report.TotalRevenue += booking.ServicePrice

		day := booking.BookingDate.Format(domain.DateFormat)
		if entry, ok := byDay[day]; ok {
			entry.Bookings++
			entry.Revenue += booking.ServicePrice
		} else {
			byDay[day] = &models.RevenueDayEntry{Date: day, Bookings: 1, Revenue: booking.ServicePrice}
		}

		month := booking.BookingDate.Format("2006-01")
		if entry, ok := byMonth[month]; ok {
			entry.Bookings++
			entry.Revenue += booking.ServicePrice
		} else {
			byMonth[month] = &models.RevenueMonthEntry{Month: month, Bookings: 1, Revenue: booking.ServicePrice}
		}
	}

	for _, entry := range byDay {
		report.ByDay = append(report.ByDay, *entry)
	}
	for _, entry := range byMonth {
		report.ByMonth = append(report.ByMonth, *entry)
	}

	sort.Slice(report.ByDay, func(i, j int) bool {
		return report.ByDay[i].Date < report.ByDay[j].Date
	})
	sort.Slice(report.ByMonth, func(i, j int) bool {
		return report.ByMonth[i].Month < report.ByMonth[j].Month
	})

	s.logger.Info("RevenueReport: report ready, bookings=%d, revenue=%.2f",
		report.TotalBookings, report.TotalRevenue)
	return report, nil
}
