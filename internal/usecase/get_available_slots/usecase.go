package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	serviceRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/service"
	"github.com/lotos-studio/LOTOS-BookingService/internal/schedule"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	scheduleProvider ScheduleProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	scheduleProvider ScheduleProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		scheduleProvider: scheduleProvider,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата должна быть корректной и не в прошлом
	if err := validateDateNotInPast(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed for %s: %v", req.Date, err)
		return nil, err
	}

	// 3. Получаем услугу - нужна длительность сессии
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	// 4. Получаем конфигурацию расписания
	cfg, err := uc.scheduleProvider.GetScheduleConfig(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// 5. Собираем занятые интервалы по активным бронированиям на дату
	occupied, err := uc.occupiedIntervals(ctx, req.Date)
	if err != nil {
		return nil, err
	}

	// 6. Считаем доступные слоты
	slots, err := schedule.ComputeAvailableSlots(req.Date, service.DurationMinutes, occupied, cfg)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidDate) {
			uc.logger.Warn("GetAvailableSlots: invalid date %s", req.Date)
			return nil, ErrInvalidDate
		}
		uc.logger.Error("GetAvailableSlots: slot computation failed: %v", err)
		return nil, fmt.Errorf("%w: slot computation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%d, date=%s", len(slots), req.ServiceID, req.Date)

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// occupiedIntervals возвращает занятые интервалы активных бронирований на дату
func (uc *UseCase) occupiedIntervals(ctx context.Context, dateStr string) ([]domain.OccupiedInterval, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	filter := domain.BookingsFilter{
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	occupied := make([]domain.OccupiedInterval, 0, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			occupied = append(occupied, booking.OccupiedInterval())
		}
	}

	return occupied, nil
}
