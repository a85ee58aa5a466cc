package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	serviceRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/service"
	"github.com/lotos-studio/LOTOS-BookingService/internal/schedule"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	clientRepo       ClientRepository
	scheduleProvider ScheduleProvider
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	clientRepo ClientRepository,
	scheduleProvider ScheduleProvider,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		clientRepo:       clientRepo,
		scheduleProvider: scheduleProvider,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Доступность слота перепроверяется внутри сериализуемой транзакции
// с блокировкой бронирований дня (FOR UPDATE) - снимок, по которому
// клиент выбирал слот, к этому моменту мог устареть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, service=%d, date=%s, time=%s",
		req.ClientEmail, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата должна быть корректной и не в прошлом
	if err := validateDateNotInPast(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed for %s: %v", req.Date, err)
		return nil, err
	}

	// 3. Получаем услугу - длительность и денормализуемые данные
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("CreateBooking: service id=%d is not bookable", req.ServiceID)
		return nil, ErrServiceNotBookable
	}

	startMinute, err := schedule.ParseTimeToMinutes(string(req.StartTime))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}

	var result *domain.Booking

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем конфигурацию расписания
		cfg, err := uc.scheduleProvider.GetScheduleConfig(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// 4.2. Определяем окно работы на дату
		window, err := schedule.ResolveWindow(req.Date, cfg)
		if err != nil {
			if errors.Is(err, schedule.ErrInvalidDate) {
				return ErrInvalidDate
			}
			uc.logger.Error("CreateBooking: failed to resolve window for %s: %v", req.Date, err)
			return fmt.Errorf("%w: failed to resolve window: %v", ErrInternal, err)
		}

		if window == nil {
			uc.logger.Warn("CreateBooking: studio is closed on %s", req.Date)
			return ErrStudioClosed
		}

		// 4.3. Получаем активные бронирования дня с блокировкой (FOR UPDATE)
		date, err := time.Parse(domain.DateFormat, req.Date)
		if err != nil {
			return ErrInvalidDate
		}

		filter := domain.BookingsFilter{
			StartDate:       &date,
			EndDate:         &date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		occupied := make([]domain.OccupiedInterval, 0, len(bookings))
		for _, b := range bookings {
			if b.IsActive() {
				occupied = append(occupied, b.OccupiedInterval())
			}
		}

		// 4.4. Проверяем, что запрошенное время среди доступных слотов
		slots, err := schedule.GenerateSlots(window, service.DurationMinutes, occupied)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		if !containsSlot(slots, startMinute) {
			uc.logger.Warn("CreateBooking: slot %s is not available on %s", req.StartTime, req.Date)
			return ErrSlotNotAvailable
		}

		// 4.5. Пополняем клиентскую базу
		client := &domain.Client{
			Email: req.ClientEmail,
			Name:  strings.TrimSpace(req.ClientName),
			Phone: req.ClientPhone,
		}
		if _, err := uc.clientRepo.Upsert(txCtx, client); err != nil {
			uc.logger.Error("CreateBooking: failed to upsert client %s: %v", req.ClientEmail, err)
			return fmt.Errorf("%w: failed to upsert client: %v", ErrInternal, err)
		}

		// 4.6. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ClientEmail:     req.ClientEmail,
			ClientName:      strings.TrimSpace(req.ClientName),
			ClientPhone:     req.ClientPhone,
			ServiceID:       req.ServiceID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			EndTime:         types.TimeString(schedule.FormatMinutes(startMinute + service.DurationMinutes)),
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientEmail:     result.ClientEmail,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate.Format(domain.DateFormat),
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// containsSlot проверяет, что минута входит в список слотов
func containsSlot(slots []int, minute int) bool {
	for _, slot := range slots {
		if slot == minute {
			return true
		}
	}
	return false
}
