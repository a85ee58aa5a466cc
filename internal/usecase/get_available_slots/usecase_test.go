package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	serviceRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/service"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/ptr"
	"github.com/lotos-studio/LOTOS-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeScheduleProvider struct {
	cfg *domain.ScheduleConfig
	err error
}

func (f *fakeScheduleProvider) GetScheduleConfig(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.cfg, f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func bookableService(durationMinutes int) *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Классический массаж",
		DurationMinutes: durationMinutes,
		Price:           3500,
		Active:          true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, catalog *fakeCatalogRepo, schedule *fakeScheduleProvider) *UseCase {
	uc := NewUseCase(bookings, catalog, schedule, nopLogger{})
	// Фиксируем "сейчас" задолго до тестовых дат
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "09:00", resp.Slots[0])
	assert.Equal(t, "17:00", resp.Slots[len(resp.Slots)-1])
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_OccupiedIntervalBlocksSlots(t *testing.T) {
	// Активное бронирование 10:00-11:00 с буфером 15 блокирует 09:30-11:00
	booking := &domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, "09:00")
	assert.Contains(t, resp.Slots, "11:30")
	assert.NotContains(t, resp.Slots, "09:30")
	assert.NotContains(t, resp.Slots, "10:00")
	assert.NotContains(t, resp.Slots, "10:30")
	assert.NotContains(t, resp.Slots, "11:00")
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	booking := &domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusCancelledByClient,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, "10:00")
}

func TestExecute_ClosedDayReturnsEmptySlots(t *testing.T) {
	cfg := domain.DefaultScheduleConfig()
	cfg.DateExceptions["2025-10-13"] = domain.DateException{Date: "2025-10-13", Closed: true}

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: cfg},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestExecute_ExceptionOverridesWeekdayRule(t *testing.T) {
	// Особый график 12:00-15:00 вместо обычного 09:00-18:00
	cfg := domain.DefaultScheduleConfig()
	cfg.DateExceptions["2025-10-13"] = domain.DateException{
		Date:      "2025-10-13",
		OpenTime:  ptr.Ptr("12:00"),
		CloseTime: ptr.Ptr("15:00"),
	}

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: cfg},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "12:00", resp.Slots[0])
	assert.Equal(t, "14:00", resp.Slots[len(resp.Slots)-1])
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{err: serviceRepo.ErrServiceNotFound},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 42, Date: "2025-10-13"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveServiceNotBookable(t *testing.T) {
	service := bookableService(60)
	service.Active = false

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: service},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2025-10-13"})
	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "2024-12-31"})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeCatalogRepo{service: bookableService(60)},
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0, Date: "2025-10-13"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, Date: "13.10.2025"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
