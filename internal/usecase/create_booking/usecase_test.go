package create_booking

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
	created  *domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 101
	booking.CreatedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

type fakeCatalogRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeClientRepo struct {
	upserted *domain.Client
}

func (f *fakeClientRepo) Upsert(_ context.Context, client *domain.Client) (*domain.Client, error) {
	client.ID = 7
	f.upserted = client
	return client, nil
}

type fakeScheduleProvider struct {
	cfg *domain.ScheduleConfig
}

func (f *fakeScheduleProvider) GetScheduleConfig(_ context.Context) (*domain.ScheduleConfig, error) {
	return f.cfg, nil
}

// inlineTxManager выполняет функцию без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (inlineTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func bookableService() *domain.Service {
	return &domain.Service{
		ID:              1,
		Name:            "Классический массаж",
		DurationMinutes: 60,
		Price:           3500,
		Active:          true,
	}
}

func validRequest() *Request {
	return &Request{
		ClientEmail: "anna@example.com",
		ClientName:  "Анна",
		ClientPhone: ptr.Ptr("+7 900 000-00-00"),
		ServiceID:   1,
		Date:        "2025-10-13",
		StartTime:   types.TimeString("10:00"),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, catalog *fakeCatalogRepo, clients *fakeClientRepo) *UseCase {
	uc := NewUseCase(
		bookings,
		catalog,
		clients,
		&fakeScheduleProvider{cfg: domain.DefaultScheduleConfig()},
		inlineTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	clientRepo := &fakeClientRepo{}
	uc := newTestUseCase(bookingRepo, &fakeCatalogRepo{service: bookableService()}, clientRepo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Классический массаж", resp.ServiceName)
	assert.Equal(t, 3500.0, resp.ServicePrice)

	// Клиентская база пополнилась
	require.NotNil(t, clientRepo.upserted)
	assert.Equal(t, "anna@example.com", clientRepo.upserted.Email)
}

func TestExecute_SlotTakenByActiveBooking(t *testing.T) {
	existing := &domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeCatalogRepo{service: bookableService()},
		&fakeClientRepo{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BufferBlocksAdjacentSlot(t *testing.T) {
	// Занято 09:00-10:00, буфер 15 -> сессия в 10:00 пересекается с буфером
	existing := &domain.Booking{
		StartTime:       types.TimeString("09:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeCatalogRepo{service: bookableService()},
		&fakeClientRepo{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	existing := &domain.Booking{
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusCancelledByStudio,
	}
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{existing}},
		&fakeCatalogRepo{service: bookableService()},
		&fakeClientRepo{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_StudioClosed(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{service: bookableService()}, &fakeClientRepo{})
	cfg := domain.DefaultScheduleConfig()
	cfg.DateExceptions["2025-10-13"] = domain.DateException{Date: "2025-10-13", Closed: true}
	uc.scheduleProvider = &fakeScheduleProvider{cfg: cfg}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStudioClosed)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{err: serviceRepo.ErrServiceNotFound}, &fakeClientRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveService(t *testing.T) {
	service := bookableService()
	service.Active = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{service: service}, &fakeClientRepo{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

func TestExecute_UnalignedStartTime(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{service: bookableService()}, &fakeClientRepo{})

	req := validRequest()
	req.StartTime = types.TimeString("10:15")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidStartTime)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{service: bookableService()}, &fakeClientRepo{})

	req := validRequest()
	req.Date = "2024-12-31"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{service: bookableService()}, &fakeClientRepo{})

	req := validRequest()
	req.ClientEmail = "not-an-email"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.ClientName = "   "
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
