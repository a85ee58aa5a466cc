package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	bookingRepo "github.com/lotos-studio/LOTOS-BookingService/internal/infra/storage/booking"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
	updatedStatus   *domain.BookingStatus
	updatedNotes    *string
}

var _ BookingRepository = (*fakeBookingRepo)(nil)

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByClientEmail(_ context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ClientEmail != email {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedStatus = &status
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) UpdateSessionNotes(_ context.Context, id int64, notes string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedNotes = &notes
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	f.bookings[id].Status = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, email string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientEmail:     email,
		ClientName:      "Анна",
		ServiceID:       1,
		ServiceName:     "Классический массаж",
		ServicePrice:    3500,
		BookingDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestGetByID_OwnerAccess(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	result, err := svc.GetByID(context.Background(), 1, "anna@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
}

func TestGetByID_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, "boris@example.com", false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAnyBooking(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	result, err := svc.GetByID(context.Background(), 1, "", true)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", result.ClientEmail)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, "anna@example.com", false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ByClient(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ClientEmail:        "anna@example.com",
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
	assert.Equal(t, "не смогу прийти", repo.cancelledReason)
}

func TestCancel_ByStudio(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ByStudio: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByStudio, repo.cancelledStatus)
}

func TestCancel_ForeignBookingDenied(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusPending))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ClientEmail: "boris@example.com",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusCompleted))
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		ClientEmail: "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdate_StatusAndNotes(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	status := "completed"
	notes := "Клиент просил меньше давления на плечи"
	err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Status:       &status,
		SessionNotes: &notes,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *repo.updatedStatus)
	require.NotNil(t, repo.updatedNotes)
	assert.Equal(t, notes, *repo.updatedNotes)
}

func TestUpdate_EmptyRequestRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(1, "anna@example.com", domain.StatusConfirmed))
	svc := NewService(repo, nopLogger{})

	status := "archived"
	err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRevenueReport_CountsOnlyConfirmedAndCompleted(t *testing.T) {
	confirmed := testBooking(1, "anna@example.com", domain.StatusConfirmed)
	completed := testBooking(2, "boris@example.com", domain.StatusCompleted)
	pending := testBooking(3, "vera@example.com", domain.StatusPending)
	cancelled := testBooking(4, "gleb@example.com", domain.StatusCancelledByClient)
	noShow := testBooking(5, "dina@example.com", domain.StatusNoShow)

	repo := newFakeBookingRepo(confirmed, completed, pending, cancelled, noShow)
	svc := NewService(repo, nopLogger{})

	report, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalBookings)
	assert.InDelta(t, 7000.0, report.TotalRevenue, 0.001)
}

func TestRevenueReport_GroupsByDayAndMonth(t *testing.T) {
	first := testBooking(1, "anna@example.com", domain.StatusCompleted)
	second := testBooking(2, "boris@example.com", domain.StatusCompleted)
	second.BookingDate = time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	third := testBooking(3, "vera@example.com", domain.StatusConfirmed)
	third.BookingDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	repo := newFakeBookingRepo(first, second, third)
	svc := NewService(repo, nopLogger{})

	report, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, report.ByDay, 3)
	assert.Equal(t, "2025-10-13", report.ByDay[0].Date)
	assert.Equal(t, "2025-10-14", report.ByDay[1].Date)
	assert.Equal(t, "2025-11-03", report.ByDay[2].Date)

	require.Len(t, report.ByMonth, 2)
	assert.Equal(t, "2025-10", report.ByMonth[0].Month)
	assert.Equal(t, 2, report.ByMonth[0].Bookings)
	assert.InDelta(t, 7000.0, report.ByMonth[0].Revenue, 0.001)
	assert.Equal(t, "2025-11", report.ByMonth[1].Month)
	assert.Equal(t, 1, report.ByMonth[1].Bookings)
}

func TestRevenueReport_EmptyPeriod(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	report, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalBookings)
	assert.Empty(t, report.ByDay)
	assert.Empty(t, report.ByMonth)
}

func TestRevenueReport_InvalidPeriod(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		StartDate: time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
