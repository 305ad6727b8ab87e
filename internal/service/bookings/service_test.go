package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	bookings  []*domain.Booking
	listErr   error
	cancelErr error

	cancelledID     int64
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.bookings, f.listErr
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, _ domain.BookingStatus) error {
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelledID = id
	f.cancelledReason = reason
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        5,
		UserID:    100,
		ServiceID: ptr.Ptr(int64(1)),
		StartTime: time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC),
		Status:    domain.StatusConfirmed,
	}
}

func TestGetByID_Owner(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 5, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "service", resp.EntityType)
	assert.Equal(t, int64(1), resp.EntityID)
	assert.Equal(t, "2026-03-12", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByID_AccessDenied(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 5, 200)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 5, 100)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 100,
		Status: ptr.Ptr("road_trip"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_EmptyListIsNotError(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 100})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestCancel_Owner(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		UserID:             100,
		CancellationReason: "планы изменились",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.cancelledID)
	assert.Equal(t, "планы изменились", repo.cancelledReason)
}

func TestCancel_NotOwner(t *testing.T) {
	svc := NewService(&fakeBookingRepo{booking: testBooking()}, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 200})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	svc := NewService(&fakeBookingRepo{booking: booking}, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 100})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_RepoError(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(), cancelErr: errors.New("connection reset")}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 100})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestFromDomainBooking_OfferEntity(t *testing.T) {
	booking := testBooking()
	booking.ServiceID = nil
	booking.OfferID = ptr.Ptr(int64(77))

	resp := models.FromDomainBooking(booking)

	assert.Equal(t, "offer", resp.EntityType)
	assert.Equal(t, int64(77), resp.EntityID)
}
