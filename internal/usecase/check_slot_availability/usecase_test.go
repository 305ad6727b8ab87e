package check_slot_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	generateSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type fakePipeline struct {
	resp *generateSlots.Response
	err  error
}

func (f *fakePipeline) Execute(_ context.Context, _ *generateSlots.Request) (*generateSlots.Response, error) {
	return f.resp, f.err
}

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func gridResponse(available, total int) *generateSlots.Response {
	return &generateSlots.Response{
		Success: true,
		AllSlots: []generateSlots.Slot{
			{Label: "09:00 - 10:00", StartTime: "09:00", EndTime: "10:00", AvailableSpots: available, BookedSpots: total - available, TotalSpots: total},
			{Label: "10:00 - 11:00", StartTime: "10:00", EndTime: "11:00", AvailableSpots: total, TotalSpots: total},
		},
	}
}

func testRequest(slotTime string) *Request {
	return &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Time:       slotTime,
	}
}

func TestExecute_SlotAvailable(t *testing.T) {
	uc := NewUseCase(&fakePipeline{resp: gridResponse(1, 2)}, &fakeBookingRepo{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest("09:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.RemainingSpots)
	assert.Equal(t, 2, resp.TotalSpots)
	assert.Empty(t, resp.Reason)
}

func TestExecute_MatchesSlotByLabel(t *testing.T) {
	uc := NewUseCase(&fakePipeline{resp: gridResponse(1, 2)}, &fakeBookingRepo{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest("09:00 - 10:00"))

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	uc := NewUseCase(&fakePipeline{resp: gridResponse(1, 2)}, &fakeBookingRepo{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest("23:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonOutsideHours, resp.Reason)
}

func TestExecute_FullyBooked(t *testing.T) {
	uc := NewUseCase(&fakePipeline{resp: gridResponse(0, 2)}, &fakeBookingRepo{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest("09:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, 0, resp.RemainingSpots)
	assert.Equal(t, reasonFullyBooked, resp.Reason)
}

func TestExecute_ClosedStoreReasonPassedThrough(t *testing.T) {
	pipeline := &fakePipeline{resp: &generateSlots.Response{
		Success: false,
		Message: "Store is closed on Saturday",
	}}
	uc := NewUseCase(pipeline, &fakeBookingRepo{}, time.UTC, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest("09:00"))

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, "Store is closed on Saturday", resp.Reason)
}

func TestExecute_ExcludedBookingFreesSpot(t *testing.T) {
	// Исключаемая бронь действительно занимает слот 09:00-10:00
	repo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        5,
			ServiceID: ptr.Ptr(int64(1)),
			StartTime: time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}
	uc := NewUseCase(&fakePipeline{resp: gridResponse(0, 2)}, repo, time.UTC, nopLogger{})

	req := testRequest("09:00")
	req.ExcludeBookingID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.RemainingSpots)
}

func TestExecute_ExcludedBookingInOtherSlotIgnored(t *testing.T) {
	// Бронь в другом окне свободное место не добавляет
	repo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        5,
			ServiceID: ptr.Ptr(int64(1)),
			StartTime: time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}
	uc := NewUseCase(&fakePipeline{resp: gridResponse(0, 2)}, repo, time.UTC, nopLogger{})

	req := testRequest("09:00")
	req.ExcludeBookingID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, reasonFullyBooked, resp.Reason)
}

func TestExecute_ExcludedCancelledBookingIgnored(t *testing.T) {
	repo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        5,
			ServiceID: ptr.Ptr(int64(1)),
			StartTime: time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
			Status:    domain.StatusCancelled,
		},
	}
	uc := NewUseCase(&fakePipeline{resp: gridResponse(0, 2)}, repo, time.UTC, nopLogger{})

	req := testRequest("09:00")
	req.ExcludeBookingID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.Available)
}

func TestExecute_ExcludedBookingNotFoundIgnored(t *testing.T) {
	repo := &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}
	uc := NewUseCase(&fakePipeline{resp: gridResponse(1, 2)}, repo, time.UTC, nopLogger{})

	req := testRequest("09:00")
	req.ExcludeBookingID = ptr.Ptr(int64(999))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 1, resp.RemainingSpots)
}

func TestExecute_ExclusionCappedAtTotalSpots(t *testing.T) {
	// Даже с исключением свободных мест не может стать больше ёмкости
	repo := &fakeBookingRepo{
		booking: &domain.Booking{
			ID:        5,
			ServiceID: ptr.Ptr(int64(1)),
			StartTime: time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC),
			Status:    domain.StatusConfirmed,
		},
	}
	uc := NewUseCase(&fakePipeline{resp: gridResponse(2, 2)}, repo, time.UTC, nopLogger{})

	req := testRequest("09:00")
	req.ExcludeBookingID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 2, resp.RemainingSpots)
}

func TestExecute_PipelineErrorPropagated(t *testing.T) {
	uc := NewUseCase(&fakePipeline{err: generateSlots.ErrServiceNotFound}, &fakeBookingRepo{}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest("09:00"))

	assert.ErrorIs(t, err, generateSlots.ErrServiceNotFound)
}
