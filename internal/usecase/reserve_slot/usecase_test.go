package reserve_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	listErr   error
	createErr error

	created *domain.Booking
	nextID  int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *booking
	saved.ID = f.nextID
	if saved.ID == 0 {
		saved.ID = 1
	}
	saved.CreatedAt = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	f.created = &saved
	return &saved, nil
}

func (f *fakeBookingRepo) ListForServiceDay(_ context.Context, _ int64, _ []int64, _, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.listErr
}

type fakePolicyRepo struct {
	policy *domain.BookingPolicy
	err    error
}

func (f *fakePolicyRepo) GetPolicyWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.BookingPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policy, nil
}

type fakeMerchantClient struct {
	service    *merchantservice.Service
	serviceErr error
	offer      *merchantservice.Offer
	offerErr   error
	offers     []*merchantservice.Offer
	listErr    error
}

func (f *fakeMerchantClient) GetServiceWithStore(_ context.Context, _ int64) (*merchantservice.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeMerchantClient) GetOfferWithService(_ context.Context, _ int64) (*merchantservice.Offer, error) {
	return f.offer, f.offerErr
}

func (f *fakeMerchantClient) ListOffersForService(_ context.Context, _ int64) ([]*merchantservice.Offer, error) {
	return f.offers, f.listErr
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
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

func testService() *merchantservice.Service {
	return &merchantservice.Service{
		ID:                    1,
		StoreID:               10,
		Name:                  "Полировка кузова",
		DurationMinutes:       60,
		SlotIntervalMinutes:   60,
		MaxConcurrentBookings: 2,
		Store: &merchantservice.Store{
			ID:          10,
			Name:        "Detailing Center",
			OpeningTime: "09:00",
			ClosingTime: "18:00",
			WorkingDays: types.NewWeekdaySet(
				time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			),
		},
	}
}

// now = вторник 10 марта 2026, 08:00 UTC
var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeBookingRepo, client *fakeMerchantClient, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, tx,
		domain.NewSlotDefaults(), time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func testRequest() *Request {
	return &Request{
		UserID:     100,
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
	}
}

func TestExecute_CreatesBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	tx := &fakeTxManager{}
	uc := newTestUseCase(repo, &fakeMerchantClient{service: testService()}, tx)

	resp, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.ServiceID)
	assert.Equal(t, int64(1), *repo.created.ServiceID)
	assert.Nil(t, repo.created.OfferID)
	assert.Equal(t, domain.StatusConfirmed, repo.created.Status)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC), repo.created.StartTime)
	assert.Equal(t, time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC), repo.created.EndTime)

	assert.Equal(t, int64(100), resp.UserID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_OfferBookingKeepsOfferID(t *testing.T) {
	offer := &merchantservice.Offer{
		ID:        77,
		ServiceID: 1,
		Status:    "active",
		Service:   testService(),
	}
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeMerchantClient{offer: offer, offers: []*merchantservice.Offer{offer}}, &fakeTxManager{})

	req := testRequest()
	req.EntityID = 77
	req.EntityType = domain.EntityTypeOffer

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.OfferID)
	assert.Equal(t, int64(77), *repo.created.OfferID)
	assert.Nil(t, repo.created.ServiceID)
}

func TestExecute_SlotFull(t *testing.T) {
	slotStart := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, ServiceID: ptr.Ptr(int64(1)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusConfirmed},
			{ID: 2, OfferID: ptr.Ptr(int64(77)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo, &fakeMerchantClient{
		service: testService(),
		offers:  []*merchantservice.Offer{{ID: 77, ServiceID: 1, Status: "active"}},
	}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	slotStart := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, ServiceID: ptr.Ptr(int64(1)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusConfirmed},
			{ID: 2, ServiceID: ptr.Ptr(int64(1)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(repo, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())

	require.NoError(t, err)
	require.NotNil(t, repo.created)
}

func TestExecute_TimeOffGrid(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotPastClosing(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	// 18:00 попадает в шаг сетки, но слот закончился бы в 19:00
	req.StartTime = "18:00"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_StoreClosedOnDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	// 14 марта 2026 - суббота
	req.Date = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	req.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayInWesternTimezone(t *testing.T) {
	// Сервис в зоне UTC-5: 15:00 UTC четверга - это 10:00 местного четверга.
	// Бронирование на местное "сегодня" не должно отклоняться как прошедшая дата
	location := time.FixedZone("UTC-5", -5*3600)

	repo := &fakeBookingRepo{}
	tx := &fakeTxManager{}
	uc := NewUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		&fakeMerchantClient{service: testService()}, tx,
		domain.NewSlotDefaults(), location, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)}

	req := testRequest()
	req.StartTime = "12:00"

	_, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_TooLateToBook(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeMerchantClient{service: testService()}, &fakeTxManager{})
	// now 12 марта 09:45: до слота 10:00 остаётся 15 минут при минимальных 30
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 12, 9, 45, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DateBeyondHorizon(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	// Дефолтный горизонт 7 дней; 20 марта - за его пределами
	req.Date = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{serviceErr: merchantservice.ErrServiceNotFound}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InactiveOfferNotFound(t *testing.T) {
	offer := &merchantservice.Offer{
		ID:        77,
		ServiceID: 1,
		Status:    "archived",
		Service:   testService(),
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{offer: offer}, &fakeTxManager{})

	req := testRequest()
	req.EntityID = 77
	req.EntityType = domain.EntityTypeOffer

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeMerchantClient{service: testService()}, &fakeTxManager{})

	req := testRequest()
	req.UserID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest()
	req.StartTime = "25:99"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
