package generate_available_slots

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

// Фейки зависимостей

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error

	gotServiceID int64
	gotOfferIDs  []int64
}

func (f *fakeBookingRepo) ListForServiceDay(_ context.Context, serviceID int64, offerIDs []int64, _, _ time.Time) ([]*domain.Booking, error) {
	f.gotServiceID = serviceID
	f.gotOfferIDs = offerIDs
	return f.bookings, f.err
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

// Хелперы

func testStore() *merchantservice.Store {
	return &merchantservice.Store{
		ID:          10,
		Name:        "Detailing Center",
		OpeningTime: "09:00",
		ClosingTime: "18:00",
		WorkingDays: types.NewWeekdaySet(
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		),
	}
}

func testService() *merchantservice.Service {
	return &merchantservice.Service{
		ID:                    1,
		StoreID:               10,
		Name:                  "Полировка кузова",
		Price:                 ptr.Ptr(100.0),
		DurationMinutes:       60,
		SlotIntervalMinutes:   60,
		BufferMinutes:         0,
		MaxConcurrentBookings: 2,
		Store:                 testStore(),
	}
}

func newTestUseCase(repo *fakeBookingRepo, policies *fakePolicyRepo, client *fakeMerchantClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, policies, client, domain.NewSlotDefaults(), time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return date
}

// now = вторник 10 марта 2026, 08:00 UTC
var testNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestExecute_GeneratesFullGrid(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	require.True(t, resp.Success)

	// 09:00..17:00 - девять часовых слотов, последний заканчивается в 18:00
	require.Len(t, resp.AllSlots, 9)
	assert.Equal(t, "09:00", resp.AllSlots[0].StartTime.String())
	assert.Equal(t, "10:00", resp.AllSlots[0].EndTime.String())
	assert.Equal(t, "17:00", resp.AllSlots[8].StartTime.String())
	assert.Equal(t, "18:00", resp.AllSlots[8].EndTime.String())
	assert.Equal(t, "09:00 - 10:00", resp.AllSlots[0].Label)

	// Без бронирований вся сетка доступна
	assert.Len(t, resp.AvailableSlots, 9)
	for _, slot := range resp.AllSlots {
		assert.Equal(t, 2, slot.TotalSpots)
		assert.Equal(t, 2, slot.AvailableSpots)
		assert.Equal(t, 0, slot.BookedSpots)
	}
}

func TestExecute_SlotMustEndByClosingTime(t *testing.T) {
	service := testService()
	service.Store.OpeningTime = "09:00"
	service.Store.ClosingTime = "10:00"

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: service}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	// Услуга в 60 минут ровно помещается в окно 09:00-10:00
	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})
	require.NoError(t, err)
	require.Len(t, resp.AllSlots, 1)
	assert.Equal(t, "09:00", resp.AllSlots[0].StartTime.String())

	// 61 минута уже не помещается - сетка пуста, но это не ошибка
	service.DurationMinutes = 61
	resp, err = uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.AllSlots)
}

func TestExecute_BufferExtendsStep(t *testing.T) {
	service := testService()
	service.BufferMinutes = 30

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: service}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	// Шаг 60+30=90 минут: 09:00, 10:30, 12:00, 13:30, 15:00, 16:30
	require.Len(t, resp.AllSlots, 6)
	assert.Equal(t, "10:30", resp.AllSlots[1].StartTime.String())
	assert.Equal(t, "16:30", resp.AllSlots[5].StartTime.String())
}

func TestExecute_BookingsReduceSharedPool(t *testing.T) {
	slotStart := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			// Бронь напрямую на услугу
			{ID: 1, ServiceID: ptr.Ptr(int64(1)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusConfirmed},
			// Бронь через оффер той же услуги - общий пул
			{ID: 2, OfferID: ptr.Ptr(int64(77)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusConfirmed},
			// Отменённая бронь ёмкость не занимает
			{ID: 3, ServiceID: ptr.Ptr(int64(1)), StartTime: slotStart, EndTime: slotStart.Add(time.Hour), Status: domain.StatusCancelled},
		},
	}
	client := &fakeMerchantClient{
		service: testService(),
		offers: []*merchantservice.Offer{
			{ID: 77, ServiceID: 1, Status: "active"},
		},
	}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	require.True(t, resp.Success)

	// Репозиторий запрошен по услуге и замкнутому множеству её офферов
	assert.Equal(t, int64(1), repo.gotServiceID)
	assert.Equal(t, []int64{77}, repo.gotOfferIDs)

	first := resp.AllSlots[0]
	assert.Equal(t, 2, first.BookedSpots)
	assert.Equal(t, 0, first.AvailableSpots)

	// Заполненный слот остаётся в AllSlots, но выпадает из AvailableSlots
	assert.Len(t, resp.AllSlots, 9)
	assert.Len(t, resp.AvailableSlots, 8)
	assert.Equal(t, "10:00", resp.AvailableSlots[0].StartTime.String())
}

func TestExecute_AdjacentBookingDoesNotOverlap(t *testing.T) {
	// Бронь 10:00-11:00 граничит со слотом 09:00-10:00, но не пересекает его
	bookingStart := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{ID: 1, ServiceID: ptr.Ptr(int64(1)), StartTime: bookingStart, EndTime: bookingStart.Add(time.Hour), Status: domain.StatusConfirmed},
		},
	}
	client := &fakeMerchantClient{service: testService()}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.AllSlots[0].BookedSpots) // 09:00-10:00
	assert.Equal(t, 1, resp.AllSlots[1].BookedSpots) // 10:00-11:00
}

func TestExecute_ClosedDay(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	// 14 марта 2026 - суббота, магазин работает по будням
	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-14"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Store is closed on Saturday", resp.Message)
	assert.Empty(t, resp.AllSlots)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_PastDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-09"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "past date", resp.Message)
}

func TestExecute_TodayInWesternTimezone(t *testing.T) {
	// Сервис в зоне UTC-5: 15:00 UTC четверга - это 10:00 местного четверга.
	// Дата запроса парсится в UTC, но "сегодня" она от этого не перестаёт быть
	location := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	uc := NewUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, domain.NewSlotDefaults(), location, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	require.True(t, resp.Success, "message: %s", resp.Message)
	assert.Len(t, resp.AllSlots, 9)
}

func TestExecute_YesterdayInEasternTimezone(t *testing.T) {
	// Зона UTC+13: 23:00 UTC четверга - это уже пятница по местному времени,
	// и четверг для сервиса в прошлом
	location := time.FixedZone("UTC+13", 13*3600)
	now := time.Date(2026, 3, 12, 23, 0, 0, 0, time.UTC)

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	uc := NewUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, domain.NewSlotDefaults(), location, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "past date", resp.Message)
}

func TestExecute_HoursNotConfigured(t *testing.T) {
	service := testService()
	service.Store.OpeningTime = ""
	service.Store.ClosingTime = ""

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: service}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, msgHoursNotConfigured, resp.Message)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{serviceErr: merchantservice.ErrServiceNotFound}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		EntityID:   42,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ExpiredOfferNotFound(t *testing.T) {
	offer := &merchantservice.Offer{
		ID:              77,
		ServiceID:       1,
		Status:          "active",
		ExpirationDate:  testNow.AddDate(0, 0, -1),
		Service:         testService(),
		DiscountPercent: 20,
	}

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{offer: offer}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		EntityID:   77,
		EntityType: domain.EntityTypeOffer,
		Date:       mustDate(t, "2026-03-12"),
	})

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestExecute_OfferMetadataAndDiscount(t *testing.T) {
	offer := &merchantservice.Offer{
		ID:              77,
		ServiceID:       1,
		Title:           "Полировка -15%",
		Status:          "active",
		DiscountPercent: 15,
		Service:         testService(),
	}

	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{offer: offer, offers: []*merchantservice.Offer{offer}}
	uc := newTestUseCase(repo, &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound}, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   77,
		EntityType: domain.EntityTypeOffer,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Entity)
	assert.Equal(t, domain.EntityTypeOffer, resp.Entity.Type)
	assert.Equal(t, "Полировка -15%", resp.Entity.Name)
	require.NotNil(t, resp.Entity.DiscountedPrice)
	assert.InDelta(t, 85.0, *resp.Entity.DiscountedPrice, 0.001)
}

func TestExecute_PolicyOverridesDefaults(t *testing.T) {
	repo := &fakeBookingRepo{}
	client := &fakeMerchantClient{service: testService()}
	policies := &fakePolicyRepo{
		policy: &domain.BookingPolicy{
			ID:                5,
			StoreID:           10,
			MinAdvanceMinutes: 120,
			MaxAdvanceDays:    14,
		},
	}
	uc := newTestUseCase(repo, policies, client, testNow)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.BookingRules)
	assert.Equal(t, 120, resp.BookingRules.MinAdvanceMinutes)
	assert.Equal(t, 14*24*60, resp.BookingRules.MaxAdvanceMinutes)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePolicyRepo{}, &fakeMerchantClient{}, testNow)

	_, err := uc.Execute(context.Background(), &Request{
		EntityID:   0,
		EntityType: domain.EntityTypeService,
		Date:       mustDate(t, "2026-03-12"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		EntityID:   1,
		EntityType: "unknown",
		Date:       mustDate(t, "2026-03-12"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
