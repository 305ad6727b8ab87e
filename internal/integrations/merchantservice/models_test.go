package merchantservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestToStore_Normalization(t *testing.T) {
	store := toStore(&storeDTO{
		ID:          10,
		Name:        "Detailing Center",
		OpeningTime: "09:00",
		ClosingTime: "18:00",
		WorkingDays: `["Monday","Tuesday"]`,
	})

	require.NotNil(t, store)
	assert.Equal(t, "09:00", store.OpeningTime.String())
	assert.Equal(t, "18:00", store.ClosingTime.String())
	assert.True(t, store.WorkingDays.Contains(time.Monday))
	assert.False(t, store.WorkingDays.Contains(time.Sunday))
	assert.True(t, store.HasValidHours())
}

func TestToStore_UnsetWorkingDaysStayNil(t *testing.T) {
	// Незаданные дни - nil: use case подставит дефолтные
	store := toStore(&storeDTO{ID: 10, WorkingDays: ""})
	assert.Nil(t, store.WorkingDays)

	// Заданные, но нечитаемые - пустой набор: магазин закрыт каждый день
	store = toStore(&storeDTO{ID: 10, WorkingDays: `["Mon`})
	require.NotNil(t, store.WorkingDays)
	assert.True(t, store.WorkingDays.IsEmpty())
}

func TestToStore_MalformedHours(t *testing.T) {
	store := toStore(&storeDTO{
		ID:          10,
		OpeningTime: "9am",
		ClosingTime: "18:00",
	})

	assert.True(t, store.OpeningTime.IsZero())
	assert.False(t, store.HasValidHours())
}

func TestToService_Defaults(t *testing.T) {
	svc := toService(&serviceDTO{
		ID:              1,
		StoreID:         10,
		DurationMinutes: 45,
	})

	// Интервал дефолтится длительностью, ёмкость единицей
	assert.Equal(t, 45, svc.SlotIntervalMinutes)
	assert.Equal(t, 0, svc.BufferMinutes)
	assert.Equal(t, 1, svc.MaxConcurrentBookings)
}

func TestToService_ExplicitValues(t *testing.T) {
	svc := toService(&serviceDTO{
		ID:                    1,
		DurationMinutes:       45,
		SlotIntervalMinutes:   ptr.Ptr(30),
		BufferMinutes:         ptr.Ptr(15),
		MaxConcurrentBookings: ptr.Ptr(3),
	})

	assert.Equal(t, 30, svc.SlotIntervalMinutes)
	assert.Equal(t, 15, svc.BufferMinutes)
	assert.Equal(t, 3, svc.MaxConcurrentBookings)
}

func TestToOffer_ExpirationParsing(t *testing.T) {
	offer := toOffer(&offerDTO{
		ID:             77,
		ServiceID:      1,
		Status:         "active",
		ExpirationDate: "2026-04-01T00:00:00Z",
	})

	require.NotNil(t, offer)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), offer.ExpirationDate)

	// Нечитаемая дата остаётся нулевой - оффер считается бессрочным
	offer = toOffer(&offerDTO{ID: 77, Status: "active", ExpirationDate: "next month"})
	assert.True(t, offer.ExpirationDate.IsZero())
}

func TestOffer_IsActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	active := &Offer{Status: "active", ExpirationDate: now.AddDate(0, 1, 0)}
	assert.True(t, active.IsActive(now))

	perpetual := &Offer{Status: "active"}
	assert.True(t, perpetual.IsActive(now))

	expired := &Offer{Status: "active", ExpirationDate: now.AddDate(0, 0, -1)}
	assert.False(t, expired.IsActive(now))

	archived := &Offer{Status: "archived", ExpirationDate: now.AddDate(0, 1, 0)}
	assert.False(t, archived.IsActive(now))
}
