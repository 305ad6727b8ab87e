package merchantservice

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Store данные магазина из MerchantService
// Время работы и рабочие дни уже нормализованы на границе клиента
type Store struct {
	ID          int64
	Name        string
	OpeningTime types.TimeString // пустое значение = время не задано или не распарсилось
	ClosingTime types.TimeString
	WorkingDays types.WeekdaySet // пустой набор = дни не заданы или не распарсились
}

// HasValidHours возвращает true, если у магазина заданы корректные часы работы
func (s *Store) HasValidHours() bool {
	return !s.OpeningTime.IsZero() && !s.ClosingTime.IsZero() && s.OpeningTime.IsBefore(s.ClosingTime)
}

// Service бронируемая услуга из MerchantService
// SlotIntervalMinutes и BufferMinutes уже дефолтированы на границе клиента
type Service struct {
	ID                    int64
	StoreID               int64
	Name                  string
	Price                 *float64
	DurationMinutes       int
	SlotIntervalMinutes   int
	BufferMinutes         int
	MaxConcurrentBookings int

	Store *Store
}

// Offer скидочный вариант бронирования услуги
// Ёмкость офферу не принадлежит - она всегда у услуги
type Offer struct {
	ID              int64
	ServiceID       int64
	Title           string
	DiscountPercent float64
	ExpirationDate  time.Time
	Status          string

	Service *Service
}

// IsActive возвращает true, если оффер активен и не истёк на момент now
func (o *Offer) IsActive(now time.Time) bool {
	if o.Status != "active" {
		return false
	}
	if !o.ExpirationDate.IsZero() && o.ExpirationDate.Before(now) {
		return false
	}
	return true
}

// Wire-модели ответов MerchantService

type storeDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	// WorkingDays приходит строкой: JSON массив или список через запятую
	WorkingDays string `json:"working_days"`
}

type serviceDTO struct {
	ID                    int64     `json:"id"`
	StoreID               int64     `json:"store_id"`
	Name                  string    `json:"name"`
	Price                 *float64  `json:"price"`
	DurationMinutes       int       `json:"duration_minutes"`
	SlotIntervalMinutes   *int      `json:"slot_interval_minutes"`
	BufferMinutes         *int      `json:"buffer_minutes"`
	MaxConcurrentBookings *int      `json:"max_concurrent_bookings"`
	Store                 *storeDTO `json:"store"`
}

type offerDTO struct {
	ID              int64       `json:"id"`
	ServiceID       int64       `json:"service_id"`
	Title           string      `json:"title"`
	DiscountPercent float64     `json:"discount_percent"`
	ExpirationDate  string      `json:"expiration_date"`
	Status          string      `json:"status"`
	Service         *serviceDTO `json:"service"`
}

// ErrorResponse модель ошибки от MerchantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toStore нормализует wire-модель магазина
// Строковые поля времени и рабочих дней приводятся к типизированным значениям
// здесь, на границе: ядро доступности ad hoc форматы не разбирает
func toStore(dto *storeDTO) *Store {
	if dto == nil {
		return nil
	}

	store := &Store{
		ID:   dto.ID,
		Name: dto.Name,
	}

	// Незаданные рабочие дни оставляем nil - use case подставит дефолтные.
	// Заданная, но нечитаемая строка даёт пустой набор: магазин считается
	// закрытым каждый день, пока данные не починят
	if strings.TrimSpace(dto.WorkingDays) != "" {
		store.WorkingDays = types.ParseWeekdaySet(dto.WorkingDays)
	}

	// Невалидное время оставляем нулевым: генератор слотов вернёт пустую
	// сетку, это валидный отображаемый результат, а не ошибка запроса
	if opening, err := types.NewTimeStringFromString(dto.OpeningTime); err == nil {
		store.OpeningTime = opening
	}
	if closing, err := types.NewTimeStringFromString(dto.ClosingTime); err == nil {
		store.ClosingTime = closing
	}

	return store
}

// toService нормализует wire-модель услуги и подставляет дефолты:
// интервал слотов = длительности услуги, буфер = 0, ёмкость = 1
func toService(dto *serviceDTO) *Service {
	if dto == nil {
		return nil
	}

	svc := &Service{
		ID:              dto.ID,
		StoreID:         dto.StoreID,
		Name:            dto.Name,
		Price:           dto.Price,
		DurationMinutes: dto.DurationMinutes,
		Store:           toStore(dto.Store),
	}

	svc.SlotIntervalMinutes = dto.DurationMinutes
	if dto.SlotIntervalMinutes != nil && *dto.SlotIntervalMinutes > 0 {
		svc.SlotIntervalMinutes = *dto.SlotIntervalMinutes
	}

	if dto.BufferMinutes != nil && *dto.BufferMinutes > 0 {
		svc.BufferMinutes = *dto.BufferMinutes
	}

	svc.MaxConcurrentBookings = 1
	if dto.MaxConcurrentBookings != nil && *dto.MaxConcurrentBookings > 0 {
		svc.MaxConcurrentBookings = *dto.MaxConcurrentBookings
	}

	return svc
}

// toOffer нормализует wire-модель оффера
func toOffer(dto *offerDTO) *Offer {
	if dto == nil {
		return nil
	}

	offer := &Offer{
		ID:              dto.ID,
		ServiceID:       dto.ServiceID,
		Title:           dto.Title,
		DiscountPercent: dto.DiscountPercent,
		Status:          dto.Status,
		Service:         toService(dto.Service),
	}

	if dto.ExpirationDate != "" {
		if expires, err := time.Parse(time.RFC3339, dto.ExpirationDate); err == nil {
			offer.ExpirationDate = expires
		}
	}

	return offer
}
