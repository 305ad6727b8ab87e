package domain

import "time"

// BookingPolicy правила горизонта бронирования для магазина или услуги
// Поддерживает иерархию: политика для конкретной услуги перекрывает
// политику магазина, политика магазина перекрывает дефолты сервиса
type BookingPolicy struct {
	ID                int64
	StoreID           int64
	ServiceID         *int64 // NULL = политика для всех услуг магазина
	MinAdvanceMinutes int
	MaxAdvanceDays    int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsStoreWide returns true if the policy applies to every service of the store
func (p *BookingPolicy) IsStoreWide() bool {
	return p.ServiceID == nil
}

// Validate проверяет границы значений политики
func (p *BookingPolicy) Validate() bool {
	if p.MinAdvanceMinutes < MinAdvanceBookingMinutesLimit || p.MinAdvanceMinutes > MaxAdvanceBookingMinutesLimit {
		return false
	}
	if p.MaxAdvanceDays < MinAdvanceBookingDaysLimit || p.MaxAdvanceDays > MaxAdvanceBookingDaysLimit {
		return false
	}
	return true
}
