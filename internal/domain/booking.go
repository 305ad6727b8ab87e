package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a booking made against a service or one of its offers
// Ровно одно из полей ServiceID/OfferID заполнено: бронирование сделано либо
// напрямую на услугу, либо через её оффер. Ёмкость при этом всегда общая -
// она принадлежит услуге
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID *int64
	OfferID   *int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CountsAgainstCapacity returns true if the booking consumes slot capacity
// Из ёмкости исключаются только отменённые бронирования; остальные статусы
// (включая no_show) занимают своё историческое окно
func (b *Booking) CountsAgainstCapacity() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps проверяет пересечение бронирования с интервалом [start, end)
// Строгие неравенства: граничащие интервалы пересечением не считаются
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// ValidStatus проверяет, что статус входит в допустимый набор
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}
