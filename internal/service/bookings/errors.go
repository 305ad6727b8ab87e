package bookings

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied у пользователя нет доступа к бронированию
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel бронирование нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("bookings: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings: internal error")
)
