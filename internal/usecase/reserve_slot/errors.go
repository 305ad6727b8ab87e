package reserve_slot

import "errors"

var (
	// ErrServiceNotFound сервис не найден в MerchantService
	ErrServiceNotFound = errors.New("reserve_slot: service not found")

	// ErrOfferNotFound оффер не найден или не активен
	ErrOfferNotFound = errors.New("reserve_slot: offer not found")

	// ErrStoreClosed магазин не работает в запрошенный день
	ErrStoreClosed = errors.New("reserve_slot: store is closed on requested date")

	// ErrInvalidDate дата в прошлом или некорректна
	ErrInvalidDate = errors.New("reserve_slot: invalid booking date")

	// ErrDateTooFarInFuture дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("reserve_slot: date exceeds advance booking window")

	// ErrTooLateToBook до начала слота меньше минимального уведомления
	ErrTooLateToBook = errors.New("reserve_slot: too late to book this slot")

	// ErrInvalidTimeSlot время не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("reserve_slot: time does not match slot grid")

	// ErrSlotNotAvailable слот полностью занят
	ErrSlotNotAvailable = errors.New("reserve_slot: slot is fully booked")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("reserve_slot: invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("reserve_slot: internal error")
)
