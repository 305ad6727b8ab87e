package merchantservice

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("merchantservice client: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("merchantservice client: service not found")

	// ErrOfferNotFound возвращается, когда оффер не найден
	ErrOfferNotFound = errors.New("merchantservice client: offer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("merchantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("merchantservice client: invalid response")
)
