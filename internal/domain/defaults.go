package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// SlotDefaults явные значения по умолчанию для генерации слотов
// Собирается один раз из конфигурации сервиса и передаётся в use cases,
// чтобы дефолты не были размазаны по коду
type SlotDefaults struct {
	// WorkingDays применяется, когда у магазина не заданы рабочие дни
	WorkingDays types.WeekdaySet
	// BufferMinutes применяется, когда у услуги не задан буфер между слотами
	BufferMinutes int
	// MinAdvanceMinutes минимальное время до начала слота при бронировании
	MinAdvanceMinutes int
	// MaxAdvanceDays горизонт бронирования в днях
	MaxAdvanceDays int
}

// NewSlotDefaults возвращает значения по умолчанию
// Интервал между слотами дефолтится длительностью услуги и поэтому
// вычисляется на границе merchantservice, а не здесь
func NewSlotDefaults() SlotDefaults {
	return SlotDefaults{
		WorkingDays:       types.FullWeek(),
		BufferMinutes:     DefaultBufferMinutes,
		MinAdvanceMinutes: DefaultMinAdvanceBookingMinutes,
		MaxAdvanceDays:    DefaultMaxAdvanceBookingDays,
	}
}
