package check_slot_availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	generateSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

// SlotsPipeline полный конвейер расчёта доступных слотов
// Проверка одного слота переиспользует его целиком
type SlotsPipeline interface {
	Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
