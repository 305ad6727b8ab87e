package get_available_slots

import (
	"context"

	generateAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

type GenerateAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *generateAvailableSlots.Request) (*generateAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
