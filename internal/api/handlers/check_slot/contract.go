package check_slot

import (
	"context"

	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

type CheckSlotAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkSlotAvailability.Request) (*checkSlotAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
