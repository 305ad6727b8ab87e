package check_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	checkSlotAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_slot_availability"
)

// SlotAvailabilityResponse HTTP response model
type SlotAvailabilityResponse struct {
	Available      bool   `json:"available"`
	RemainingSpots int    `json:"remainingSpots"`
	TotalSpots     int    `json:"totalSpots"`
	Reason         string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlotAvailability.Response) *SlotAvailabilityResponse {
	return &SlotAvailabilityResponse{
		Available:      resp.Available,
		RemainingSpots: resp.RemainingSpots,
		TotalSpots:     resp.TotalSpots,
		Reason:         resp.Reason,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(entityType domain.EntityType, entityID int64, dateStr, timeStr string, excludeBookingID *int64) (*checkSlotAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &checkSlotAvailability.Request{
		EntityID:         entityID,
		EntityType:       entityType,
		Date:             date,
		Time:             timeStr,
		ExcludeBookingID: excludeBookingID,
	}, nil
}
