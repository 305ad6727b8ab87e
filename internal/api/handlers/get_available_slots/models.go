package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	generateAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	Date       string `json:"date"`
	EntityID   int64  `json:"entityId"`
	EntityType string `json:"entityType"`

	Store        *StoreInfo    `json:"store,omitempty"`
	Entity       *EntityInfo   `json:"entity,omitempty"`
	BookingRules *BookingRules `json:"bookingRules,omitempty"`

	AvailableSlots []AvailableSlot `json:"availableSlots"`
	AllSlots       []AvailableSlot `json:"allSlots"`
}

// StoreInfo метаданные магазина
type StoreInfo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Hours       string   `json:"hours"`
	WorkingDays []string `json:"workingDays"`
}

// EntityInfo метаданные услуги или оффера
type EntityInfo struct {
	ID              int64    `json:"id"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
}

// BookingRules правила бронирования
type BookingRules struct {
	MaxConcurrentBookings int `json:"maxConcurrentBookings"`
	DurationMinutes       int `json:"durationMinutes"`
	SlotIntervalMinutes   int `json:"slotIntervalMinutes"`
	BufferMinutes         int `json:"bufferMinutes"`
	MinAdvanceMinutes     int `json:"minAdvanceMinutes"`
	MaxAdvanceMinutes     int `json:"maxAdvanceMinutes"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Label          string `json:"label"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	BookedSpots    int    `json:"bookedSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		Success:        resp.Success,
		Message:        resp.Message,
		Date:           resp.Date.Format(domain.DateFormat),
		EntityID:       resp.EntityID,
		EntityType:     string(resp.EntityType),
		AvailableSlots: toSlots(resp.AvailableSlots),
		AllSlots:       toSlots(resp.AllSlots),
	}

	if resp.Store != nil {
		out.Store = &StoreInfo{
			ID:          resp.Store.ID,
			Name:        resp.Store.Name,
			Hours:       resp.Store.Hours,
			WorkingDays: resp.Store.WorkingDays,
		}
	}

	if resp.Entity != nil {
		out.Entity = &EntityInfo{
			ID:              resp.Entity.ID,
			Type:            string(resp.Entity.Type),
			Name:            resp.Entity.Name,
			Price:           resp.Entity.Price,
			DiscountPercent: resp.Entity.DiscountPercent,
			DiscountedPrice: resp.Entity.DiscountedPrice,
		}
	}

	if resp.BookingRules != nil {
		out.BookingRules = &BookingRules{
			MaxConcurrentBookings: resp.BookingRules.MaxConcurrentBookings,
			DurationMinutes:       resp.BookingRules.DurationMinutes,
			SlotIntervalMinutes:   resp.BookingRules.SlotIntervalMinutes,
			BufferMinutes:         resp.BookingRules.BufferMinutes,
			MinAdvanceMinutes:     resp.BookingRules.MinAdvanceMinutes,
			MaxAdvanceMinutes:     resp.BookingRules.MaxAdvanceMinutes,
		}
	}

	return out
}

func toSlots(slots []generateAvailableSlots.Slot) []AvailableSlot {
	out := make([]AvailableSlot, len(slots))
	for i, slot := range slots {
		out[i] = AvailableSlot{
			Label:          slot.Label,
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableSpots: slot.AvailableSpots,
			BookedSpots:    slot.BookedSpots,
			TotalSpots:     slot.TotalSpots,
		}
	}
	return out
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(entityType domain.EntityType, entityID int64, dateStr string) (*generateAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &generateAvailableSlots.Request{
		EntityID:   entityID,
		EntityType: entityType,
		Date:       date,
	}, nil
}

// ParsePathEntityType разбирает сегмент пути "services"/"offers" в тип сущности
func ParsePathEntityType(segment string) (domain.EntityType, error) {
	switch segment {
	case "services":
		return domain.EntityTypeService, nil
	case "offers":
		return domain.EntityTypeOffer, nil
	default:
		return domain.ParseEntityType(segment)
	}
}
