package domain

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Slot represents a candidate booking window within a store's open hours
// Слоты не хранятся в БД - они пересчитываются на каждый запрос
type Slot struct {
	StartTime      types.TimeString
	EndTime        types.TimeString
	CapacityTotal  int
	CapacityBooked int
}

// CapacityAvailable возвращает количество свободных мест, не меньше нуля
func (s *Slot) CapacityAvailable() int {
	available := s.CapacityTotal - s.CapacityBooked
	if available < 0 {
		return 0
	}
	return available
}

// IsAvailable returns true if the slot can still accept a booking
func (s *Slot) IsAvailable() bool {
	return s.CapacityAvailable() > 0
}

// IsFull returns true if the slot has no available capacity
func (s *Slot) IsFull() bool {
	return s.CapacityAvailable() == 0
}

// Label возвращает отображаемую подпись слота, например "10:00 - 11:00"
func (s *Slot) Label() string {
	return fmt.Sprintf("%s - %s", s.StartTime, s.EndTime)
}
