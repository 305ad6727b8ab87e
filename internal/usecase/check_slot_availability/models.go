package check_slot_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса проверки конкретного слота
type Request struct {
	EntityID   int64
	EntityType domain.EntityType
	Date       time.Time
	// Time запрошенное время; принимается и сырое время начала ("10:00"),
	// и отображаемая подпись слота ("10:00 - 11:00")
	Time string
	// ExcludeBookingID бронирование, которое не учитывается при проверке
	// Используется при редактировании: "слот свободен, если не считать
	// редактируемую бронь"
	ExcludeBookingID *int64
}

// Response результат проверки слота
type Response struct {
	Available      bool
	RemainingSpots int
	TotalSpots     int
	Reason         string // Причина недоступности, пустая при Available=true
}
