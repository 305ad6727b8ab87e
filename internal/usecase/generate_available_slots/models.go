package generate_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	EntityID   int64             // ID услуги или оффера
	EntityType domain.EntityType // service или offer
	Date       time.Time         // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
// Закрытый магазин и прошедшая дата - не ошибки: Success=false с причиной
// в Message и пустым списком слотов
type Response struct {
	Success bool
	Message string // Причина отсутствия слотов при Success=false

	Date       time.Time
	EntityID   int64
	EntityType domain.EntityType

	Store        *StoreInfo
	Entity       *EntityInfo
	BookingRules *BookingRules

	// AvailableSlots слоты со свободной ёмкостью
	AvailableSlots []Slot
	// AllSlots вся сетка, включая заполненные слоты (для диагностики)
	AllSlots []Slot
}

// StoreInfo метаданные магазина для отображения
type StoreInfo struct {
	ID          int64
	Name        string
	Hours       string // Отформатированные часы работы, например "09:00 - 18:00"
	WorkingDays []string
}

// EntityInfo метаданные услуги или оффера
// DiscountedPrice заполняется только для офферов с известной ценой услуги
type EntityInfo struct {
	ID              int64
	Type            domain.EntityType
	Name            string
	Price           *float64
	DiscountPercent *float64
	DiscountedPrice *float64
}

// BookingRules правила бронирования, которые вызывающая сторона применяет сама
type BookingRules struct {
	MaxConcurrentBookings int
	DurationMinutes       int
	SlotIntervalMinutes   int
	BufferMinutes         int
	MinAdvanceMinutes     int
	MaxAdvanceMinutes     int
}

// Slot модель временного слота с посчитанной ёмкостью
type Slot struct {
	Label          string // Отображаемая подпись, например "10:00 - 11:00"
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	BookedSpots    int
	TotalSpots     int
}
