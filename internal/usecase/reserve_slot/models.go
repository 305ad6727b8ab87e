package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request запрос на бронирование слота
type Request struct {
	UserID     int64             `json:"user_id"`
	EntityID   int64             `json:"entity_id"`
	EntityType domain.EntityType `json:"entity_type"`
	Date       time.Time         `json:"date"`
	StartTime  types.TimeString  `json:"start_time"`
	Notes      *string           `json:"notes,omitempty"`
}

// Response созданное бронирование
type Response struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	EntityID   int64             `json:"entity_id"`
	EntityType domain.EntityType `json:"entity_type"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time"`
	Status     string            `json:"status"`
	Notes      *string           `json:"notes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// resolvedEntity нормализованные данные сущности бронирования:
// сервис, через который идёт расчёт ёмкости, и offerID для оффера
type resolvedEntity struct {
	serviceID int64
	offerID   *int64
	service   *merchantservice.Service
}
