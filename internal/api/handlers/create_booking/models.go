package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EntityID   int64   `json:"entityId"`
	EntityType string  `json:"entityType"` // "service" или "offer"
	Date       string  `json:"date"`       // "2026-03-15"
	StartTime  string  `json:"startTime"`  // "10:00"
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
// с парсингом даты и времени
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*reserveSlot.Request, error) {
	entityType, err := domain.ParseEntityType(r.EntityType)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &reserveSlot.Request{
		UserID:     userID,
		EntityID:   r.EntityID,
		EntityType: entityType,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}, nil
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	EntityID   int64   `json:"entityId"`
	EntityType string  `json:"entityType"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		EntityID:   resp.EntityID,
		EntityType: string(resp.EntityType),
		Date:       resp.StartTime.Format(domain.DateFormat),
		StartTime:  resp.StartTime.Format(domain.TimeFormat),
		EndTime:    resp.EndTime.Format(domain.TimeFormat),
		Status:     resp.Status,
		Notes:      resp.Notes,
		CreatedAt:  resp.CreatedAt,
		UpdatedAt:  resp.UpdatedAt,
	}
}
