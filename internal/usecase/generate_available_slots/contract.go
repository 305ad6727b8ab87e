package generate_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListForServiceDay получает неотменённые бронирования услуги и её офферов за день
	ListForServiceDay(ctx context.Context, serviceID int64, offerIDs []int64, dayStart, dayEnd time.Time) ([]*domain.Booking, error)
}

// PolicyRepository интерфейс репозитория политик горизонта бронирования
type PolicyRepository interface {
	GetPolicyWithHierarchy(ctx context.Context, storeID int64, serviceID *int64) (*domain.BookingPolicy, error)
}

// MerchantServiceClient интерфейс клиента для MerchantService
type MerchantServiceClient interface {
	GetServiceWithStore(ctx context.Context, serviceID int64) (*merchantservice.Service, error)
	GetOfferWithService(ctx context.Context, offerID int64) (*merchantservice.Offer, error)
	ListOffersForService(ctx context.Context, serviceID int64) ([]*merchantservice.Offer, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
