package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
