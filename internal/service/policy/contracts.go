package policy

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetByStoreAndService(ctx context.Context, storeID int64, serviceID *int64) (*domain.BookingPolicy, error)
	GetPolicyWithHierarchy(ctx context.Context, storeID int64, serviceID *int64) (*domain.BookingPolicy, error)
	Upsert(ctx context.Context, policy *domain.BookingPolicy) (*domain.BookingPolicy, error)
	Delete(ctx context.Context, id int64) error
}

// MerchantServiceClient интерфейс клиента для MerchantService
type MerchantServiceClient interface {
	GetServiceWithStore(ctx context.Context, serviceID int64) (*merchantservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
