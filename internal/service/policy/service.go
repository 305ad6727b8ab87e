package policy

import (
	"context"
	"errors"
	"fmt"

	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	merchantClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/policy/models"
)

// Service сервис для работы с политиками бронирования
type Service struct {
	policyRepo     PolicyRepository
	merchantClient MerchantServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса политик
func NewService(
	policyRepo PolicyRepository,
	merchantClient MerchantServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:     policyRepo,
		merchantClient: merchantClient,
		logger:         logger,
	}
}

// Get получает действующую политику магазина или услуги
// Иерархия: политика услуги перекрывает политику магазина
func (s *Service) Get(ctx context.Context, req *models.GetPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching policy for store=%d, service=%v", req.StoreID, req.ServiceID)

	pol, err := s.policyRepo.GetPolicyWithHierarchy(ctx, req.StoreID, req.ServiceID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Get: no policy found for store=%d, service=%v", req.StoreID, req.ServiceID)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("Get: repository error for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched policy id=%d for store=%d", pol.ID, req.StoreID)
	return models.FromDomainPolicy(pol), nil
}

// Upsert создает или обновляет политику магазина/услуги
// Для политики услуги проверяет, что услуга существует и принадлежит магазину
func (s *Service) Upsert(ctx context.Context, req *models.UpsertPolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Upsert: saving policy for store=%d, service=%v", req.StoreID, req.ServiceID)

	pol := req.ToDomainPolicy()
	if !pol.Validate() {
		s.logger.Warn("Upsert: policy values out of range for store=%d", req.StoreID)
		return nil, fmt.Errorf("%w: policy values out of range", ErrInvalidInput)
	}

	if req.ServiceID != nil {
		service, err := s.merchantClient.GetServiceWithStore(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, merchantClient.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.StoreID != req.StoreID {
			s.logger.Warn("Upsert: service id=%d belongs to store=%d, not store=%d",
				*req.ServiceID, service.StoreID, req.StoreID)
			return nil, ErrServiceStoreMismatch
		}
	}

	saved, err := s.policyRepo.Upsert(ctx, pol)
	if err != nil {
		s.logger.Error("Upsert: repository error for store=%d: %v", req.StoreID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved policy id=%d for store=%d", saved.ID, req.StoreID)
	return models.FromDomainPolicy(saved), nil
}

// Delete удаляет политику по ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting policy id=%d", id)

	if err := s.policyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Delete: policy id=%d not found", id)
			return ErrPolicyNotFound
		}
		s.logger.Error("Delete: repository error for policy id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted policy id=%d", id)
	return nil
}
