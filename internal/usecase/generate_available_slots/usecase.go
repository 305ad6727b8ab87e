package generate_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	merchantClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case для расчёта доступных слотов
// Конвейер: резолв сущности -> проверка рабочих часов -> базовая сетка ->
// загрузка бронирований услуги и всех её офферов -> подсчёт ёмкости ->
// форматирование ответа. Чтение без побочных эффектов
type UseCase struct {
	bookingRepo    BookingRepository
	policyRepo     PolicyRepository
	merchantClient MerchantServiceClient
	defaults       domain.SlotDefaults
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// location - таймзона, в которой трактуются даты запросов и "сегодня";
// задаётся явно в конфигурации сервиса
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	client MerchantServiceClient,
	defaults domain.SlotDefaults,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		policyRepo:     policyRepo,
		merchantClient: client,
		defaults:       defaults,
		location:       location,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case расчёта доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateAvailableSlots: entity=%s/%d, date=%s",
		req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне сервиса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Резолвим сущность: для оффера ёмкость и расписание берутся у услуги
	service, offer, err := uc.resolveEntity(ctx, req, now)
	if err != nil {
		return nil, err
	}
	store := service.Store

	// 4. Проверяем дату и рабочие часы магазина
	workingDays := resolveWorkingDays(store, uc.defaults)
	if reason := closedReason(req.Date, now, workingDays); reason != "" {
		uc.logger.Info("GenerateAvailableSlots: no slots for entity=%s/%d: %s",
			req.EntityType, req.EntityID, reason)
		return closedResponse(req, reason), nil
	}

	if !store.HasValidHours() {
		uc.logger.Warn("GenerateAvailableSlots: store id=%d has malformed hours", store.ID)
		return closedResponse(req, msgHoursNotConfigured), nil
	}

	// 5. Генерируем базовую сетку слотов
	buffer := service.BufferMinutes
	if buffer == 0 {
		buffer = uc.defaults.BufferMinutes
	}
	slots := generateBaseSlots(service, buffer, store.OpeningTime, store.ClosingTime)

	// 6. Резолвим замкнутое множество офферов услуги один раз -
	// бронирование через любой из них уменьшает общий пул ёмкости
	offers, err := uc.merchantClient.ListOffersForService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GenerateAvailableSlots: failed to list offers for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list offers: %v", ErrInternal, err)
	}

	offerIDs := make([]int64, 0, len(offers))
	for _, o := range offers {
		offerIDs = append(offerIDs, o.ID)
	}

	// 7. Загружаем бронирования услуги и офферов за день
	dayStart, dayEnd := dayBounds(req.Date, uc.location)
	bookings, err := uc.bookingRepo.ListForServiceDay(ctx, service.ID, offerIDs, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GenerateAvailableSlots: failed to get bookings for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Подсчитываем занятую ёмкость каждого слота
	applyBookings(slots, bookings, req.Date, uc.location)

	// 9. Получаем политику горизонта бронирования (с иерархией магазин/услуга)
	rules := uc.resolveBookingRules(ctx, service)

	uc.logger.Info("GenerateAvailableSlots: generated %d slots (%d with capacity) for entity=%s/%d, date=%s, bookings=%d",
		len(slots), countAvailable(slots), req.EntityType, req.EntityID,
		req.Date.Format(domain.DateFormat), len(bookings))

	// 10. Форматируем ответ
	return buildResponse(req, store, service, offer, slots, rules, workingDays), nil
}

// resolveEntity резолвит услугу (и оффер, если запрошен оффер)
// Истёкший или неактивный оффер для запросов доступности не существует;
// его исторические бронирования при этом продолжают занимать пул услуги
func (uc *UseCase) resolveEntity(ctx context.Context, req *Request, now time.Time) (*merchantClient.Service, *merchantClient.Offer, error) {
	switch req.EntityType {
	case domain.EntityTypeService:
		service, err := uc.merchantClient.GetServiceWithStore(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, merchantClient.ErrServiceNotFound) {
				uc.logger.Warn("GenerateAvailableSlots: service id=%d not found", req.EntityID)
				return nil, nil, ErrServiceNotFound
			}
			uc.logger.Error("GenerateAvailableSlots: failed to get service id=%d: %v", req.EntityID, err)
			return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		return service, nil, nil

	case domain.EntityTypeOffer:
		offer, err := uc.merchantClient.GetOfferWithService(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, merchantClient.ErrOfferNotFound) {
				uc.logger.Warn("GenerateAvailableSlots: offer id=%d not found", req.EntityID)
				return nil, nil, ErrOfferNotFound
			}
			uc.logger.Error("GenerateAvailableSlots: failed to get offer id=%d: %v", req.EntityID, err)
			return nil, nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}
		if !offer.IsActive(now) {
			uc.logger.Warn("GenerateAvailableSlots: offer id=%d is expired or inactive", req.EntityID)
			return nil, nil, ErrOfferNotFound
		}
		return offer.Service, offer, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, req.EntityType)
	}
}

// resolveBookingRules собирает блок правил бронирования из политики и дефолтов
func (uc *UseCase) resolveBookingRules(ctx context.Context, service *merchantClient.Service) *BookingRules {
	minAdvance := uc.defaults.MinAdvanceMinutes
	maxAdvanceDays := uc.defaults.MaxAdvanceDays

	pol, err := uc.policyRepo.GetPolicyWithHierarchy(ctx, service.StoreID, ptr.Ptr(service.ID))
	if err == nil {
		minAdvance = pol.MinAdvanceMinutes
		maxAdvanceDays = pol.MaxAdvanceDays
	} else if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		// Политика вспомогательна: при ошибке чтения работаем на дефолтах
		uc.logger.Warn("GenerateAvailableSlots: failed to get booking policy for store=%d, service=%d: %v",
			service.StoreID, service.ID, err)
	}

	buffer := service.BufferMinutes
	if buffer == 0 {
		buffer = uc.defaults.BufferMinutes
	}

	return &BookingRules{
		MaxConcurrentBookings: service.MaxConcurrentBookings,
		DurationMinutes:       service.DurationMinutes,
		SlotIntervalMinutes:   service.SlotIntervalMinutes,
		BufferMinutes:         buffer,
		MinAdvanceMinutes:     minAdvance,
		MaxAdvanceMinutes:     maxAdvanceDays * 24 * 60,
	}
}
