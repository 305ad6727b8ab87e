package reserve_slot

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

// UseCase use case атомарного бронирования слота
// Проверка доступности и запись выполняются в одной сериализуемой
// транзакции с блокировкой строк дня - два конкурирующих запроса на
// последнее место не могут пройти оба
type UseCase struct {
	bookingRepo    BookingRepository
	policyRepo     PolicyRepository
	merchantClient MerchantServiceClient
	txManager      TransactionManager
	defaults       domain.SlotDefaults
	location       *time.Location
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyRepo PolicyRepository,
	client MerchantServiceClient,
	txManager TransactionManager,
	defaults domain.SlotDefaults,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		policyRepo:     policyRepo,
		merchantClient: client,
		txManager:      txManager,
		defaults:       defaults,
		location:       location,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, entity=%s/%d, date=%s, time=%s",
		req.UserID, req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в таймзоне сервиса
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Резолвим сущность бронирования
	entity, err := uc.resolveEntity(ctx, req, now)
	if err != nil {
		return nil, err
	}
	service := entity.service
	store := service.Store

	// 4. Проверяем дату и рабочие часы магазина
	if err := uc.checkStoreOpen(req, now, store); err != nil {
		return nil, err
	}

	// 5. Проверяем горизонты бронирования по политике магазина/услуги
	minAdvance, maxAdvanceDays := uc.resolveAdvanceWindow(ctx, service)

	slotStart, err := req.StartTime.OnDate(req.Date, uc.location)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}
	slotEnd := slotStart.Add(time.Duration(service.DurationMinutes) * time.Minute)

	if slotStart.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		uc.logger.Warn("ReserveSlot: slot %s starts within %d min notice window", req.StartTime, minAdvance)
		return nil, fmt.Errorf("%w: slot requires at least %d minutes notice", ErrTooLateToBook, minAdvance)
	}
	if isDateBeyondHorizon(req.Date, now, maxAdvanceDays) {
		uc.logger.Warn("ReserveSlot: date %s exceeds %d day horizon", req.Date.Format(domain.DateFormat), maxAdvanceDays)
		return nil, fmt.Errorf("%w: bookings accepted up to %d days ahead", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	// 6. Проверяем, что время попадает в сетку слотов
	if err := uc.checkSlotGrid(req, service, store); err != nil {
		return nil, err
	}

	// 7. Резолвим замкнутое множество офферов услуги - все они делят общий пул
	offers, err := uc.merchantClient.ListOffersForService(ctx, service.ID)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to list offers for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to list offers: %v", ErrInternal, err)
	}
	offerIDs := make([]int64, 0, len(offers))
	for _, o := range offers {
		offerIDs = append(offerIDs, o.ID)
	}

	// 8. Атомарная проверка ёмкости и запись в сериализуемой транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		dayStart, dayEnd := dayBounds(req.Date, uc.location)

		// Внутри транзакции репозиторий ставит FOR UPDATE на строки дня
		bookings, err := uc.bookingRepo.ListForServiceDay(txCtx, service.ID, offerIDs, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		occupied := 0
		for _, b := range bookings {
			if b.CountsAgainstCapacity() && b.Overlaps(slotStart, slotEnd) {
				occupied++
			}
		}
		if occupied >= service.MaxConcurrentBookings {
			uc.logger.Info("ReserveSlot: slot %s is full for entity=%s/%d (%d/%d)",
				req.StartTime, req.EntityType, req.EntityID, occupied, service.MaxConcurrentBookings)
			return ErrSlotNotAvailable
		}

		booking := &domain.Booking{
			UserID:    req.UserID,
			StartTime: slotStart,
			EndTime:   slotEnd,
			Status:    domain.StatusConfirmed,
			Notes:     req.Notes,
		}
		if req.EntityType == domain.EntityTypeOffer {
			booking.OfferID = entity.offerID
		} else {
			booking.ServiceID = ptr.Ptr(entity.serviceID)
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Error("ReserveSlot: transaction failed for entity=%s/%d: %v", req.EntityType, req.EntityID, err)
		}
		return nil, err
	}

	uc.logger.Info("ReserveSlot: created booking id=%d for user=%d, entity=%s/%d, start=%s",
		created.ID, req.UserID, req.EntityType, req.EntityID, created.StartTime.Format(time.RFC3339))

	return buildResponse(req, created), nil
}

// resolveEntity резолвит услугу (и оффер, если запрошен оффер)
// Истёкший или неактивный оффер забронировать нельзя
func (uc *UseCase) resolveEntity(ctx context.Context, req *Request, now time.Time) (*resolvedEntity, error) {
	switch req.EntityType {
	case domain.EntityTypeService:
		service, err := uc.merchantClient.GetServiceWithStore(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, merchantClient.ErrServiceNotFound) {
				uc.logger.Warn("ReserveSlot: service id=%d not found", req.EntityID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("ReserveSlot: failed to get service id=%d: %v", req.EntityID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		return &resolvedEntity{serviceID: service.ID, service: service}, nil

	case domain.EntityTypeOffer:
		offer, err := uc.merchantClient.GetOfferWithService(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, merchantClient.ErrOfferNotFound) {
				uc.logger.Warn("ReserveSlot: offer id=%d not found", req.EntityID)
				return nil, ErrOfferNotFound
			}
			uc.logger.Error("ReserveSlot: failed to get offer id=%d: %v", req.EntityID, err)
			return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
		}
		if !offer.IsActive(now) {
			uc.logger.Warn("ReserveSlot: offer id=%d is expired or inactive", req.EntityID)
			return nil, ErrOfferNotFound
		}
		return &resolvedEntity{
			serviceID: offer.Service.ID,
			offerID:   ptr.Ptr(offer.ID),
			service:   offer.Service,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, req.EntityType)
	}
}

// checkStoreOpen проверяет, что дата не в прошлом и магазин в этот день работает
func (uc *UseCase) checkStoreOpen(req *Request, now time.Time, store *merchantClient.Store) error {
	if isDateInPast(req.Date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	workingDays := store.WorkingDays
	if workingDays == nil {
		workingDays = uc.defaults.WorkingDays
	}
	if !workingDays.Contains(req.Date.Weekday()) {
		uc.logger.Info("ReserveSlot: store id=%d is closed on %s", store.ID, req.Date.Weekday())
		return fmt.Errorf("%w: store is closed on %s", ErrStoreClosed, req.Date.Weekday())
	}

	if !store.HasValidHours() {
		uc.logger.Warn("ReserveSlot: store id=%d has malformed hours", store.ID)
		return fmt.Errorf("%w: store hours are not configured", ErrStoreClosed)
	}
	return nil
}

// checkSlotGrid проверяет, что запрошенное время совпадает со стартом слота
// Сетка та же, что показывается клиенту: старты от открытия с шагом
// slotInterval + buffer, конец слота не позже закрытия
func (uc *UseCase) checkSlotGrid(req *Request, service *merchantClient.Service, store *merchantClient.Store) error {
	buffer := service.BufferMinutes
	if buffer == 0 {
		buffer = uc.defaults.BufferMinutes
	}
	step := service.SlotIntervalMinutes + buffer
	if step <= 0 || service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service has no valid slot grid", ErrInvalidTimeSlot)
	}

	offset, err := store.OpeningTime.MinutesUntil(req.StartTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if offset < 0 || offset%step != 0 {
		return fmt.Errorf("%w: %s does not align with the slot grid", ErrInvalidTimeSlot, req.StartTime)
	}

	window, err := store.OpeningTime.MinutesUntil(store.ClosingTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if offset+service.DurationMinutes > window {
		return fmt.Errorf("%w: slot ending after closing time", ErrInvalidTimeSlot)
	}
	return nil
}

// resolveAdvanceWindow возвращает минимальное уведомление (минуты) и
// горизонт бронирования (дни) из политики либо дефолтов
func (uc *UseCase) resolveAdvanceWindow(ctx context.Context, service *merchantClient.Service) (int, int) {
	minAdvance := uc.defaults.MinAdvanceMinutes
	maxAdvanceDays := uc.defaults.MaxAdvanceDays

	pol, err := uc.policyRepo.GetPolicyWithHierarchy(ctx, service.StoreID, ptr.Ptr(service.ID))
	if err == nil {
		minAdvance = pol.MinAdvanceMinutes
		maxAdvanceDays = pol.MaxAdvanceDays
	} else if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Warn("ReserveSlot: failed to get booking policy for store=%d, service=%d: %v",
			service.StoreID, service.ID, err)
	}
	return minAdvance, maxAdvanceDays
}

// buildResponse собирает ответ из сохранённого бронирования
func buildResponse(req *Request, b *domain.Booking) *Response {
	return &Response{
		ID:         b.ID,
		UserID:     b.UserID,
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// dayBounds возвращает границы календарного дня в указанной таймзоне
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
// Календарные компоненты обеих дат сравниваются в таймзоне now: дата
// запроса парсится в UTC, и сравнение как моментов времени сдвигало бы
// "сегодня" в зонах западнее UTC
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// isDateBeyondHorizon проверяет, что дата дальше maxAdvanceDays от сегодня
func isDateBeyondHorizon(date, now time.Time, maxAdvanceDays int) bool {
	horizon := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.After(horizon)
}
