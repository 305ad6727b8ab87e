package check_slot_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	generateSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/generate_available_slots"
)

// reasonOutsideHours причина отказа, когда запрошенное время не попадает
// ни в один слот сетки
const reasonOutsideHours = "outside business hours"

// reasonFullyBooked причина отказа, когда ёмкость слота исчерпана
const reasonFullyBooked = "slot is fully booked"

// UseCase use case проверки доступности конкретного слота
// Тонкий потребитель конвейера расчёта слотов: прогоняет его целиком и
// находит в сетке слот с запрошенным временем
type UseCase struct {
	pipeline    SlotsPipeline
	bookingRepo BookingRepository
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pipeline SlotsPipeline, bookings BookingRepository, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		pipeline:    pipeline,
		bookingRepo: bookings,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет проверку доступности слота
// Ошибки NotFound конвейера пробрасываются как есть - несуществующая
// сущность остаётся жёсткой ошибкой, а не "слот занят"
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlotAvailability: entity=%s/%d, date=%s, time=%s",
		req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlotAvailability: validation failed: %v", err)
		return nil, err
	}

	slots, err := uc.pipeline.Execute(ctx, &generateSlots.Request{
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
		Date:       req.Date,
	})
	if err != nil {
		return nil, err
	}

	// Закрытый магазин и прошедшая дата уже свёрнуты конвейером в
	// структурный отказ с причиной
	if !slots.Success {
		return &Response{Available: false, Reason: slots.Message}, nil
	}

	slot := matchSlot(slots.AllSlots, req.Time)
	if slot == nil {
		uc.logger.Info("CheckSlotAvailability: time %q does not match any slot for entity=%s/%d",
			req.Time, req.EntityType, req.EntityID)
		return &Response{Available: false, Reason: reasonOutsideHours}, nil
	}

	available := slot.AvailableSpots

	// При редактировании брони её собственное место считается свободным
	if req.ExcludeBookingID != nil {
		excluded, err := uc.excludedOccupiesSlot(ctx, *req.ExcludeBookingID, slot, req.Date)
		if err != nil {
			return nil, err
		}
		if excluded && available < slot.TotalSpots {
			available++
		}
	}

	if available <= 0 {
		return &Response{
			Available:      false,
			RemainingSpots: 0,
			TotalSpots:     slot.TotalSpots,
			Reason:         reasonFullyBooked,
		}, nil
	}

	return &Response{
		Available:      true,
		RemainingSpots: available,
		TotalSpots:     slot.TotalSpots,
	}, nil
}

// excludedOccupiesSlot проверяет, занимает ли исключаемое бронирование
// найденный слот. Несуществующая бронь просто не влияет на результат
func (uc *UseCase) excludedOccupiesSlot(ctx context.Context, bookingID int64, slot *generateSlots.Slot, date time.Time) (bool, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckSlotAvailability: excluded booking id=%d not found", bookingID)
			return false, nil
		}
		uc.logger.Error("CheckSlotAvailability: failed to get excluded booking id=%d: %v", bookingID, err)
		return false, fmt.Errorf("%w: failed to get excluded booking: %v", ErrInternal, err)
	}

	if !booking.CountsAgainstCapacity() {
		return false, nil
	}

	slotStart, err := slot.StartTime.OnDate(date, uc.location)
	if err != nil {
		return false, nil
	}
	slotEnd, err := slot.EndTime.OnDate(date, uc.location)
	if err != nil {
		return false, nil
	}

	return booking.Overlaps(slotStart, slotEnd), nil
}

// matchSlot ищет слот по запрошенному времени
// Поддерживает оба представления: сырое время начала и подпись слота
func matchSlot(slots []generateSlots.Slot, requested string) *generateSlots.Slot {
	for i := range slots {
		if slots[i].StartTime.String() == requested || slots[i].Label == requested {
			return &slots[i]
		}
	}
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EntityID <= 0 {
		return fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}
	if req.EntityType != domain.EntityTypeService && req.EntityType != domain.EntityTypeOffer {
		return fmt.Errorf("%w: entityType must be %q or %q", ErrInvalidInput,
			domain.EntityTypeService, domain.EntityTypeOffer)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Time == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	return nil
}
