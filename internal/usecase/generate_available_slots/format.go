package generate_available_slots

import (
	"fmt"
	"math"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// closedResponse структурный отказ: магазин закрыт или дата невалидна
// Возвращается с Success=false вместо ошибки - дашборд отображает причину
func closedResponse(req *Request, message string) *Response {
	return &Response{
		Success:        false,
		Message:        message,
		Date:           req.Date,
		EntityID:       req.EntityID,
		EntityType:     req.EntityType,
		AvailableSlots: []Slot{},
		AllSlots:       []Slot{},
	}
}

// buildResponse собирает успешный ответ из посчитанных слотов и метаданных
func buildResponse(
	req *Request,
	store *merchantservice.Store,
	service *merchantservice.Service,
	offer *merchantservice.Offer,
	slots []domain.Slot,
	rules *BookingRules,
	workingDays types.WeekdaySet,
) *Response {
	all := make([]Slot, 0, len(slots))
	available := make([]Slot, 0, len(slots))

	for i := range slots {
		s := toSlotModel(&slots[i])
		all = append(all, s)
		// Заполненные слоты остаются в AllSlots, но не предлагаются к брони
		if slots[i].IsAvailable() {
			available = append(available, s)
		}
	}

	return &Response{
		Success:    true,
		Date:       req.Date,
		EntityID:   req.EntityID,
		EntityType: req.EntityType,
		Store: &StoreInfo{
			ID:          store.ID,
			Name:        store.Name,
			Hours:       formatHours(store.OpeningTime, store.ClosingTime),
			WorkingDays: workingDays.Names(),
		},
		Entity:         buildEntityInfo(service, offer),
		BookingRules:   rules,
		AvailableSlots: available,
		AllSlots:       all,
	}
}

// buildEntityInfo собирает метаданные сущности
// Для оффера цена со скидкой считается только при известной цене услуги
func buildEntityInfo(service *merchantservice.Service, offer *merchantservice.Offer) *EntityInfo {
	if offer == nil {
		return &EntityInfo{
			ID:    service.ID,
			Type:  domain.EntityTypeService,
			Name:  service.Name,
			Price: service.Price,
		}
	}

	return &EntityInfo{
		ID:              offer.ID,
		Type:            domain.EntityTypeOffer,
		Name:            offer.Title,
		Price:           service.Price,
		DiscountPercent: ptr.Ptr(offer.DiscountPercent),
		DiscountedPrice: discountedPrice(service.Price, offer.DiscountPercent),
	}
}

// discountedPrice считает цену со скидкой, округлённую до двух знаков
// Возвращает nil, если базовая цена неизвестна
func discountedPrice(price *float64, discountPercent float64) *float64 {
	if price == nil {
		return nil
	}
	discounted := *price * (1 - discountPercent/100)
	return ptr.Ptr(math.Round(discounted*100) / 100)
}

// formatHours форматирует часы работы магазина для отображения
func formatHours(open, close types.TimeString) string {
	return fmt.Sprintf("%s - %s", open, close)
}

// toSlotModel проецирует внутренний слот в модель ответа
func toSlotModel(slot *domain.Slot) Slot {
	return Slot{
		Label:          slot.Label(),
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		AvailableSpots: slot.CapacityAvailable(),
		BookedSpots:    slot.CapacityBooked,
		TotalSpots:     slot.CapacityTotal,
	}
}
