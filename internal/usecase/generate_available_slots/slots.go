package generate_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/merchantservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const msgHoursNotConfigured = "store hours are not configured"

// resolveWorkingDays возвращает рабочие дни магазина
// nil (дни не заданы в MerchantService) -> дефолтный набор из конфигурации;
// пустой набор (данные заданы, но не распарсились) остаётся пустым -
// магазин считается закрытым каждый день
func resolveWorkingDays(store *merchantservice.Store, defaults domain.SlotDefaults) types.WeekdaySet {
	if store.WorkingDays == nil {
		return defaults.WorkingDays
	}
	return store.WorkingDays
}

// closedReason возвращает причину, по которой на дату нет слотов
// Пустая строка означает, что день рабочий
func closedReason(date, now time.Time, workingDays types.WeekdaySet) string {
	if isDateInPast(date, now) {
		return "past date"
	}
	if !workingDays.Contains(date.Weekday()) {
		return fmt.Sprintf("Store is closed on %s", date.Weekday())
	}
	return ""
}

// generateBaseSlots генерирует базовую сетку слотов-кандидатов
// Старты идут от времени открытия с шагом slotInterval + buffer; генерация
// останавливается, как только конец слота вышел бы за время закрытия.
// Если duration + buffer не помещается в окно работы, сетка пуста - это
// валидный отображаемый результат, а не ошибка.
// Сетка детерминирована: одинаковый вход всегда даёт одинаковый выход
func generateBaseSlots(service *merchantservice.Service, bufferMinutes int, openTime, closeTime types.TimeString) []domain.Slot {
	slots := make([]domain.Slot, 0)

	if service.DurationMinutes <= 0 {
		return slots
	}
	if openTime.Validate() != nil || closeTime.Validate() != nil {
		return slots
	}

	step := service.SlotIntervalMinutes + bufferMinutes
	if step <= 0 {
		return slots
	}

	current := openTime
	for {
		end, err := current.AddMinutes(service.DurationMinutes)
		if err != nil {
			return slots
		}
		// AddMinutes заворачивается через полночь; выход за закрытие или
		// перенос на следующий день завершают генерацию
		if end.IsAfter(closeTime) || end.IsBefore(current) {
			return slots
		}

		slots = append(slots, domain.Slot{
			StartTime:      current,
			EndTime:        end,
			CapacityTotal:  service.MaxConcurrentBookings,
			CapacityBooked: 0,
		})

		next, err := current.AddMinutes(step)
		if err != nil || !next.IsAfter(current) {
			return slots
		}
		current = next
	}
}

// applyBookings проставляет занятую ёмкость каждого слота
// Бронирование занимает слот, если их интервалы действительно пересекаются:
// bookingStart < slotEnd && bookingEnd > slotStart (полуоткрытые интервалы,
// граничащие окна пересечением не считаются).
// Сравнение O(slots * bookings); обе последовательности ограничены одним
// рабочим днём
func applyBookings(slots []domain.Slot, bookings []*domain.Booking, date time.Time, loc *time.Location) {
	for i := range slots {
		slotStart, err := slots[i].StartTime.OnDate(date, loc)
		if err != nil {
			continue
		}
		slotEnd, err := slots[i].EndTime.OnDate(date, loc)
		if err != nil {
			continue
		}

		count := 0
		for _, b := range bookings {
			// Репозиторий уже отфильтровал отменённые; проверка остаётся
			// на случай других источников списка
			if !b.CountsAgainstCapacity() {
				continue
			}
			if b.Overlaps(slotStart, slotEnd) {
				count++
			}
		}
		slots[i].CapacityBooked = count
	}
}

// countAvailable возвращает число слотов со свободной ёмкостью
func countAvailable(slots []domain.Slot) int {
	n := 0
	for i := range slots {
		if slots[i].IsAvailable() {
			n++
		}
	}
	return n
}

// dayBounds возвращает границы календарного дня в указанной таймзоне
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
// Сравниваются календарные компоненты в таймзоне now: дата запроса
// парсится в UTC, и сравнение как моментов времени сдвигало бы "сегодня"
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
