package types

import (
	"encoding/json"
	"strings"
	"time"
)

// WeekdaySet набор дней недели, в которые магазин работает
type WeekdaySet map[time.Weekday]bool

// weekdaysInOrder порядок дней для отображения (неделя начинается с понедельника)
var weekdaysInOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// weekdayByName обратный индекс для нормализации строковых названий дней
var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// FullWeek возвращает набор из всех семи дней недели
func FullWeek() WeekdaySet {
	set := make(WeekdaySet, len(weekdaysInOrder))
	for _, d := range weekdaysInOrder {
		set[d] = true
	}
	return set
}

// NewWeekdaySet создает набор из перечисленных дней
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = true
	}
	return set
}

// ParseWeekdaySet нормализует строковое представление рабочих дней в WeekdaySet
// Поддерживает два формата, встречающихся в данных MerchantService:
// - JSON массив: `["Monday","Tuesday"]`
// - Строка с разделителями: "Monday,Tuesday" или "Monday, Tuesday"
// Неизвестные названия дней игнорируются. Пустой вход даёт пустой набор.
func ParseWeekdaySet(raw string) WeekdaySet {
	raw = strings.TrimSpace(raw)
	set := make(WeekdaySet)
	if raw == "" {
		return set
	}

	var names []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return set
		}
	} else {
		names = strings.Split(raw, ",")
	}

	for _, name := range names {
		if day, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]; ok {
			set[day] = true
		}
	}
	return set
}

// Contains возвращает true, если день входит в набор
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s[day]
}

// IsEmpty возвращает true, если набор пуст
func (s WeekdaySet) IsEmpty() bool {
	return len(s) == 0
}

// Names возвращает английские названия дней набора в порядке Пн..Вс
func (s WeekdaySet) Names() []string {
	names := make([]string, 0, len(s))
	for _, d := range weekdaysInOrder {
		if s[d] {
			names = append(names, d.String())
		}
	}
	return names
}
