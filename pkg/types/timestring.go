package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeFormat формат времени HH:MM
const timeFormat = "15:04"

// TimeString время в формате "HH:MM" без даты и таймзоны
// Используется для времени начала слотов и рабочих часов
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %v", s, err)
	}
	return TimeString(t.Format(timeFormat)), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что время соответствует формату HH:MM
func (t TimeString) Validate() error {
	_, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return fmt.Errorf("invalid time format %q, expected HH:MM", string(t))
	}
	return nil
}

// parse возвращает время как time.Time (дата нулевая)
func (t TimeString) parse() (time.Time, error) {
	parsed, err := time.Parse(timeFormat, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format %q: %v", string(t), err)
	}
	return parsed, nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд
// Возвращает ошибку, если исходное время невалидно
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", err
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(timeFormat)), nil
}

// MinutesUntil возвращает количество минут от t до other
// Отрицательное значение означает, что other раньше t
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := t.parse()
	if err != nil {
		return 0, err
	}
	to, err := other.parse()
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from) / time.Minute), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	from, err := t.parse()
	if err != nil {
		return false
	}
	to, err := other.parse()
	if err != nil {
		return false
	}
	return from.Before(to)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	from, err := t.parse()
	if err != nil {
		return false
	}
	to, err := other.parse()
	if err != nil {
		return false
	}
	return from.After(to)
}

// OnDate возвращает абсолютное время: date + t в указанной локации
func (t TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := t.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает string, []byte и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(trimSeconds(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(trimSeconds(string(v)))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// trimSeconds отбрасывает секунды из "HH:MM:SS" (Postgres TIME возвращает их)
func trimSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
