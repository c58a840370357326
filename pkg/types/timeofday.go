package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// timeOfDayFormat формат времени суток HH:MM
const timeOfDayFormat = "15:04"

// TimeOfDay время суток без даты, например "08:00".
// Используется для расписания работы площадок; в БД хранится в колонке TIME.
type TimeOfDay string

// NewTimeOfDay создает TimeOfDay из time.Time (дата отбрасывается)
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Format(timeOfDayFormat))
}

// ParseTimeOfDay парсит строку формата HH:MM
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeOfDayFormat, s)
	if err != nil {
		return "", fmt.Errorf("types: invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(t), nil
}

// String возвращает строковое представление HH:MM
func (t TimeOfDay) String() string {
	return string(t)
}

// IsZero сообщает, что значение не задано
func (t TimeOfDay) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeOfDay) Validate() error {
	_, err := time.Parse(timeOfDayFormat, string(t))
	if err != nil {
		return fmt.Errorf("types: invalid time of day %q: %w", string(t), err)
	}
	return nil
}

// Before сравнивает два времени суток
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return string(t) < string(other)
}

// Minutes возвращает количество минут с начала суток.
// Для некорректного значения возвращает 0.
func (t TimeOfDay) Minutes() int {
	parsed, err := time.Parse(timeOfDayFormat, string(t))
	if err != nil {
		return 0
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// At привязывает время суток к конкретной дате в указанной тайм-зоне
func (t TimeOfDay) At(date time.Time, loc *time.Location) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc)
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeOfDay) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t) + ":00", nil
}

// Scan реализует sql.Scanner; поддерживает форматы драйвера pq
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeOfDay(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// pq отдает TIME как "08:00:00"
	for _, layout := range []string{"15:04:05", timeOfDayFormat} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = NewTimeOfDay(parsed)
			return nil
		}
	}
	return fmt.Errorf("types: cannot parse %q as TimeOfDay", s)
}
