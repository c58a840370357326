package get_availability

import (
	"time"

	"github.com/kovaldn/ArenaBookingService/internal/domain"
)

// resolveOpenIntervals разворачивает недельное расписание комплекса в
// последовательность интервалов работы по дням внутри [from, to).
// День без записи в расписании считается выходным и не дает интервала.
// Интервалы обрезаются по границам запрошенного диапазона: у первого дня
// открытие не раньше from, у последнего закрытие не позже to.
func resolveOpenIntervals(hours domain.WeeklyHours, from, to time.Time) []domain.Interval {
	open := make([]domain.Interval, 0)
	if !from.Before(to) {
		return open
	}

	bounds := domain.Interval{Start: from, End: to}
	loc := from.Location()

	for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
		entry := hours.ForWeekday(day.Weekday())
		if entry == nil {
			continue
		}

		interval := domain.Interval{
			Start: entry.OpenTime.At(day, loc),
			End:   entry.CloseTime.At(day, loc),
		}

		clipped := interval.Clip(bounds)
		if clipped.IsValid() {
			open = append(open, clipped)
		}
	}

	return open
}

// startOfDay обнуляет время, оставляя дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
