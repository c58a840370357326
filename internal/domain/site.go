package domain

import (
	"time"

	"github.com/kovaldn/ArenaBookingService/pkg/types"
)

// Site represents a sports facility with one or more courts
type Site struct {
	ID        int64
	Name      string
	City      string
	Address   string
	ManagerID int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OpeningHours is one weekly schedule entry of a site.
// DayOfWeek is Monday=0 ... Sunday=6. A site has at most one entry per day;
// a day without an entry means the site is closed that day.
type OpeningHours struct {
	ID        int64
	SiteID    int64
	DayOfWeek int
	OpenTime  types.TimeOfDay
	CloseTime types.TimeOfDay
}

// IsValid returns true if the entry is well-formed
func (h OpeningHours) IsValid() bool {
	return h.DayOfWeek >= 0 && h.DayOfWeek < DaysPerWeek &&
		h.OpenTime.Validate() == nil && h.CloseTime.Validate() == nil &&
		h.OpenTime.Before(h.CloseTime)
}

// WeeklyHours is a site's full weekly schedule
type WeeklyHours []OpeningHours

// ForWeekday returns the entry for the given weekday, or nil if the site is
// closed that day
func (w WeeklyHours) ForWeekday(wd time.Weekday) *OpeningHours {
	dow := DayOfWeekFromWeekday(wd)
	for i := range w {
		if w[i].DayOfWeek == dow {
			return &w[i]
		}
	}
	return nil
}

// DayOfWeekFromWeekday converts time.Weekday (Sunday=0) to the Monday=0 scheme
func DayOfWeekFromWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
